// Package token decodes access-token payloads without verifying their
// signature. Verification belongs to the server; the client only needs the
// claims to judge expiry and to reconstruct the acting user when no fresher
// profile is available.
package token

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultRefreshThreshold is how close to expiry a token may get before the
// client tries to refresh it ahead of time.
const DefaultRefreshThreshold = 120 * time.Second

// Payload is the decoded body of an access token. Exp is zero when the token
// carries no expiry claim.
type Payload struct {
	Sub         string
	Role        string
	Permissions []string
	Exp         int64
}

type tokenClaims struct {
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
	jwt.RegisteredClaims
}

// Decode splits a bearer token into its three dot-delimited parts and parses
// the base64url-encoded middle segment. It returns nil on any malformed
// input; it never returns an error or panics.
func Decode(raw string) *Payload {
	if raw == "" {
		return nil
	}

	var claims tokenClaims
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(raw, &claims); err != nil {
		return nil
	}

	p := &Payload{
		Sub:         claims.Subject,
		Role:        claims.Role,
		Permissions: claims.Permissions,
	}
	if p.Permissions == nil {
		p.Permissions = []string{}
	}
	if claims.ExpiresAt != nil {
		p.Exp = claims.ExpiresAt.Unix()
	}

	return p
}

// UserID converts the subject claim to a numeric user id.
func (p *Payload) UserID() (int, bool) {
	if p == nil || p.Sub == "" {
		return 0, false
	}
	id, err := strconv.Atoi(p.Sub)
	if err != nil {
		return 0, false
	}
	return id, true
}

// IsExpired reports whether the payload should be treated as expired.
// Fail-closed: a nil payload or a missing exp claim counts as expired.
func IsExpired(p *Payload) bool {
	if p == nil || p.Exp == 0 {
		return true
	}
	return p.Exp <= time.Now().Unix()
}

// ShouldRefresh reports whether the token is close enough to expiry that the
// client should refresh it preemptively. Fail-open: a nil payload or missing
// exp claim means "not due yet". Expiry gating is IsExpired's job, and
// refreshing on absent information would turn every malformed token into a
// refresh storm. The boundary is inclusive: exp-now == threshold refreshes.
func ShouldRefresh(p *Payload, threshold time.Duration) bool {
	if p == nil || p.Exp == 0 {
		return false
	}
	if threshold <= 0 {
		threshold = DefaultRefreshThreshold
	}
	return p.Exp-time.Now().Unix() <= int64(threshold/time.Second)
}
