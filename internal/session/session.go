// Package session holds the authenticated identity on the operator's
// machine: access token, refresh token, and the resolved admin user. The
// durable backends survive process restarts and are shared by every
// yoga-admin process of the same user.
package session

import "errors"

// ErrNotAuthenticated is returned when no stored session exists.
var ErrNotAuthenticated = errors.New("not authenticated: please run 'yoga-admin login' first")

// User is the acting admin resolved from a token payload or a profile
// fetch. Email and Name come only from the profile endpoint; a user rebuilt
// from a bare token payload has neither.
type User struct {
	ID          int      `json:"id"`
	Email       string   `json:"email,omitempty"`
	Name        string   `json:"name,omitempty"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
}

// Session is the stored identity. Zero-value fields mean "absent".
type Session struct {
	AccessToken  string
	RefreshToken string
	User         *User
}

// IsEmpty reports whether nothing at all is stored.
func (s Session) IsEmpty() bool {
	return s.AccessToken == "" && s.RefreshToken == "" && s.User == nil
}

// Store is durable session storage. Snapshot never fails: unreadable or
// unparseable stored data is treated as absent. Persist writes only the
// fields present in the partial session; it never clears a field by
// omission. Clear removes everything unconditionally.
type Store interface {
	Snapshot() Session
	Persist(partial Session) error
	Clear() error
}

// merge overlays the non-empty fields of partial onto base.
func merge(base, partial Session) Session {
	if partial.AccessToken != "" {
		base.AccessToken = partial.AccessToken
	}
	if partial.RefreshToken != "" {
		base.RefreshToken = partial.RefreshToken
	}
	if partial.User != nil {
		base.User = partial.User
	}
	return base
}
