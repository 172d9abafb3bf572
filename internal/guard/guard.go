// Package guard gates every protected command behind a session validation:
// decode the stored access token, refresh it when expired or about to
// expire, resolve the acting user, and enforce the command's role
// allow-list. On any unrecoverable failure the caller is sent to login with
// the originally intended destination preserved.
package guard

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"slices"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/cxndizz/yoga-admin-cli/internal/api"
	"github.com/cxndizz/yoga-admin-cli/internal/session"
	"github.com/cxndizz/yoga-admin-cli/internal/token"
)

// ErrNotAuthorized is the terminal authorization failure. Every redirect
// error unwraps to it.
var ErrNotAuthorized = errors.New("not authorized")

// ErrSuperseded is returned when a newer validation started while this one
// was in flight; the stale result must be discarded, not acted on.
var ErrSuperseded = errors.New("authorization check superseded by a newer one")

// RedirectError carries the login destination for a failed authorization.
type RedirectError struct {
	To string
}

func (e *RedirectError) Error() string {
	return fmt.Sprintf("not authorized: redirecting to %s", e.To)
}

func (e *RedirectError) Unwrap() error { return ErrNotAuthorized }

// LoginRedirect builds the login destination carrying the original path so a
// successful login can return the operator to where they started.
func LoginRedirect(origin string) string {
	return "/login?redirect=" + url.QueryEscape(origin)
}

// Client is the slice of the API surface the guard needs.
type Client interface {
	Refresh(ctx context.Context, refreshToken string) (*api.TokenPair, error)
	Me(ctx context.Context) (*session.User, error)
	SetToken(token string)
	ClearToken()
}

// Options configures a Guard instance.
type Options struct {
	// AllowedRoles is the role allow-list. Empty means any authenticated
	// role is accepted.
	AllowedRoles []string

	// RefreshThreshold is how close to expiry a still-valid token triggers a
	// preemptive refresh. Zero uses the token package default.
	RefreshThreshold time.Duration
}

// Result is a successful authorization.
type Result struct {
	User        *session.User
	AccessToken string

	// Degraded is set when the best-effort profile fetch failed and the user
	// was resolved from cached or token data instead.
	Degraded bool
}

// Guard validates and refreshes a session before a protected operation runs.
type Guard struct {
	cache     *session.Cache
	client    Client
	allowed   []string
	threshold time.Duration
	gen       atomic.Uint64
}

// New creates a guard over the given session cache and API client.
func New(cache *session.Cache, client Client, opts Options) *Guard {
	threshold := opts.RefreshThreshold
	if threshold <= 0 {
		threshold = token.DefaultRefreshThreshold
	}
	return &Guard{
		cache:     cache,
		client:    client,
		allowed:   opts.AllowedRoles,
		threshold: threshold,
	}
}

// Ensure runs the validation state machine. origin is the path the caller
// intended to reach; a failed authorization returns a RedirectError whose
// target carries it url-encoded. A validation started after this one marks
// it stale: its outcome is discarded and ErrSuperseded returned.
//
// Ensure never panics: any panic during validation is recovered, logged,
// and treated as an authorization failure.
func (g *Guard) Ensure(ctx context.Context, origin string) (res *Result, err error) {
	gen := g.gen.Add(1)

	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Str("origin", origin).
				Msg("authorization check panicked")
			res = nil
			err = g.fail(origin)
		}
	}()

	return g.ensure(ctx, gen, origin)
}

func (g *Guard) ensure(ctx context.Context, gen uint64, origin string) (*Result, error) {
	// Prefer the in-memory session; fall back to a fresh storage snapshot in
	// case another process logged in since this one started.
	sess := g.cache.Current()
	if sess.AccessToken == "" || sess.RefreshToken == "" {
		g.cache.Reload()
		sess = g.cache.Current()
	}

	if sess.AccessToken == "" || sess.RefreshToken == "" {
		log.Debug().Str("origin", origin).Msg("no stored session")
		return nil, g.fail(origin)
	}

	accessToken := sess.AccessToken
	refreshToken := sess.RefreshToken
	user := sess.User

	payload := token.Decode(accessToken)
	if token.IsExpired(payload) {
		// Malformed counts as expired: both mean the current token cannot
		// gate anything and only a refresh can save the session.
		pair, err := g.client.Refresh(ctx, refreshToken)
		if err != nil {
			log.Info().Err(err).Msg("token refresh failed")
			return nil, g.fail(origin)
		}
		accessToken, refreshToken, user = adopt(pair, refreshToken, user)
		payload = token.Decode(accessToken)
	} else if token.ShouldRefresh(payload, g.threshold) {
		// Still valid, just close to expiry. A failing refresh here is not
		// fatal; the existing token keeps working until its hard expiry.
		pair, err := g.client.Refresh(ctx, refreshToken)
		if err != nil {
			log.Warn().Err(err).
				Msg("preemptive refresh failed, continuing with current token past soft threshold")
		} else {
			accessToken, refreshToken, user = adopt(pair, refreshToken, user)
			payload = token.Decode(accessToken)
		}
	}

	// Resolve the acting user, preferring one already known over a
	// reconstruction from the token payload.
	if user == nil {
		id, ok := payload.UserID()
		if !ok {
			log.Debug().Msg("no resolvable user in session or token payload")
			return nil, g.fail(origin)
		}
		user = &session.User{ID: id, Role: payload.Role, Permissions: payload.Permissions}
	}
	if accessToken == "" {
		return nil, g.fail(origin)
	}

	g.client.SetToken(accessToken)

	// Best-effort enrichment: the freshest role and permission data if the
	// backend is willing, the already-resolved user otherwise.
	degraded := false
	if fresh, err := g.client.Me(ctx); err != nil {
		degraded = true
		log.Debug().Err(err).Msg("profile fetch failed, using cached profile")
	} else {
		user = fresh
	}

	if len(g.allowed) > 0 && !slices.Contains(g.allowed, user.Role) {
		log.Info().Str("role", user.Role).Strs("allowed", g.allowed).
			Msg("role not permitted for this operation")
		return nil, g.fail(origin)
	}

	if g.gen.Load() != gen {
		return nil, ErrSuperseded
	}

	if err := g.cache.Update(session.Session{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}); err != nil {
		log.Warn().Err(err).Msg("failed to persist validated session")
	}

	return &Result{User: user, AccessToken: accessToken, Degraded: degraded}, nil
}

// adopt folds a refresh response into the working credentials, keeping the
// old refresh token when the server did not rotate it.
func adopt(pair *api.TokenPair, oldRefresh string, oldUser *session.User) (string, string, *session.User) {
	refresh := pair.RefreshToken
	if refresh == "" {
		refresh = oldRefresh
	}
	user := pair.User
	if user == nil {
		user = oldUser
	}
	return pair.AccessToken, refresh, user
}

// fail clears the session and the client's default credential and returns
// the login redirect. Authentication failures never surface in place; they
// always navigate away.
func (g *Guard) fail(origin string) error {
	if err := g.cache.Clear(); err != nil {
		log.Warn().Err(err).Msg("failed to clear session")
	}
	g.client.ClearToken()
	return &RedirectError{To: LoginRedirect(origin)}
}
