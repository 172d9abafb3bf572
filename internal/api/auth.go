package api

import (
	"context"
	"fmt"

	"github.com/cxndizz/yoga-admin-cli/internal/session"
)

// LoginRequest is the credentials body for session login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenPair is the response of login and refresh: a fresh credential pair
// plus the user it belongs to.
type TokenPair struct {
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	User         *session.User `json:"user"`
}

// Login authenticates with email and password.
func (c *Client) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	var pair TokenPair
	err := c.post(ctx, "/api/v1/auth/login", LoginRequest{Email: email, Password: password}, &pair)
	if err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}
	return &pair, nil
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Refresh exchanges a refresh token for a new credential pair. The server
// may omit a new refresh token, in which case the caller keeps the old one.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	var pair TokenPair
	err := c.post(ctx, "/api/v1/auth/refresh", refreshRequest{RefreshToken: refreshToken}, &pair)
	if err != nil {
		return nil, fmt.Errorf("token refresh failed: %w", err)
	}
	return &pair, nil
}

type meResponse struct {
	User *session.User `json:"user"`
}

// Me fetches the current admin profile for the installed bearer credential.
func (c *Client) Me(ctx context.Context) (*session.User, error) {
	var resp meResponse
	if err := c.get(ctx, "/api/v1/auth/me", &resp); err != nil {
		return nil, fmt.Errorf("profile fetch failed: %w", err)
	}
	if resp.User == nil {
		return nil, fmt.Errorf("profile fetch returned no user")
	}
	return resp.User, nil
}
