package backend

import (
	"context"

	"organo/internal/domain"
)

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Login exchanges credentials for a token pair and the signed-in user.
func (c *Client) Login(ctx context.Context, creds domain.Credentials) (domain.LoginResponse, error) {
	if err := c.check(creds); err != nil {
		return domain.LoginResponse{}, err
	}
	var out domain.LoginResponse
	if err := c.post(ctx, "/auth/login", creds, &out); err != nil {
		return domain.LoginResponse{}, err
	}
	return out, nil
}

// Logout revokes refreshToken on the backend.
func (c *Client) Logout(ctx context.Context, refreshToken string) error {
	return c.post(ctx, "/auth/logout", refreshRequest{RefreshToken: refreshToken}, nil)
}

// Refresh trades refreshToken for a new access token. The returned pair
// carries a new refresh token only when the backend rotated it.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (domain.TokenPair, error) {
	var out domain.TokenPair
	if err := c.post(ctx, "/auth/refresh", refreshRequest{RefreshToken: refreshToken}, &out); err != nil {
		return domain.TokenPair{}, err
	}
	return out, nil
}

// Me returns the user the current access token belongs to.
func (c *Client) Me(ctx context.Context) (domain.User, error) {
	var out domain.User
	if err := c.get(ctx, "/auth/me", &out); err != nil {
		return domain.User{}, err
	}
	return out, nil
}
