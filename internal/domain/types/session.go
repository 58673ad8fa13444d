package types

import "time"

// Credentials is the login payload.
type Credentials struct {
	Username Username `json:"username" validate:"required,notblank"`
	Password string   `json:"password" validate:"required"`
}

// TokenPair is what the backend hands out on login and refresh.
// RefreshToken may be empty on refresh, meaning "keep the current one".
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

// LoginResponse is the body returned by the login endpoint.
type LoginResponse struct {
	TokenPair
	User User `json:"user"`
}

// User is the account as reported by the backend.
type User struct {
	ID       ID       `json:"id"`
	Username Username `json:"username"`
	Email    string   `json:"email,omitempty"`
	Role     Role     `json:"role"`
}

// Session is the signed-in state the client keeps between invocations.
type Session struct {
	ServerURL string    `json:"server_url"`
	Tokens    TokenPair `json:"tokens"`
	User      User      `json:"user"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Empty reports whether the session carries no credentials at all.
func (s Session) Empty() bool {
	return s.Tokens.AccessToken == "" && s.Tokens.RefreshToken == ""
}
