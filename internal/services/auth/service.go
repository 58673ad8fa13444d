package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"organo/internal/crypto"
	"organo/internal/domain"
	"organo/internal/logging"
)

// ErrNotLoggedIn is returned when a command needs a session and there is none.
var ErrNotLoggedIn = errors.New("not logged in")

// Sessions is the part of session.Manager the service needs.
type Sessions interface {
	Start(s domain.Session) error
	Session() domain.Session
	Clear() error
}

// Service implements domain.AuthService.
type Service struct {
	client    domain.AuthClient
	sessions  Sessions
	accounts  domain.AccountStore
	serverURL string
	logger    logging.Logger
}

var _ domain.AuthService = (*Service)(nil)

// New returns an auth service for the backend at serverURL. accounts and
// logger may be nil.
func New(client domain.AuthClient, sessions Sessions, accounts domain.AccountStore, serverURL string, logger logging.Logger) *Service {
	if logger == nil {
		logger = logging.Nop{}
	}
	return &Service{
		client:    client,
		sessions:  sessions,
		accounts:  accounts,
		serverURL: serverURL,
		logger:    logger,
	}
}

// Login signs in and stores the new session.
func (s *Service) Login(ctx context.Context, creds domain.Credentials) (domain.User, error) {
	res, err := s.client.Login(ctx, creds)
	if err != nil {
		return domain.User{}, err
	}
	sess := domain.Session{
		ServerURL: s.serverURL,
		Tokens:    res.TokenPair,
		User:      res.User,
	}
	if err := s.sessions.Start(sess); err != nil {
		return domain.User{}, fmt.Errorf("saving session: %w", err)
	}
	s.logger.Info("signed in",
		"user", res.User.Username.String(),
		"role", res.User.Role.String(),
		"token", crypto.Fingerprint(res.AccessToken),
	)

	if s.accounts != nil {
		profile := domain.AccountProfile{ServerURL: s.serverURL, Username: res.User.Username, Role: res.User.Role}
		if err := s.accounts.SaveAccountProfile(profile); err != nil {
			s.logger.Warn("saving account profile", "err", err)
		}
	}
	return res.User, nil
}

// Logout revokes the refresh token when possible and clears the session.
func (s *Service) Logout(ctx context.Context) error {
	sess := s.sessions.Session()
	if sess.Empty() {
		return ErrNotLoggedIn
	}
	if rt := sess.Tokens.RefreshToken; rt != "" {
		if err := s.client.Logout(ctx, rt); err != nil {
			s.logger.Warn("backend logout failed, clearing local session anyway", "err", err)
		}
	}
	return s.sessions.Clear()
}

// Whoami returns the signed-in user and the expiry of the current access
// token. The expiry is zero when the token carries none.
func (s *Service) Whoami() (domain.User, time.Time, error) {
	sess := s.sessions.Session()
	if sess.Empty() {
		return domain.User{}, time.Time{}, ErrNotLoggedIn
	}
	return sess.User, AccessTokenExpiry(sess.Tokens.AccessToken), nil
}

// LastUsername returns the username last used against this backend.
func (s *Service) LastUsername() domain.Username {
	if s.accounts == nil {
		return ""
	}
	p, ok, err := s.accounts.LoadAccountProfile(s.serverURL)
	if err != nil || !ok {
		return ""
	}
	return p.Username
}

// AccessTokenExpiry reads the exp claim of a JWT without verifying it. The
// client cannot verify backend tokens; this is only used for display.
func AccessTokenExpiry(token string) time.Time {
	if token == "" {
		return time.Time{}
	}
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}
	}
	if claims.ExpiresAt == nil {
		return time.Time{}
	}
	return claims.ExpiresAt.Time
}
