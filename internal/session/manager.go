package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"organo/internal/crypto"
	"organo/internal/domain"
	"organo/internal/logging"
)

var (
	// ErrSessionExpired signals that the session could not be renewed and the
	// user has to sign in again.
	ErrSessionExpired = errors.New("session expired, please log in again")
	// ErrNoRefreshToken is wrapped in ErrSessionExpired when there is nothing to refresh with.
	ErrNoRefreshToken = errors.New("no refresh token available")
	// ErrExcluded is returned by HandleUnauthorized for auth endpoints.
	ErrExcluded = errors.New("request is excluded from token refresh")
)

// DefaultExcludedPaths are the auth endpoints that must never trigger a refresh.
var DefaultExcludedPaths = []string{"/auth/login", "/auth/logout", "/auth/refresh"}

const defaultRefreshTimeout = 10 * time.Second

// Refresher exchanges a refresh token for a new token pair.
type Refresher interface {
	Refresh(ctx context.Context, refreshToken string) (domain.TokenPair, error)
}

// RefreshFunc adapts a function to Refresher.
type RefreshFunc func(ctx context.Context, refreshToken string) (domain.TokenPair, error)

func (f RefreshFunc) Refresh(ctx context.Context, refreshToken string) (domain.TokenPair, error) {
	return f(ctx, refreshToken)
}

type refreshResult struct {
	token string
	err   error
}

// Manager holds the session and coordinates token refreshes.
type Manager struct {
	store     domain.SessionStore
	refresher Refresher
	logger    logging.Logger
	timeout   time.Duration
	excluded  []string
	onLogout  func(error)
	now       func() time.Time

	mu         sync.Mutex
	session    domain.Session
	refreshing bool
	waiters    []chan refreshResult
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger used for refresh diagnostics.
func WithLogger(l logging.Logger) Option {
	return func(m *Manager) { m.logger = l }
}

// WithRefreshTimeout bounds a single refresh call.
func WithRefreshTimeout(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.timeout = d
		}
	}
}

// WithExcludedPaths replaces the list of path suffixes that never trigger a refresh.
func WithExcludedPaths(paths ...string) Option {
	return func(m *Manager) { m.excluded = append([]string(nil), paths...) }
}

// WithLogoutHook registers fn to run once whenever a failed refresh forces a logout.
func WithLogoutHook(fn func(error)) Option {
	return func(m *Manager) { m.onLogout = fn }
}

// NewManager returns a Manager persisting through store and refreshing through r.
// store may be nil for a memory-only session.
func NewManager(store domain.SessionStore, r Refresher, opts ...Option) *Manager {
	m := &Manager{
		store:     store,
		refresher: r,
		logger:    logging.Nop{},
		timeout:   defaultRefreshTimeout,
		excluded:  DefaultExcludedPaths,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Load restores the persisted session, if any.
func (m *Manager) Load() (bool, error) {
	if m.store == nil {
		return false, nil
	}
	s, ok, err := m.store.LoadSession()
	if err != nil {
		return false, fmt.Errorf("loading session: %w", err)
	}
	if !ok {
		return false, nil
	}
	m.mu.Lock()
	m.session = s
	m.mu.Unlock()
	return true, nil
}

// Start replaces the session after a successful login and persists it.
func (m *Manager) Start(s domain.Session) error {
	if s.UpdatedAt.IsZero() {
		s.UpdatedAt = m.now()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = s
	return m.persistLocked()
}

// Session returns a snapshot of the current session.
func (m *Manager) Session() domain.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session
}

// AccessToken returns the current access token, or "" when signed out.
func (m *Manager) AccessToken() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session.Tokens.AccessToken
}

// Clear forgets the session in memory and in the store.
func (m *Manager) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = domain.Session{}
	return m.clearStoreLocked()
}

// AttachAuth sets the bearer header from the current access token.
// Without a token the header is left untouched.
func (m *Manager) AttachAuth(req *http.Request) {
	if token := m.AccessToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

// Excluded reports whether req targets an auth endpoint that must not be retried.
func (m *Manager) Excluded(req *http.Request) bool {
	if req == nil || req.URL == nil {
		return false
	}
	path := strings.TrimRight(req.URL.Path, "/")
	for _, p := range m.excluded {
		if strings.HasSuffix(path, p) {
			return true
		}
	}
	return false
}

// HandleUnauthorized returns a fresh access token for a request (failed) that
// the backend answered with 401.
//
// Only one refresh runs at a time. Callers arriving while it is in flight are
// queued and receive its outcome. A request sent with a token that has since
// been replaced gets the current token without a new refresh.
func (m *Manager) HandleUnauthorized(ctx context.Context, failed *http.Request) (string, error) {
	if m.Excluded(failed) {
		return "", ErrExcluded
	}
	sent := bearerToken(failed)

	m.mu.Lock()
	if m.refreshing {
		ch := make(chan refreshResult, 1)
		m.waiters = append(m.waiters, ch)
		m.mu.Unlock()

		select {
		case res := <-ch:
			return res.token, res.err
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if current := m.session.Tokens.AccessToken; current != "" && sent != "" && sent != current {
		m.mu.Unlock()
		return current, nil
	}
	m.refreshing = true
	refreshToken := m.session.Tokens.RefreshToken
	m.mu.Unlock()

	pair, err := m.refresh(ctx, refreshToken)
	if err != nil {
		return "", m.fail(err)
	}
	return m.succeed(pair), nil
}

func (m *Manager) refresh(ctx context.Context, refreshToken string) (domain.TokenPair, error) {
	if refreshToken == "" {
		return domain.TokenPair{}, ErrNoRefreshToken
	}
	if m.refresher == nil {
		return domain.TokenPair{}, errors.New("no refresher configured")
	}
	// The refresh outlives the request that triggered it: queued callers depend on it.
	rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), m.timeout)
	defer cancel()

	pair, err := m.refresher.Refresh(rctx, refreshToken)
	if err != nil {
		return domain.TokenPair{}, err
	}
	if pair.AccessToken == "" {
		return domain.TokenPair{}, errors.New("refresh returned an empty access token")
	}
	return pair, nil
}

func (m *Manager) succeed(pair domain.TokenPair) string {
	m.mu.Lock()
	m.session.Tokens.AccessToken = pair.AccessToken
	if pair.RefreshToken != "" {
		m.session.Tokens.RefreshToken = pair.RefreshToken
	}
	m.session.UpdatedAt = m.now()
	if err := m.persistLocked(); err != nil {
		m.logger.Warn("persisting refreshed session", "err", err)
	}
	waiters := m.waiters
	m.waiters = nil
	m.refreshing = false
	m.mu.Unlock()

	m.logger.Debug("access token refreshed",
		"fingerprint", crypto.Fingerprint(pair.AccessToken),
		"queued", len(waiters),
	)
	for _, w := range waiters {
		w <- refreshResult{token: pair.AccessToken}
	}
	return pair.AccessToken
}

func (m *Manager) fail(cause error) error {
	m.mu.Lock()
	hadSession := !m.session.Empty()
	m.session = domain.Session{}
	if err := m.clearStoreLocked(); err != nil {
		m.logger.Warn("clearing session after failed refresh", "err", err)
	}
	waiters := m.waiters
	m.waiters = nil
	m.refreshing = false
	m.mu.Unlock()

	expired := fmt.Errorf("%w: %w", ErrSessionExpired, cause)
	m.logger.Warn("token refresh failed, signing out", "err", cause, "queued", len(waiters))
	for _, w := range waiters {
		w <- refreshResult{err: expired}
	}
	if hadSession && m.onLogout != nil {
		m.onLogout(expired)
	}
	return expired
}

func (m *Manager) persistLocked() error {
	if m.store == nil {
		return nil
	}
	return m.store.SaveSession(m.session)
}

func (m *Manager) clearStoreLocked() error {
	if m.store == nil {
		return nil
	}
	return m.store.ClearSession()
}

func bearerToken(req *http.Request) string {
	if req == nil {
		return ""
	}
	h := req.Header.Get("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return h[7:]
	}
	return ""
}
