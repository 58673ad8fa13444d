package app

import (
	"errors"
	"net/http"
	"os"
	"sync"

	"organo/internal/backend"
	"organo/internal/db"
	"organo/internal/domain"
	"organo/internal/logging"
	authsvc "organo/internal/services/auth"
	contentsvc "organo/internal/services/content"
	examsvc "organo/internal/services/exam"
	navsvc "organo/internal/services/navigation"
	"organo/internal/session"
	"organo/internal/store"
	"organo/internal/validate"
)

// Wire bundles all stores, services, and clients for the CLI.
type Wire struct {
	Config    Config
	Logger    logging.Logger
	Validator *validate.Validator
	Accounts  domain.AccountStore
	Sessions  *session.Manager
	Backend   *backend.Client
	History   *db.Repository // nil when the history database could not be opened
	Auth      *authsvc.Service
	Content   *contentsvc.Service
	Exams     *examsvc.Service

	// SessionExpired is closed when a failed refresh signs the user out.
	SessionExpired <-chan struct{}
}

// NewWire constructs the dependency graph from cfg and restores the
// persisted session, if any.
func NewWire(cfg Config) (*Wire, error) {
	out := cfg.LogOutput
	if out == nil {
		out = os.Stderr
	}
	logger := logging.New(out, cfg.LogLevel)
	v := validate.New(cfg.Language)

	// File-based stores
	sessionStore := store.NewSessionFileStore(cfg.Home, cfg.Passphrase)
	accountStore := store.NewAccountFileStore(cfg.Home)

	// A broken history database must not keep the CLI from working.
	var history *db.Repository
	var recorder domain.RequestRecorder
	if cfg.HistoryDB != "" {
		repo, err := db.Open(cfg.HistoryDB)
		if err != nil {
			logger.Warn("history disabled", "path", cfg.HistoryDB, "err", err)
		} else {
			history, recorder = repo, repo
		}
	}

	base := http.DefaultTransport
	if cfg.HTTP != nil && cfg.HTTP.Transport != nil {
		base = cfg.HTTP.Transport
	}
	recording := backend.NewRecordingTransport(base, recorder, logger)

	// The refresh call goes around the session transport.
	raw := backend.New(cfg.ServerURL, &http.Client{Transport: recording, Timeout: cfg.Timeout}, v)

	expired := make(chan struct{})
	closeExpired := sync.OnceFunc(func() { close(expired) })
	mgr := session.NewManager(sessionStore, raw,
		session.WithLogger(logger),
		session.WithRefreshTimeout(cfg.RefreshTimeout),
		session.WithLogoutHook(func(err error) {
			logger.Warn("session expired", "err", err)
			closeExpired()
		}),
	)
	if _, err := mgr.Load(); err != nil {
		if !errors.Is(err, store.ErrWrongPassphrase) {
			return nil, err
		}
		logger.Warn("stored session cannot be opened with the configured passphrase", "err", err)
	}

	api := backend.New(cfg.ServerURL, &http.Client{
		Transport: session.NewTransport(mgr, recording),
		Timeout:   cfg.Timeout,
	}, v)

	return &Wire{
		Config:         cfg,
		Logger:         logger,
		Validator:      v,
		Accounts:       accountStore,
		Sessions:       mgr,
		Backend:        api,
		History:        history,
		Auth:           authsvc.New(api, mgr, accountStore, cfg.ServerURL, logger),
		Content:        contentsvc.New(api),
		Exams:          examsvc.New(api, logger),
		SessionExpired: expired,
	}, nil
}

// Navigation returns a navigation service using the configured keyword sets
// and recording into the history database.
func (w *Wire) Navigation(nav navsvc.Navigator) *navsvc.Service {
	var history domain.CommandRepository
	if w.History != nil {
		history = w.History
	}
	return navsvc.New(w.Config.Voice.KeywordSets(), history, nav, w.Logger)
}

// Close releases the history database.
func (w *Wire) Close() error {
	if w.History == nil {
		return nil
	}
	return w.History.Close()
}
