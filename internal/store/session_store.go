package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"organo/internal/domain"
)

const (
	sessionFilename       = "session.json"
	sealedSessionFilename = "session.json.enc"
)

// SessionFileStore persists the signed-in session to disk.
//
// With an empty passphrase the session is written as plain JSON (mode 0600).
// Otherwise it is sealed with a passphrase-derived key.
type SessionFileStore struct {
	dir        string
	passphrase string
	kdf        kdfParams
	mu         sync.Mutex
}

// NewSessionFileStore returns a SessionFileStore rooted at dir.
func NewSessionFileStore(dir, passphrase string) *SessionFileStore {
	return &SessionFileStore{dir: dir, passphrase: passphrase, kdf: defaultKDF}
}

func (s *SessionFileStore) path() string {
	if s.passphrase == "" {
		return filepath.Join(s.dir, sessionFilename)
	}
	return filepath.Join(s.dir, sealedSessionFilename)
}

// SaveSession writes the session, replacing any previous one.
func (s *SessionFileStore) SaveSession(session domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.passphrase == "" {
		return writeJSON(s.path(), session, 0o600)
	}
	raw, err := json.Marshal(session)
	if err != nil {
		return err
	}
	b, err := seal(s.passphrase, raw, s.kdf)
	if err != nil {
		return err
	}
	return writeFile(s.path(), b, 0o600)
}

// LoadSession returns the stored session and whether one was present.
func (s *SessionFileStore) LoadSession() (domain.Session, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := readFile(s.path())
	if err != nil {
		return domain.Session{}, false, err
	}
	if b == nil {
		return domain.Session{}, false, nil
	}
	if s.passphrase != "" {
		if b, err = open(s.passphrase, b); err != nil {
			return domain.Session{}, false, err
		}
	}
	var session domain.Session
	if err := json.Unmarshal(b, &session); err != nil {
		return domain.Session{}, false, err
	}
	if session.Empty() {
		return domain.Session{}, false, nil
	}
	return session, true, nil
}

// ClearSession removes the stored session. Clearing an absent session is not an error.
func (s *SessionFileStore) ClearSession() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path())
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// Compile-time assertion that SessionFileStore implements domain.SessionStore.
var _ domain.SessionStore = (*SessionFileStore)(nil)
