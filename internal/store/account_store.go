package store

import (
	"path/filepath"
	"sync"

	"organo/internal/domain"
)

const accountsFile = "accounts.json"

// AccountFileStore remembers, per backend URL, who signed in last. It holds
// no secrets.
type AccountFileStore struct {
	path string
	mu   sync.Mutex
}

var _ domain.AccountStore = (*AccountFileStore)(nil)

// NewAccountFileStore keeps accounts.json in dir.
func NewAccountFileStore(dir string) *AccountFileStore {
	return &AccountFileStore{path: filepath.Join(dir, accountsFile)}
}

func (s *AccountFileStore) profilesLocked() (map[string]domain.AccountProfile, error) {
	profiles := map[string]domain.AccountProfile{}
	if err := readJSON(s.path, &profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

// SaveAccountProfile records profile under its server URL. An unreadable
// accounts file is replaced.
func (s *AccountFileStore) SaveAccountProfile(profile domain.AccountProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	profiles, err := s.profilesLocked()
	if err != nil {
		profiles = map[string]domain.AccountProfile{}
	}
	profiles[profile.ServerURL] = profile
	return writeJSON(s.path, profiles, 0o600)
}

func (s *AccountFileStore) LoadAccountProfile(serverURL string) (domain.AccountProfile, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	profiles, err := s.profilesLocked()
	if err != nil {
		return domain.AccountProfile{}, false, err
	}
	p, ok := profiles[serverURL]
	return p, ok, nil
}
