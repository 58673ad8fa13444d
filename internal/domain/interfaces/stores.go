package interfaces

import (
	"time"

	domaintypes "organo/internal/domain/types"
)

// SessionStore persists the signed-in session between invocations.
type SessionStore interface {
	SaveSession(session domaintypes.Session) error
	LoadSession() (domaintypes.Session, bool, error)
	ClearSession() error
}

// AccountStore remembers the last account used per backend.
type AccountStore interface {
	SaveAccountProfile(profile domaintypes.AccountProfile) error
	LoadAccountProfile(serverURL string) (domaintypes.AccountProfile, bool, error)
}

// CommandRepository keeps the history of evaluated voice commands.
type CommandRepository interface {
	InsertCommand(cmd domaintypes.Command) error
	ListCommands(limit int) ([]domaintypes.Command, error)
}

// RequestRecord is one backend call as seen by the client.
type RequestRecord struct {
	Method   string
	Path     string
	Status   int
	Duration time.Duration
	Replayed bool
	Err      string
	At       time.Time
}

// RequestRecorder receives an entry for every backend call.
type RequestRecorder interface {
	RecordRequest(rec RequestRecord) error
}

// RequestRepository stores the backend audit trail.
type RequestRepository interface {
	RequestRecorder
	InsertRequest(rec RequestRecord) error
	ListRequests(limit int) ([]RequestRecord, error)
}
