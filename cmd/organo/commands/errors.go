package commands

import (
	"errors"

	"organo/internal/backend"
	authsvc "organo/internal/services/auth"
	"organo/internal/session"
	"organo/internal/store"
	"organo/internal/validate"
	"organo/internal/voice"
)

var (
	errNoHistory      = errors.New("history database is not available")
	errBadCredentials = errors.New("wrong username or password")
)

// userMessage turns err into the short line shown to the user.
func userMessage(err error) string {
	var verr *validate.Error
	var apiErr *backend.APIError
	switch {
	case errors.Is(err, authsvc.ErrNotLoggedIn):
		return "not logged in, run `organo login` first"
	case errors.Is(err, session.ErrSessionExpired), errors.Is(err, session.ErrNoRefreshToken), backend.IsUnauthorized(err):
		return "your session has expired, please log in again"
	case errors.Is(err, store.ErrWrongPassphrase):
		return "the stored session cannot be opened with this passphrase"
	case errors.Is(err, voice.ErrUnsupported):
		return "speech recognition is not available on this device"
	case errors.As(err, &verr):
		return verr.Error()
	case backend.IsNetwork(err):
		return "cannot reach the server, check your connection and server_url"
	case backend.IsForbidden(err):
		return "your account is not allowed to do that"
	case backend.IsNotFound(err):
		return "not found"
	case errors.As(err, &apiErr) && apiErr.Message != "":
		return apiErr.Message
	default:
		return err.Error()
	}
}
