package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"organo/internal/session"
)

var errMissingID = errors.New("id is required")

// APIError is a non-2xx answer from the backend.
type APIError struct {
	Method  string
	URL     string
	Status  int
	Message string
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	return fmt.Sprintf("backend %s %s: %d %s", e.Method, e.URL, e.Status, msg)
}

func newAPIError(req *http.Request, resp *http.Response) *APIError {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
	return &APIError{
		Method:  req.Method,
		URL:     req.URL.String(),
		Status:  resp.StatusCode,
		Message: errorMessage(raw),
	}
}

// errorMessage pulls a human message out of an error body. The backend
// answers {"error": "..."}; anything else is used as plain text.
func errorMessage(raw []byte) string {
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if json.Unmarshal(raw, &body) == nil {
		if body.Error != "" {
			return body.Error
		}
		if body.Message != "" {
			return body.Message
		}
	}
	return strings.TrimSpace(string(raw))
}

func statusIs(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}

// IsUnauthorized reports whether err means the user has to sign in (again).
func IsUnauthorized(err error) bool {
	return errors.Is(err, session.ErrSessionExpired) || statusIs(err, http.StatusUnauthorized)
}

// IsForbidden reports a 403, usually a student using a teacher command.
func IsForbidden(err error) bool { return statusIs(err, http.StatusForbidden) }

// IsNotFound reports a 404.
func IsNotFound(err error) bool { return statusIs(err, http.StatusNotFound) }

// IsNetwork reports whether the request never got an HTTP answer.
func IsNetwork(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, session.ErrSessionExpired) {
		return false
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return false
	}
	var urlErr *url.Error
	return errors.As(err, &urlErr)
}
