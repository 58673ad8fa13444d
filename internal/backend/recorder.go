package backend

import (
	"net/http"
	"time"

	"organo/internal/domain"
	"organo/internal/logging"
	"organo/internal/session"
)

// RecordingTransport reports every round trip to a RequestRecorder. Put it
// below session.Transport so that replays are recorded as their own entries.
type RecordingTransport struct {
	Base     http.RoundTripper
	Recorder domain.RequestRecorder
	Logger   logging.Logger

	now func() time.Time
}

// NewRecordingTransport wraps base. A nil recorder only logs.
func NewRecordingTransport(base http.RoundTripper, rec domain.RequestRecorder, logger logging.Logger) *RecordingTransport {
	if base == nil {
		base = http.DefaultTransport
	}
	if logger == nil {
		logger = logging.Nop{}
	}
	return &RecordingTransport{Base: base, Recorder: rec, Logger: logger, now: time.Now}
}

// RoundTrip implements http.RoundTripper.
func (t *RecordingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := t.now()
	resp, err := t.Base.RoundTrip(req)

	rec := domain.RequestRecord{
		Method:   req.Method,
		Path:     req.URL.Path,
		Duration: t.now().Sub(start),
		Replayed: session.IsReplay(req.Context()),
		At:       start.UTC(),
	}
	if err != nil {
		rec.Err = err.Error()
	} else {
		rec.Status = resp.StatusCode
	}
	t.Logger.Debug("backend request",
		"method", rec.Method, "path", rec.Path, "status", rec.Status,
		"duration", rec.Duration.String(), "replayed", rec.Replayed)

	if t.Recorder != nil {
		if rerr := t.Recorder.RecordRequest(rec); rerr != nil {
			t.Logger.Warn("recording request", "err", rerr)
		}
	}
	return resp, err
}

var _ http.RoundTripper = (*RecordingTransport)(nil)
