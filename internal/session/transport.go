package session

import (
	"context"
	"io"
	"net/http"
)

type replayKey struct{}

// IsReplay reports whether ctx belongs to a request replayed after a refresh.
func IsReplay(ctx context.Context) bool {
	v, _ := ctx.Value(replayKey{}).(bool)
	return v
}

// Transport authenticates requests through a Manager and replays a request
// once when the backend rejects its token.
type Transport struct {
	Manager *Manager
	Base    http.RoundTripper // defaults to http.DefaultTransport
}

// NewTransport returns a Transport over base.
func NewTransport(m *Manager, base http.RoundTripper) *Transport {
	return &Transport{Manager: m, Base: base}
}

func (t *Transport) base() http.RoundTripper {
	if t.Base != nil {
		return t.Base
	}
	return http.DefaultTransport
}

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	first := req.Clone(req.Context())
	t.Manager.AttachAuth(first)
	resp, err := t.base().RoundTrip(first)
	if err != nil || resp.StatusCode != http.StatusUnauthorized {
		return resp, err
	}
	// Auth endpoints carry the token but never enter the refresh flow.
	if t.Manager.Excluded(req) {
		return resp, nil
	}
	// A consumed body that cannot be rewound cannot be replayed.
	if req.Body != nil && req.Body != http.NoBody && req.GetBody == nil {
		return resp, nil
	}

	token, err := t.Manager.HandleUnauthorized(req.Context(), first)
	drainAndClose(resp.Body)
	if err != nil {
		return nil, err
	}

	retry := req.Clone(context.WithValue(req.Context(), replayKey{}, true))
	if req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, err
		}
		retry.Body = body
	}
	retry.Header.Set("Authorization", "Bearer "+token)
	return t.base().RoundTrip(retry)
}

func drainAndClose(body io.ReadCloser) {
	if body == nil {
		return
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(body, 64<<10))
	_ = body.Close()
}

var _ http.RoundTripper = (*Transport)(nil)
