package session

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"organo/internal/domain"
)

// protectedServer accepts only "Bearer new" and counts every hit.
// firstWave is released once `expect` requests carrying the old token arrived.
type protectedServer struct {
	hits      atomic.Int32
	rejected  atomic.Int32
	firstWave sync.WaitGroup
	bodies    chan string
}

func newProtectedServer(t *testing.T, expect int) (*protectedServer, *httptest.Server) {
	t.Helper()
	ps := &protectedServer{bodies: make(chan string, 64)}
	ps.firstWave.Add(expect)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ps.hits.Add(1)
		if r.Body != nil {
			b, _ := io.ReadAll(r.Body)
			if len(b) > 0 {
				ps.bodies <- string(b)
			}
		}
		if r.Header.Get("Authorization") != "Bearer new" {
			ps.rejected.Add(1)
			w.WriteHeader(http.StatusUnauthorized)
			ps.firstWave.Done()
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}))
	t.Cleanup(srv.Close)
	return ps, srv
}

func TestTransport_ConcurrentUnauthorizedRefreshesOnce(t *testing.T) {
	const n = 8
	ps, srv := newProtectedServer(t, n)

	var refreshes atomic.Int32
	m := signedIn(t, nil, RefreshFunc(func(ctx context.Context, rt string) (domain.TokenPair, error) {
		refreshes.Add(1)
		ps.firstWave.Wait() // every request has been rejected once
		return domain.TokenPair{AccessToken: "new"}, nil
	}))
	client := &http.Client{Transport: NewTransport(m, nil)}

	var wg sync.WaitGroup
	statuses := make(chan int, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := client.Get(srv.URL + "/subjects")
			if !assert.NoError(t, err) {
				return
			}
			defer resp.Body.Close()
			statuses <- resp.StatusCode
		}()
	}
	wg.Wait()
	close(statuses)

	assert.EqualValues(t, 1, refreshes.Load())
	for code := range statuses {
		assert.Equal(t, http.StatusOK, code)
	}
	assert.EqualValues(t, 2*n, ps.hits.Load(), "each request sent once and replayed once")
}

func TestTransport_RefreshFailureRejectsAllWithoutReplay(t *testing.T) {
	const n = 5
	ps, srv := newProtectedServer(t, n)

	var refreshes atomic.Int32
	m := signedIn(t, nil, RefreshFunc(func(ctx context.Context, rt string) (domain.TokenPair, error) {
		refreshes.Add(1)
		ps.firstWave.Wait()
		return domain.TokenPair{}, errors.New("invalid refresh token")
	}))
	client := &http.Client{Transport: NewTransport(m, nil)}

	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := client.Get(srv.URL + "/topics")
			if resp != nil {
				resp.Body.Close()
			}
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	assert.EqualValues(t, 1, refreshes.Load())
	for err := range errs {
		assert.ErrorIs(t, err, ErrSessionExpired)
	}
	assert.EqualValues(t, n, ps.hits.Load(), "no request is replayed")
	assert.True(t, m.Session().Empty())
}

func TestTransport_ReplaysBody(t *testing.T) {
	ps, srv := newProtectedServer(t, 1)
	m := signedIn(t, nil, RefreshFunc(func(ctx context.Context, rt string) (domain.TokenPair, error) {
		return domain.TokenPair{AccessToken: "new"}, nil
	}))
	client := &http.Client{Transport: NewTransport(m, nil)}

	resp, err := client.Post(srv.URL+"/subjects", "application/json", strings.NewReader(`{"name":"Burocracia"}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, ps.bodies, 2)
	assert.Equal(t, `{"name":"Burocracia"}`, <-ps.bodies)
	assert.Equal(t, `{"name":"Burocracia"}`, <-ps.bodies)
}

func TestTransport_ExcludedPathsCarryTokenWithoutRefresh(t *testing.T) {
	auth := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth <- r.Header.Get("Authorization")
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	var refreshes atomic.Int32
	m := signedIn(t, nil, RefreshFunc(func(ctx context.Context, rt string) (domain.TokenPair, error) {
		refreshes.Add(1)
		return domain.TokenPair{AccessToken: "new"}, nil
	}))
	client := &http.Client{Transport: NewTransport(m, nil)}

	for _, path := range DefaultExcludedPaths {
		t.Run(path, func(t *testing.T) {
			resp, err := client.Post(srv.URL+path, "application/json", strings.NewReader(`{}`))
			require.NoError(t, err)
			resp.Body.Close()

			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			assert.Equal(t, "Bearer old", <-auth)
		})
	}
	assert.Zero(t, refreshes.Load(), "auth endpoints never trigger a refresh")
	assert.Equal(t, "old", m.AccessToken())
}

func TestTransport_NoSessionSendsNoToken(t *testing.T) {
	auth := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth <- r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	m := NewManager(nil, RefreshFunc(func(ctx context.Context, rt string) (domain.TokenPair, error) {
		return domain.TokenPair{}, nil
	}))
	client := &http.Client{Transport: NewTransport(m, nil)}

	resp, err := client.Post(srv.URL+"/auth/login", "application/json", strings.NewReader(`{}`))
	require.NoError(t, err)
	resp.Body.Close()

	assert.Empty(t, <-auth)
}

func TestTransport_MarksReplayInContext(t *testing.T) {
	var replays atomic.Int32
	base := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		if IsReplay(r.Context()) {
			replays.Add(1)
		}
		return http.DefaultTransport.RoundTrip(r)
	})
	_, srv := newProtectedServer(t, 1)
	m := signedIn(t, nil, RefreshFunc(func(ctx context.Context, rt string) (domain.TokenPair, error) {
		return domain.TokenPair{AccessToken: "new"}, nil
	}))
	client := &http.Client{Transport: NewTransport(m, base)}

	resp, err := client.Get(srv.URL + "/subjects")
	require.NoError(t, err)
	resp.Body.Close()

	assert.EqualValues(t, 1, replays.Load())
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }
