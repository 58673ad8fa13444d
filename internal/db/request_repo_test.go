package db

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"organo/internal/domain"
)

func TestRequestRepo(t *testing.T) {
	t.Run("should store and list requests", func(t *testing.T) {
		repo, teardown := setupTestDB(t)
		defer teardown()

		at := time.Date(2025, 10, 20, 12, 0, 0, 0, time.UTC)
		ok := domain.RequestRecord{Method: "GET", Path: "/subjects", Status: 200, Duration: 42 * time.Millisecond, Replayed: true, At: at}
		failed := domain.RequestRecord{Method: "POST", Path: "/auth/refresh", Err: "connection refused", At: at.Add(time.Second)}

		require.NoError(t, repo.RecordRequest(ok))
		require.NoError(t, repo.InsertRequest(failed))

		got, err := repo.ListRequests(10)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, failed, got[0])
		assert.Equal(t, ok, got[1])
	})

	t.Run("should default the timestamp", func(t *testing.T) {
		repo, teardown := setupTestDB(t)
		defer teardown()

		require.NoError(t, repo.InsertRequest(domain.RequestRecord{Method: "GET", Path: "/auth/me", Status: 401}))
		got, err := repo.ListRequests(1)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.False(t, got[0].At.IsZero())
	})
}
