package app

import (
	"bytes"
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"organo/internal/devapi"
	"organo/internal/domain"
	"organo/internal/voice"
)

func TestLoadConfig_WritesDefaults(t *testing.T) {
	home := filepath.Join(t.TempDir(), "organo")

	cfg, err := LoadConfig(home)
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(home, "config.yaml"))
	assert.Equal(t, "http://127.0.0.1:8080", cfg.ServerURL)
	assert.Equal(t, 15*time.Second, cfg.Timeout)
	assert.Equal(t, 10*time.Second, cfg.RefreshTimeout)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, 250*time.Millisecond, cfg.Voice.RestartDelay)
	assert.Equal(t, filepath.Join(home, "history.db"), cfg.HistoryDB)
}

func TestLoadConfig_FileEnvAndDotEnv(t *testing.T) {
	home := t.TempDir()
	yaml := `server_url: http://files.example/
timeout: 3s
voice:
  screens:
    home:
      - intent: navigate:exam
        keywords: [evaluación, prueba final]
`
	require.NoError(t, os.WriteFile(filepath.Join(home, "config.yaml"), []byte(yaml), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(home, ".env"), []byte("ORGANO_LOG_LEVEL=debug\n"), 0o600))
	t.Setenv("ORGANO_TIMEOUT", "7s")
	t.Cleanup(func() { os.Unsetenv("ORGANO_LOG_LEVEL") })

	cfg, err := LoadConfig(home)
	require.NoError(t, err)

	assert.Equal(t, "http://files.example", cfg.ServerURL)
	assert.Equal(t, 7*time.Second, cfg.Timeout, "environment wins over the file")
	assert.Equal(t, "debug", cfg.LogLevel)

	sets := cfg.Voice.KeywordSets()[voice.ScreenHome]
	require.Len(t, sets, 1)
	assert.Equal(t, voice.Navigate(voice.ScreenExam), sets[0].Intent)
	assert.Equal(t, []string{"evaluación", "prueba final"}, sets[0].Keywords)
}

func TestNewWire_EndToEnd(t *testing.T) {
	ts := httptest.NewServer(devapi.New(devapi.Config{}))
	defer ts.Close()

	home := t.TempDir()
	t.Setenv("ORGANO_SERVER_URL", ts.URL)
	cfg, err := LoadConfig(home)
	require.NoError(t, err)
	var logs bytes.Buffer
	cfg.LogOutput = &logs

	w, err := NewWire(cfg)
	require.NoError(t, err)
	defer w.Close()
	require.NotNil(t, w.History)
	ctx := context.Background()

	user, err := w.Auth.Login(ctx, domain.Credentials{Username: "teacher", Password: "teacher"})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleTeacher, user.Role)

	_, err = w.Content.CreateSubject(ctx, domain.Subject{Name: "Organización"})
	require.NoError(t, err)

	requests, err := w.History.ListRequests(0)
	require.NoError(t, err)
	require.Len(t, requests, 2)
	assert.Equal(t, "/subjects", requests[0].Path)

	t.Run("should restore the session in a new wire", func(t *testing.T) {
		again, err := NewWire(cfg)
		require.NoError(t, err)
		defer again.Close()

		who, _, err := again.Auth.Whoami()
		require.NoError(t, err)
		assert.Equal(t, domain.Username("teacher"), who.Username)
	})

	nav := w.Navigation(nil)
	_, ok := nav.Handle(ctx, "temas")
	assert.True(t, ok)
	cmds, err := w.History.ListCommands(0)
	require.NoError(t, err)
	assert.Len(t, cmds, 1)
}
