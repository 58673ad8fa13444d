package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/labstack/gommon/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]log.Lvl{
		"debug":  log.DEBUG,
		"INFO":   log.INFO,
		" warn ": log.WARN,
		"error":  log.ERROR,
		"off":    log.OFF,
		"bogus":  log.WARN,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestGommonLogger_WritesFieldsAndRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "info")

	l.Debug("hidden")
	l.Info("refreshed", "fingerprint", "ab12", "err", errors.New("boom"))

	out := strings.TrimSpace(buf.String())
	require.NotEmpty(t, out)
	assert.NotContains(t, out, "hidden")

	var line map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &line))
	assert.Equal(t, "refreshed", line["msg"])
	assert.Equal(t, "ab12", line["fingerprint"])
	assert.Equal(t, "boom", line["err"])
}

func TestFields_OddTrailingKey(t *testing.T) {
	j := fields("m", []any{"a", 1, "dangling"})
	assert.Equal(t, 1, j["a"])
	assert.Equal(t, "dangling", j["extra"])
}
