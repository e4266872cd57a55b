package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupJSONWritesFields(t *testing.T) {
	var buf bytes.Buffer
	Setup(Options{Level: "debug", Format: "json", Output: &buf})
	t.Cleanup(func() { Setup(Options{Level: "info", Format: "console"}) })

	Warn("caption kept", "day", 3, "provider", "ollama")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "caption kept", entry["message"])
	assert.EqualValues(t, 3, entry["day"])
	assert.Equal(t, "ollama", entry["provider"])
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	Setup(Options{Level: "warn", Format: "json", Output: &buf})
	t.Cleanup(func() { Setup(Options{Level: "info", Format: "console"}) })

	Debug("hidden")
	Info("hidden too")
	Error("export failed", errors.New("disk full"))

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "disk full")
}

func TestWithAddsContext(t *testing.T) {
	var buf bytes.Buffer
	Setup(Options{Level: "info", Format: "console", Output: &buf})
	t.Cleanup(func() { Setup(Options{Level: "info", Format: "console"}) })

	l := With("run_id", "abc123")
	l.Info().Msg("plan generated")

	assert.True(t, strings.Contains(buf.String(), "run_id=abc123"), buf.String())
}

func TestInvalidLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	Setup(Options{Level: "loud", Format: "json", Output: &buf})
	t.Cleanup(func() { Setup(Options{Level: "info", Format: "console"}) })

	Debug("nope")
	Info("yes")
	assert.NotContains(t, buf.String(), "nope")
	assert.Contains(t, buf.String(), "yes")
}
