package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitDisabledDiscards(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, Init(Options{Enabled: false, Writer: &out}))
	Error("dropped")
	assert.Empty(t, out.String())
}

func TestInitText(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, Init(Options{Enabled: true, Level: slog.LevelInfo, Writer: &out}))
	t.Cleanup(func() { _ = Init(Options{}) })

	Debug("hidden")
	Info("opened", "path", "icon.rsrc")
	assert.NotContains(t, out.String(), "hidden")
	assert.Contains(t, out.String(), "msg=opened")
	assert.Contains(t, out.String(), "path=icon.rsrc")
}

func TestInitJSON(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, Init(Options{Enabled: true, Level: slog.LevelDebug, Writer: &out, JSON: true}))
	t.Cleanup(func() { _ = Init(Options{}) })

	Warn("size mismatch", "size", 8)
	var rec map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &rec))
	assert.Equal(t, "WARN", rec["level"])
	assert.Equal(t, "size mismatch", rec["msg"])
	assert.EqualValues(t, 8, rec["size"])
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]slog.Level{
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	} {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseLevel("loud")
	assert.Error(t, err)
}
