package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/sharktrack-backend-go/internal/config"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	}
	for in, want := range tests {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestNewHandler_JSON(t *testing.T) {
	var buf bytes.Buffer
	h, err := NewHandler(&buf, "json", slog.LevelInfo, false)
	require.NoError(t, err)

	log := slog.New(h)
	log.Debug("hidden")
	log.Info("generation run complete", "predictions", 150)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "generation run complete", entry["msg"])
	assert.EqualValues(t, 150, entry["predictions"])
	assert.Contains(t, entry, "time")
}

func TestNewHandler_InvalidFormat(t *testing.T) {
	_, err := NewHandler(&bytes.Buffer{}, "xml", slog.LevelInfo, false)
	assert.Error(t, err)
}

func TestSetup_File(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	path := filepath.Join(t.TempDir(), "sharktrack.log")
	log, closeLog, err := Setup(config.LogConfig{Level: "info", Format: "text", Output: "file", FilePath: path})
	require.NoError(t, err)

	log.Info("hello")
	require.NoError(t, closeLog())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "msg=hello")
}

func TestSetup_Errors(t *testing.T) {
	_, _, err := Setup(config.LogConfig{Level: "nope"})
	assert.Error(t, err)

	_, _, err = Setup(config.LogConfig{Level: "info", Output: "file"})
	assert.Error(t, err)

	_, _, err = Setup(config.LogConfig{Level: "info", Output: "syslog"})
	assert.Error(t, err)
}
