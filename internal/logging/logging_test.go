package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lugat/internal/config"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestNew_JSON(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	logger := New(config.LogConfig{Level: "warn", Format: "json"}, &buf)

	logger.Info("hidden")
	logger.Warn("shown", "op", "list words")

	var line map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line))
	assert.Equal(t, "shown", line["msg"])
	assert.Equal(t, "list words", line["op"])
	assert.Same(t, logger, slog.Default())
}

func TestNew_Text(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	New(config.LogConfig{Level: "debug", Format: "text"}, &buf).Debug("hello", "k", "v")
	assert.Contains(t, buf.String(), "msg=hello")
	assert.Contains(t, buf.String(), "k=v")
	assert.Contains(t, buf.String(), "source=")
}

func TestOpen(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	path := filepath.Join(t.TempDir(), "nested", "lugat.log")
	logger, closer, err := Open(config.LogConfig{Level: "info", Format: "text", File: path})
	require.NoError(t, err)
	logger.Info("to file")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to file")
}
