// Package logging builds the process-wide slog logger.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/abhisek/lugat/internal/config"
)

// New creates a *slog.Logger writing to w based on cfg and sets it as the
// default logger via slog.SetDefault.
//
// Format "json" produces JSON lines; anything else produces text with
// source locations. Level is one of debug, info, warn, error
// (case-insensitive) and defaults to info.
func New(cfg config.LogConfig, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:     ParseLevel(cfg.Level),
		AddSource: !strings.EqualFold(cfg.Format, "json"),
	}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// Open opens the log file named by cfg (or DefaultPath) for appending and
// returns a logger writing to it. The caller closes the returned file.
// The terminal UI owns stdout, so logs never go there.
func Open(cfg config.LogConfig) (*slog.Logger, io.Closer, error) {
	path := cfg.File
	if path == "" {
		var err error
		if path, err = DefaultPath(); err != nil {
			return nil, nil, err
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return New(cfg, f), f, nil
}

// DefaultPath returns $XDG_STATE_HOME/lugat/lugat.log, falling back to
// ~/.local/state/lugat/lugat.log.
func DefaultPath() (string, error) {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		stateHome = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateHome, "lugat", "lugat.log"), nil
}

// ParseLevel maps a level name to a slog.Level, defaulting to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
