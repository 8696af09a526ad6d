// Package logging provides structured logging for add-skills.
//
// Diagnostics go to stderr through log/slog; user-facing output stays on
// stdout and is written by the command layer.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// DefaultLevel is used when neither a flag nor the config file sets a level.
const DefaultLevel = slog.LevelWarn

// New creates a text logger writing to w at the given level.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewForTest creates a silent logger for tests.
func NewForTest() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
}

// OrDiscard returns logger, or a silent logger when logger is nil.
func OrDiscard(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return NewForTest()
	}
	return logger
}

// ParseLevel converts a config level name to a slog.Level.
// An empty name yields DefaultLevel.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "":
		return DefaultLevel, nil
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return DefaultLevel, fmt.Errorf("unknown log level %q (want debug, info, warn or error)", name)
	}
}
