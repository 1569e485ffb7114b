package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

type slogLogger struct {
	l     *slog.Logger
	level slog.Level
}

// NewSlogLogger creates a JSON logger. Logf messages are emitted at the given level
// (DEBUG, INFO, WARN or ERROR; anything else means INFO).
func NewSlogLogger(level string, w io.Writer) Logger {
	lvl := ParseLevel(level)
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl})
	return &slogLogger{l: slog.New(handler), level: lvl}
}

// ParseLevel converts a level name into a slog level, defaulting to INFO.
func ParseLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Logf logs a formatted message at the configured level.
func (s *slogLogger) Logf(format string, args ...interface{}) {
	s.l.Log(context.Background(), s.level, fmt.Sprintf(format, args...))
}

// With returns a logger carrying the given attributes.
func (s *slogLogger) With(args ...any) Logger {
	return &slogLogger{l: s.l.With(args...), level: s.level}
}
