// Package logger sets up structured logging with log/slog. Output goes to
// stderr so that stdout stays free for reports.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Init creates a text logger for the given service, installs it as the
// slog default and returns it.
func Init(service string, level slog.Level) *slog.Logger {
	logger := New(os.Stderr, service, level)
	slog.SetDefault(logger)
	return logger
}

// New is Init with an explicit destination. It does not touch the default
// logger.
func New(w io.Writer, service string, level slog.Level) *slog.Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	})
	return slog.New(handler).With(slog.String("service", service))
}

// ParseLevel maps "debug", "info", "warn" and "error" onto slog levels.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}
