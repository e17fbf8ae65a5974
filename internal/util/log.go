// Package util provides shared helpers for logging, retries, call-site
// timing, and the A-share trading calendar.
package util

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

// ParseLevel maps a configuration string to a slog.Level. Supported:
// "debug", "info", "warn", "error". Defaults to info if the string is not
// recognised.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger creates a structured logger using log/slog at the specified
// level, writing JSON to stdout.
func NewLogger(level string) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: ParseLevel(level),
	})
	return slog.New(handler)
}

// NewDaemonLogger creates a text logger writing to both stdout and a dated
// log file under dir (e.g. /tmp/cn-quotes-2023-04-14.log). It returns the
// logger, the file (caller closes), and the file path.
func NewDaemonLogger(dir, name, level string) (*slog.Logger, *os.File, string, error) {
	path := fmt.Sprintf("%s/%s-%s.log", dir, name, time.Now().Format("2006-01-02"))
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, "", fmt.Errorf("creating log file %s: %w", path, err)
	}

	w := io.MultiWriter(os.Stdout, f)
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: ParseLevel(level),
	}))
	return logger, f, path, nil
}

// SetDefault configures the provided logger as the default slog logger.
func SetDefault(logger *slog.Logger) {
	slog.SetDefault(logger)
}
