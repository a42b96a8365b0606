// Package logging installs the process-wide slog handler: colored tint output
// for local development, JSON for everything else.
package logging

import (
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// ParseLevel maps a LOG_LEVEL value to a slog level. Unknown values map to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewHandler builds the handler for the given environment.
func NewHandler(w io.Writer, env, level string) slog.Handler {
	lvl := ParseLevel(level)
	if env == "development" {
		return tint.NewHandler(w, &tint.Options{
			Level:      lvl,
			TimeFormat: time.Kitchen,
			AddSource:  lvl == slog.LevelDebug,
		})
	}
	return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl})
}

// Setup installs the handler as the slog default and returns the logger.
func Setup(w io.Writer, env, level string) *slog.Logger {
	logger := slog.New(NewHandler(w, env, level))
	slog.SetDefault(logger)
	return logger
}
