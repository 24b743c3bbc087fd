// Package logging builds the application logger from config.
package logging

import (
	"log/slog"
	"os"

	"github.com/ledgerline-dev/ledgerline/internal/config"
)

// NewLogger creates a structured logger based on config. Unknown levels fall
// back to info, unknown formats to text.
func NewLogger(cfg config.LoggingConfig) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	return slog.New(handler)
}
