// Package logging builds the slog logger used by the builder and the CLI.
package logging

import (
	"io"
	"log/slog"
	"os"
)

// Config holds logger configuration.
type Config struct {
	Level  int    // 1=debug, 2=info, 3=warning, 4=error
	Format string // "text" (default) or "json"
	Output io.Writer
}

// Level maps a 1..4 verbosity to the slog level below which messages are
// suppressed. Out of range values clamp to the nearest level.
func Level(v int) slog.Level {
	switch {
	case v <= 1:
		return slog.LevelDebug
	case v == 2:
		return slog.LevelInfo
	case v == 3:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}

// New creates a logger writing to cfg.Output, or stderr when unset.
func New(cfg Config) *slog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: Level(cfg.Level)}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}
	return slog.New(handler)
}
