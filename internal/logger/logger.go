package logger

import (
	"io"
	"log/slog"
)

// Initialize installs a text handler writing to w as the default logger.
// Payload data may go to stdout, so callers pass stderr here.
func Initialize(w io.Writer, level slog.Level) {
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	}))

	slog.SetDefault(logger)
}

func Named(name string) *slog.Logger {
	logger := slog.Default()
	if logger == nil {
		return nil
	}

	return logger.With("name", name)
}
