package logger

import (
	"log/slog"
	"os"
)

// New returns the structured JSON logger services log through.
func New() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}
