// Package logger configures structured JSON logging for the application.
package logger

import (
	"io"
	"log/slog"
	"os"
)

// Setup creates a JSON slog.Logger writing to w.
func Setup(w io.Writer) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	return slog.New(handler)
}

// SetupDefault installs a JSON logger as the process-wide default.
// Pass os.Stdout in production; tests can pass a buffer.
func SetupDefault(w io.Writer) {
	if w == nil {
		w = os.Stdout
	}
	slog.SetDefault(Setup(w))
}
