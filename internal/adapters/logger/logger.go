// Package logger implements a logging adapter using log/slog.
package logger

import (
	"io"
	"log/slog"
	"os"

	"go.mup.dev/mup/internal/core/ports"
)

// Logger implements ports.Logger using log/slog with a text handler.
type Logger struct {
	logger *slog.Logger
}

// New creates a Logger writing human-readable output to stderr.
func New() ports.Logger {
	return NewWithOutput(os.Stderr)
}

// NewWithOutput creates a Logger writing to the given writer.
func NewWithOutput(w io.Writer) *Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	return &Logger{logger: slog.New(handler)}
}

// Info logs an informational message with optional key-value attributes.
func (l *Logger) Info(msg string, args ...any) {
	l.logger.Info(msg, args...)
}

// Warn logs a warning message with optional key-value attributes.
func (l *Logger) Warn(msg string, args ...any) {
	l.logger.Warn(msg, args...)
}

// Error logs an error. zerr metadata is rendered through the error's string
// form.
func (l *Logger) Error(err error) {
	l.logger.Error("operation failed", "error", err)
}
