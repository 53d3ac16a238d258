// Package logging provides the structured file logger used by cratui.
// The terminal is owned by the UI while the program runs, so log output
// always goes to a file as JSON lines.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Log levels supported by the logger
const (
	LevelDebug = "DEBUG"
	LevelInfo  = "INFO"
	LevelWarn  = "WARN"
	LevelError = "ERROR"
)

// Logger writes JSON-formatted log entries. It is safe for concurrent use.
type Logger struct {
	logger *slog.Logger
	file   *os.File
	mu     *sync.Mutex
}

// NewLogger opens (or creates) the log file at path and returns a Logger
// writing to it. Entries below level are dropped.
func NewLogger(path string, level string) (*Logger, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("log file path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return &Logger{
		logger: slog.New(newHandler(file, level)),
		file:   file,
		mu:     &sync.Mutex{},
	}, nil
}

// New wraps an arbitrary writer. Used by tests to capture output.
func New(w io.Writer, level string) *Logger {
	return &Logger{
		logger: slog.New(newHandler(w, level)),
		mu:     &sync.Mutex{},
	}
}

// NopLogger returns a Logger that discards all output.
func NopLogger() *Logger {
	return New(io.Discard, LevelError)
}

func newHandler(w io.Writer, level string) slog.Handler {
	return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: parseLevel(level)})
}

// parseLevel converts a string log level to slog.Level.
// Defaults to INFO if the level string is not recognized.
func parseLevel(level string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ValidLevel reports whether level names one of the supported levels.
func ValidLevel(level string) bool {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case LevelDebug, LevelInfo, LevelWarn, LevelError:
		return true
	}
	return false
}

// With returns a child Logger that adds the given key-value pairs to every entry.
func (l *Logger) With(args ...any) *Logger {
	if len(args) == 0 {
		return l
	}
	return &Logger{
		logger: l.logger.With(args...),
		file:   l.file,
		mu:     l.mu,
	}
}

// Debug logs a message at DEBUG level with optional key-value pairs.
func (l *Logger) Debug(msg string, args ...any) { l.logger.Debug(msg, args...) }

// Info logs a message at INFO level with optional key-value pairs.
func (l *Logger) Info(msg string, args ...any) { l.logger.Info(msg, args...) }

// Warn logs a message at WARN level with optional key-value pairs.
func (l *Logger) Warn(msg string, args ...any) { l.logger.Warn(msg, args...) }

// Error logs a message at ERROR level with optional key-value pairs.
func (l *Logger) Error(msg string, args ...any) { l.logger.Error(msg, args...) }

// Close flushes and closes the log file. Child loggers share the file,
// so only the root logger should be closed.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return nil
	}
	if err := l.file.Sync(); err != nil {
		return fmt.Errorf("failed to sync log file: %w", err)
	}
	if err := l.file.Close(); err != nil {
		return fmt.Errorf("failed to close log file: %w", err)
	}
	l.file = nil
	return nil
}
