// Package logger implements a logging adapter using log/slog.
package logger

import (
	"io"
	"log/slog"
	"os"
	"sort"
	"sync"

	"go.trai.ch/lathe/internal/core/domain"
	"go.trai.ch/lathe/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Logger = (*Logger)(nil)

// Logger implements ports.Logger using log/slog.
type Logger struct {
	logger *slog.Logger
	level  *slog.LevelVar
	mu     sync.RWMutex
}

// New creates a new Logger writing text records to stderr at info level.
func New() *Logger {
	level := &slog.LevelVar{}
	level.Set(slog.LevelInfo)
	return &Logger{
		logger: slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})),
		level:  level,
	}
}

// SetOutput updates the logger's output destination.
func (l *Logger) SetOutput(w io.Writer) {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: l.level})
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logger = slog.New(handler)
}

// SetLevel changes the minimum level that is written.
func (l *Logger) SetLevel(level domain.LogLevel) {
	l.level.Set(slog.Level(level))
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Debug(msg)
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Info(msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Warn(msg)
}

// Error logs an error together with the metadata attached anywhere in its chain.
// Where two layers carry the same key, the outer one wins.
func (l *Logger) Error(err error) {
	attrs := []any{"error", err.Error()}
	attrs = appendMetadata(attrs, err, make(map[string]bool))

	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Error("operation failed", attrs...)
}

func appendMetadata(attrs []any, err error, seen map[string]bool) []any {
	if err == nil {
		return attrs
	}

	if zErr, ok := err.(*zerr.Error); ok { //nolint:errorlint // Each layer of the chain is inspected on its own
		meta := zErr.Metadata()
		keys := make([]string, 0, len(meta))
		for k := range meta {
			if !seen[k] {
				keys = append(keys, k)
				seen[k] = true
			}
		}
		sort.Strings(keys)
		for _, k := range keys {
			attrs = append(attrs, k, meta[k])
		}
	}

	switch u := err.(type) { //nolint:errorlint // Unwrapping by hand to reach joined errors
	case interface{ Unwrap() error }:
		return appendMetadata(attrs, u.Unwrap(), seen)
	case interface{ Unwrap() []error }:
		for _, e := range u.Unwrap() {
			attrs = appendMetadata(attrs, e, seen)
		}
	}
	return attrs
}
