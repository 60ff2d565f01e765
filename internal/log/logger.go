// Package log wraps slog with the package-level helpers used across hostdiag
package log

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

var (
	logger *slog.Logger
	mu     sync.RWMutex
)

// ParseLogLevel converts a string log level to a slog.Level.
// Valid values are "debug", "info", "warn", "error".
// Unknown values map to warn so that a CLI run stays quiet.
func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// InitLog (re)initializes the logger writing text records to stderr
func InitLog(logLevel string) {
	InitLogTo(os.Stderr, logLevel)
}

// InitLogTo (re)initializes the logger writing to w
func InitLogTo(w io.Writer, logLevel string) {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: ParseLogLevel(logLevel),
	})

	mu.Lock()
	defer mu.Unlock()
	logger = slog.New(handler)
}

// GetLog returns the configured logger, creating a warn-level one on first use
func GetLog() *slog.Logger {
	mu.RLock()
	if logger != nil {
		defer mu.RUnlock()
		return logger
	}
	mu.RUnlock()

	mu.Lock()
	defer mu.Unlock()

	// Double-check after acquiring write lock
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelWarn,
		}))
	}
	return logger
}

// Debug logs at debug level
func Debug(msg string, args ...any) { GetLog().Debug(msg, args...) }

// Info logs at info level
func Info(msg string, args ...any) { GetLog().Info(msg, args...) }

// Warn logs at warn level
func Warn(msg string, args ...any) { GetLog().Warn(msg, args...) }

