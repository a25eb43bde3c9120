package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

var (
	defaultLogger *slog.Logger
	once          sync.Once

	// disabledMux guards defaultLogger swaps done by Disable/Enable and the
	// dev console capture.
	disabledMux   sync.RWMutex
	enabledLogger *slog.Logger
)

// Initialize sets up the structured logger
func Initialize() {
	once.Do(func() {
		// JSON to stderr so stdout stays clean for command output
		handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level:     ParseLevel(os.Getenv("LOG_LEVEL")),
			AddSource: false,
		})
		defaultLogger = slog.New(handler)
	})
}

// ParseLevel maps a LOG_LEVEL value to a slog level. Unknown values map to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Get returns the default structured logger
func Get() *slog.Logger {
	Initialize() // Always call Initialize, sync.Once ensures it only runs once

	disabledMux.RLock()
	defer disabledMux.RUnlock()
	return defaultLogger
}

// Disable discards all log output until Enable is called.
// Used while the TUI owns the terminal.
func Disable() {
	Initialize()

	disabledMux.Lock()
	defer disabledMux.Unlock()

	if enabledLogger != nil {
		return
	}
	enabledLogger = defaultLogger
	defaultLogger = slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Enable restores the logger replaced by Disable.
func Enable() {
	disabledMux.Lock()
	defer disabledMux.Unlock()

	if enabledLogger == nil {
		return
	}
	defaultLogger = enabledLogger
	enabledLogger = nil
}

// Info logs an info level message
func Info(msg string, args ...any) {
	Get().Info(msg, args...)
}

// InfoContext logs an info level message with context
func InfoContext(ctx context.Context, msg string, args ...any) {
	Get().InfoContext(ctx, msg, args...)
}

// Warn logs a warning level message
func Warn(msg string, args ...any) {
	Get().Warn(msg, args...)
}

// WarnContext logs a warning level message with context
func WarnContext(ctx context.Context, msg string, args ...any) {
	Get().WarnContext(ctx, msg, args...)
}

// Error logs an error level message
func Error(msg string, args ...any) {
	Get().Error(msg, args...)
}

// ErrorContext logs an error level message with context
func ErrorContext(ctx context.Context, msg string, args ...any) {
	Get().ErrorContext(ctx, msg, args...)
}

// Debug logs a debug level message
func Debug(msg string, args ...any) {
	Get().Debug(msg, args...)
}

// DebugContext logs a debug level message with context
func DebugContext(ctx context.Context, msg string, args ...any) {
	Get().DebugContext(ctx, msg, args...)
}

// With returns a logger with the given attributes
func With(args ...any) *slog.Logger {
	return Get().With(args...)
}

// WithGroup returns a logger with the given group name
func WithGroup(name string) *slog.Logger {
	return Get().WithGroup(name)
}
