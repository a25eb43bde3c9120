package logger

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"
)

// LogEntry is a single record kept for the TUI dev console
type LogEntry struct {
	Time    time.Time
	Level   slog.Level
	Message string
	Attrs   string // Formatted key=value pairs
}

// ConsoleBuffer is a fixed-size ring of log entries
type ConsoleBuffer struct {
	mu      sync.RWMutex
	entries []LogEntry
	head    int
	count   int
}

// NewConsoleBuffer creates a ring buffer holding at most capacity entries
func NewConsoleBuffer(capacity int) *ConsoleBuffer {
	if capacity < 1 {
		capacity = 1
	}
	return &ConsoleBuffer{entries: make([]LogEntry, capacity)}
}

// Add appends an entry, overwriting the oldest one when full
func (b *ConsoleBuffer) Add(entry LogEntry) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.entries[b.head] = entry
	b.head = (b.head + 1) % len(b.entries)
	if b.count < len(b.entries) {
		b.count++
	}
}

// GetRecent returns up to n entries, newest first
func (b *ConsoleBuffer) GetRecent(n int) []LogEntry {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if n > b.count {
		n = b.count
	}
	if n <= 0 {
		return nil
	}

	size := len(b.entries)
	result := make([]LogEntry, n)
	for i := 0; i < n; i++ {
		result[i] = b.entries[(b.head-1-i+size)%size]
	}
	return result
}

// Count returns the number of buffered entries
func (b *ConsoleBuffer) Count() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.count
}

// Clear drops all buffered entries
func (b *ConsoleBuffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.head = 0
	b.count = 0
}

// ConsoleHandler is a slog.Handler that records into a ConsoleBuffer
type ConsoleHandler struct {
	buffer *ConsoleBuffer
	level  slog.Level
	attrs  []slog.Attr
	group  string
}

// NewConsoleHandler creates a handler capturing records at or above level
func NewConsoleHandler(buffer *ConsoleBuffer, level slog.Level) *ConsoleHandler {
	return &ConsoleHandler{buffer: buffer, level: level}
}

func (h *ConsoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *ConsoleHandler) Handle(_ context.Context, r slog.Record) error {
	var sb strings.Builder
	write := func(a slog.Attr) {
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		if h.group != "" {
			sb.WriteString(h.group)
			sb.WriteByte('.')
		}
		fmt.Fprintf(&sb, "%s=%v", a.Key, a.Value.Any())
	}

	for _, a := range h.attrs {
		write(a)
	}
	r.Attrs(func(a slog.Attr) bool {
		write(a)
		return true
	})

	h.buffer.Add(LogEntry{
		Time:    r.Time,
		Level:   r.Level,
		Message: r.Message,
		Attrs:   sb.String(),
	})
	return nil
}

func (h *ConsoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &ConsoleHandler{buffer: h.buffer, level: h.level, attrs: merged, group: h.group}
}

func (h *ConsoleHandler) WithGroup(name string) slog.Handler {
	return &ConsoleHandler{buffer: h.buffer, level: h.level, attrs: h.attrs, group: name}
}

// Console buffer, only allocated when LOG_LEVEL=DEBUG
var (
	consoleBuffer     *ConsoleBuffer
	consoleBufferOnce sync.Once
)

// InitConsole allocates the dev console buffer when LOG_LEVEL=DEBUG.
// Returns true if the console is available.
func InitConsole() bool {
	consoleBufferOnce.Do(func() {
		if ParseLevel(os.Getenv("LOG_LEVEL")) == slog.LevelDebug {
			consoleBuffer = NewConsoleBuffer(500)
		}
	})
	return consoleBuffer != nil
}

// GetConsoleBuffer returns the console buffer (nil if not initialized)
func GetConsoleBuffer() *ConsoleBuffer {
	return consoleBuffer
}

// EnableConsoleCapture routes the default logger into the console buffer.
// Call after Disable so Enable restores the original output on exit.
func EnableConsoleCapture() {
	if consoleBuffer == nil {
		return
	}

	disabledMux.Lock()
	defer disabledMux.Unlock()
	defaultLogger = slog.New(NewConsoleHandler(consoleBuffer, slog.LevelDebug))
}

// FormatLevel returns a short label for the log level
func FormatLevel(level slog.Level) string {
	switch level {
	case slog.LevelDebug:
		return "DBG"
	case slog.LevelInfo:
		return "INF"
	case slog.LevelWarn:
		return "WRN"
	case slog.LevelError:
		return "ERR"
	default:
		return "???"
	}
}
