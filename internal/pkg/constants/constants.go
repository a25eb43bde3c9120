// Package constants provides shared constants used across flipt-analytics components.
package constants

import "time"

// Flipt connection defaults
const (
	// DefaultAddress is the Flipt server queried when nothing is configured
	DefaultAddress = "http://localhost:8080"

	// DefaultNamespace is Flipt's built-in namespace
	DefaultNamespace = "default"

	// DefaultRequestTimeout bounds a single analytics request
	DefaultRequestTimeout = 10 * time.Second

	// DefaultRetries is the number of retries for transient server errors
	DefaultRetries = 3
)

// Shutdown and graceful termination timeouts
const (
	// GracefulShutdownTimeout is the time to wait for graceful component shutdown
	GracefulShutdownTimeout = 2 * time.Second
)

// TUI timing
const (
	// TUITickInterval drives toast dismissal
	TUITickInterval = 100 * time.Millisecond

	// MinRefreshInterval is the shortest accepted periodic refresh interval.
	// Shorter non-zero values are raised to it.
	MinRefreshInterval = 5 * time.Second
)

// Channel buffer sizes
const (
	// SignalChannelBuffer is the buffer size for OS signal channels
	SignalChannelBuffer = 1
)

// Config directory relative to the user's home
const ConfigDir = ".config/flipt-analytics"
