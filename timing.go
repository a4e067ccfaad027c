// FILE: docsync/timing.go
package docsync

import "time"

// Timing constants for the opt-in file watcher.
const (
	SpinWaitInterval     = 5 * time.Millisecond   // CPU-friendly busy-wait quantum
	MinPollInterval      = 100 * time.Millisecond // Hard floor for file stat polling
	ShutdownTimeout      = 100 * time.Millisecond // Graceful watcher termination window
	DefaultDebounce      = 500 * time.Millisecond // File change coalescence period
	DefaultPollInterval  = time.Second            // Standard file monitoring frequency
	DefaultReloadTimeout = 5 * time.Second        // Maximum duration for a watcher reload
)

// DefaultMaxWatchers bounds the subscriber channels of one mapper.
const DefaultMaxWatchers = 100

// watchBufferSize is the capacity of each subscriber channel.
const watchBufferSize = 10
