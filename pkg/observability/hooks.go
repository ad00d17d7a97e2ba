// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation of a merge run without the
// merge package depending on a particular backend. The CLI registers hooks
// at startup; library code calls them at well-defined points of the run.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define a hook interface for merge events
//   - Provide a no-op default implementation
//   - Allow registration of a custom implementation at startup
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetMergeHooks(&myMergeHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Merge().OnMergeStart(ctx, len(streams))
//	// ... merge ...
//	observability.Merge().OnMergeComplete(ctx, records, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Merge Hooks
// =============================================================================

// MergeHooks receives events from a merge run. Streams are identified by
// their position in the run's stream list.
type MergeHooks interface {
	// Run events
	OnMergeStart(ctx context.Context, streams int)
	OnMergeComplete(ctx context.Context, records int, duration time.Duration, err error)

	// OnEmit records one written output record.
	OnEmit(ctx context.Context, stream int, x, dy, center float64)

	// OnMalformedRecord records an input line that was skipped.
	OnMalformedRecord(ctx context.Context, stream int, err error)

	// OnStreamExhausted records that a stream has no input left.
	OnStreamExhausted(ctx context.Context, stream int, records int)
}

// =============================================================================
// No-op Implementation
// =============================================================================

// NoopMergeHooks is a no-op implementation of MergeHooks.
type NoopMergeHooks struct{}

func (NoopMergeHooks) OnMergeStart(context.Context, int)                          {}
func (NoopMergeHooks) OnMergeComplete(context.Context, int, time.Duration, error) {}
func (NoopMergeHooks) OnEmit(context.Context, int, float64, float64, float64)     {}
func (NoopMergeHooks) OnMalformedRecord(context.Context, int, error)              {}
func (NoopMergeHooks) OnStreamExhausted(context.Context, int, int)                {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	mergeHooks MergeHooks = NoopMergeHooks{}
	hooksMu    sync.RWMutex
)

// SetMergeHooks registers custom merge hooks.
// This should be called once at application startup before any merge runs.
// A nil h leaves the current hooks in place.
func SetMergeHooks(h MergeHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		mergeHooks = h
	}
}

// Merge returns the registered merge hooks.
func Merge() MergeHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return mergeHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	mergeHooks = NoopMergeHooks{}
}
