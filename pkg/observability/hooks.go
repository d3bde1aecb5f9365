// Package observability provides hooks for instrumenting the drawing surface.
//
// The core packages never import a metrics or tracing backend. Instead they
// report a handful of events through the hook interfaces below, and the host
// registers an implementation at startup (the CLI registers one backed by
// charmbracelet/log).
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// # Usage
//
//	func main() {
//	    observability.SetSurfaceHooks(&myHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Surface().OnStrokeCommitted(rec.Origin.String(), rec.ID, len(rec.Points))
package observability

import (
	"sync"
	"time"
)

// =============================================================================
// Surface Hooks
// =============================================================================

// SurfaceHooks receives events from the drawing surface.
//
// Events are emitted from the single goroutine that drives the surface, so
// implementations only need to synchronise with their own readers.
type SurfaceHooks interface {
	// OnStrokeCommitted records a stroke entering the committed collection.
	// origin is "pointer" or "intro".
	OnStrokeCommitted(origin, id string, points int)

	// OnClear records a ClearAll, with the state it discarded.
	OnClear(strokes, covered int, cancelledIntro bool)

	// OnIntroComplete records the end of the intro animation.
	OnIntroComplete(variant string, strokes int, elapsed time.Duration)

	// OnFault records a panic recovered at a callback boundary.
	OnFault(where string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopSurfaceHooks is a no-op implementation of SurfaceHooks.
type NoopSurfaceHooks struct{}

func (NoopSurfaceHooks) OnStrokeCommitted(string, string, int)      {}
func (NoopSurfaceHooks) OnClear(int, int, bool)                     {}
func (NoopSurfaceHooks) OnIntroComplete(string, int, time.Duration) {}
func (NoopSurfaceHooks) OnFault(string, error)                      {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	surfaceHooks SurfaceHooks = NoopSurfaceHooks{}
	hooksMu      sync.RWMutex
)

// SetSurfaceHooks registers custom surface hooks.
// This should be called once at application startup. A nil value is ignored.
func SetSurfaceHooks(h SurfaceHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		surfaceHooks = h
	}
}

// Surface returns the registered surface hooks.
func Surface() SurfaceHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return surfaceHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	surfaceHooks = NoopSurfaceHooks{}
}
