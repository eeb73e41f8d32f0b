// Package observability provides hooks for metrics, tracing, and logging.
//
// Library packages never log or export metrics themselves. Instead they call
// the hooks registered here, which default to no-ops. A host (or the mend CLI)
// installs real implementations at startup.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetSynthesisHooks(&mySynthesisHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Synthesis().OnSynthesizeStart(ctx, source)
//	// ... synthesize ...
//	observability.Synthesis().OnSynthesizeComplete(ctx, source, nodes, edges, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Synthesis Hooks
// =============================================================================

// SynthesisHooks receives events from graph synthesis. source identifies the
// response being synthesized, typically a file name.
type SynthesisHooks interface {
	OnSynthesizeStart(ctx context.Context, source string)
	OnSynthesizeComplete(ctx context.Context, source string, nodes, edges int, duration time.Duration, err error)
}

// =============================================================================
// Patch Hooks
// =============================================================================

// PatchHooks receives events from patch application.
type PatchHooks interface {
	OnPatchStart(ctx context.Context, changes int)
	OnPatchComplete(ctx context.Context, applied, failed int, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations. keyType is "prepared" or
// "patch".
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopSynthesisHooks is a no-op implementation of SynthesisHooks.
type NoopSynthesisHooks struct{}

func (NoopSynthesisHooks) OnSynthesizeStart(context.Context, string) {}
func (NoopSynthesisHooks) OnSynthesizeComplete(context.Context, string, int, int, time.Duration, error) {
}

// NoopPatchHooks is a no-op implementation of PatchHooks.
type NoopPatchHooks struct{}

func (NoopPatchHooks) OnPatchStart(context.Context, int)                              {}
func (NoopPatchHooks) OnPatchComplete(context.Context, int, int, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	synthesisHooks SynthesisHooks = NoopSynthesisHooks{}
	patchHooks     PatchHooks     = NoopPatchHooks{}
	cacheHooks     CacheHooks     = NoopCacheHooks{}
	hooksMu        sync.RWMutex
)

// SetSynthesisHooks registers custom synthesis hooks. A nil argument is
// ignored.
func SetSynthesisHooks(h SynthesisHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		synthesisHooks = h
	}
}

// SetPatchHooks registers custom patch hooks. A nil argument is ignored.
func SetPatchHooks(h PatchHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		patchHooks = h
	}
}

// SetCacheHooks registers custom cache hooks. A nil argument is ignored.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Synthesis returns the registered synthesis hooks.
func Synthesis() SynthesisHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return synthesisHooks
}

// Patch returns the registered patch hooks.
func Patch() PatchHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return patchHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	synthesisHooks = NoopSynthesisHooks{}
	patchHooks = NoopPatchHooks{}
	cacheHooks = NoopCacheHooks{}
}
