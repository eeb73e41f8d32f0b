// Package cache provides content-addressed caching for synthesis and patch
// results.
//
// # Backends
//
//   - [FileCache]: JSON entries under a directory, for the CLI
//   - [RedisCache]: a shared Redis instance, for hosts running several workers
//   - [NullCache]: stores nothing, used when caching is disabled
//
// # Keys
//
// Keys are derived by a [Keyer] from hashes of the inputs and every option
// that affects the output, so a changed option never returns a stale result:
//
//	key := keyer.PreparedKey(cache.Hash([]byte(resp)), cache.PreparedKeyOpts{KeepOrphans: false})
//
// Only deterministic results are cached. A synthesized graph is cached after
// validation and sanitization; identifier regeneration and layout run on every
// call so each synthesis hands out fresh ids.
package cache

import (
	"context"
	"time"
)

// Default entry lifetimes.
const (
	TTLPrepared = 7 * 24 * time.Hour
	TTLPatch    = 24 * time.Hour
)

// Cache is a byte-oriented key/value store with per-entry expiry.
//
// Get reports a miss with (nil, false, nil); an error means the backend
// itself failed. Implementations must be safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// =============================================================================
// Keys
// =============================================================================

// PreparedKeyOpts lists the options that change a prepared graph.
type PreparedKeyOpts struct {
	KeepOrphans bool `json:"keep_orphans"`
}

// PatchKeyOpts lists the options that change a patch result.
type PatchKeyOpts struct {
	Threshold float64 `json:"threshold"`
}

// Keyer derives cache keys.
type Keyer interface {
	// PreparedKey identifies the validated and sanitized graph of a response.
	PreparedKey(responseHash string, opts PreparedKeyOpts) string

	// PatchKey identifies the result of applying a response to a document.
	PatchKey(documentHash, responseHash string, opts PatchKeyOpts) string
}

// DefaultKeyer is the standard [Keyer].
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// PreparedKey returns "prepared:<sha256>".
func (DefaultKeyer) PreparedKey(responseHash string, opts PreparedKeyOpts) string {
	return hashKey("prepared", responseHash, opts)
}

// PatchKey returns "patch:<sha256>".
func (DefaultKeyer) PatchKey(documentHash, responseHash string, opts PatchKeyOpts) string {
	return hashKey("patch", documentHash, responseHash, opts)
}

var _ Keyer = DefaultKeyer{}
