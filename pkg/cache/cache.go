// Package cache stores rendered frames keyed by content hash.
//
// Rendering a long step log to PNG or SVG is the slowest thing stepviz does,
// and the output is a pure function of the algorithm, the input and the frame
// settings. The pipeline hashes those into a key with a [Keyer] and asks a
// [Cache] before rendering.
//
// # Implementations
//
//   - [NullCache]: caching disabled
//   - [MemoryCache]: bounded in-process cache, the CLI fallback when no
//     cache directory can be created
//   - [FileCache]: one file per entry under the user cache directory
//
// # Keys
//
// Keys are "prefix:sha256". [ScopedKeyer] prepends a namespace so entries
// written by one release are never read by another:
//
//	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "v1.2.0:")
//	key := keyer.FrameKey(cache.RunHash("bubble", inputJSON), cache.FrameKeyOpts{
//	    Format: "png", Index: 3, Width: 960, Height: 540,
//	})
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with optional per-entry expiry.
type Cache interface {
	// Get returns the stored bytes and whether the key was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// TTLFrame is the default lifetime of a cached frame.
const TTLFrame = 7 * 24 * time.Hour

// =============================================================================
// Keys
// =============================================================================

// Keyer derives cache keys.
type Keyer interface {
	// FrameKey identifies one rendered frame (or a whole-run artifact such
	// as a GIF, which uses Index -1).
	FrameKey(runHash string, opts FrameKeyOpts) string
}

// FrameKeyOpts are the settings that change a frame's bytes.
type FrameKeyOpts struct {
	Format     string `json:"format"`
	Index      int    `json:"index"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	Layout     string `json:"layout,omitempty"`
	Seed       uint64 `json:"seed,omitempty"`
	Iterations int    `json:"iterations,omitempty"`
	Directed   bool   `json:"directed,omitempty"`
	Theme      string `json:"theme,omitempty"` // hash of the theme
	DelayMs    int    `json:"delay_ms,omitempty"`
}

// DefaultKeyer produces unprefixed keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// FrameKey implements Keyer.
func (DefaultKeyer) FrameKey(runHash string, opts FrameKeyOpts) string {
	return hashKey("frame", runHash, opts)
}

var _ Keyer = DefaultKeyer{}
