package cache

// ScopedKeyer wraps a Keyer with a prefix. The CLI scopes keys by release so
// frames drawn by an older renderer are never served:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), buildinfo.Version+":")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// FrameKey generates a prefixed frame key.
func (k *ScopedKeyer) FrameKey(runHash string, opts FrameKeyOpts) string {
	return k.prefix + k.inner.FrameKey(runHash, opts)
}
