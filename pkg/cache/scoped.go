package cache

// ScopedKeyer wraps a Keyer with a prefix so several hosts or users can share
// one cache backend without seeing each other's entries.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "workspace:notes:")
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
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// PreparedKey generates a prefixed key for prepared graphs.
func (k *ScopedKeyer) PreparedKey(responseHash string, opts PreparedKeyOpts) string {
	return k.prefix + k.inner.PreparedKey(responseHash, opts)
}

// PatchKey generates a prefixed key for patch results.
func (k *ScopedKeyer) PatchKey(documentHash, responseHash string, opts PatchKeyOpts) string {
	return k.prefix + k.inner.PatchKey(documentHash, responseHash, opts)
}
