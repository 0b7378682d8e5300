package cache

// ScopedKeyer wraps a Keyer with a prefix so that several tools or users
// can share one backend, typically a Redis instance, without colliding.
//
// Example usage:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "degrees:")
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

// ReportKey generates a prefixed key for report caching.
func (k *ScopedKeyer) ReportKey(digest string, opts ReportKeyOpts) string {
	return k.prefix + k.inner.ReportKey(digest, opts)
}
