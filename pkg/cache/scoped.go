package cache

// ScopedKeyer wraps a Keyer with a prefix so that several deployments can
// share one Redis instance without colliding.
//
// Example usage:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "p2m:staging:")
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

// ResultKey generates a prefixed key for pipeline results.
func (k *ScopedKeyer) ResultKey(programHash string, opts ResultKeyOpts) string {
	return k.prefix + k.inner.ResultKey(programHash, opts)
}

// ModuleKey generates a prefixed key for module searches.
func (k *ScopedKeyer) ModuleKey(programHash string, opts ModuleKeyOpts) string {
	return k.prefix + k.inner.ModuleKey(programHash, opts)
}
