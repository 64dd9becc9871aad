package cache

// Keyer builds cache keys for the values umlpad caches.
type Keyer interface {
	// TokenKey returns the key for the token of a diagram source.
	// sourceHash is [Hash] of the source; encoder identifies the encoder
	// configuration so that raw and zlib tokens never collide.
	TokenKey(sourceHash, encoder string) string
}

// DefaultKeyer produces unprefixed keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// TokenKey implements Keyer.
func (DefaultKeyer) TokenKey(sourceHash, encoder string) string {
	return hashKey("token", sourceHash, encoder)
}

// ScopedKeyer prefixes every key, for deployments that share one Redis
// between several umlpad instances or tenants.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// If inner is nil, [DefaultKeyer] is used.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// TokenKey implements Keyer.
func (k *ScopedKeyer) TokenKey(sourceHash, encoder string) string {
	return k.prefix + k.inner.TokenKey(sourceHash, encoder)
}
