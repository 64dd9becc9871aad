// Package cache stores encoded diagram tokens so repeated renders of the same
// source skip compression.
//
// Three backends implement [Cache]:
//   - [FileCache]: JSON files under ~/.cache/umlpad/ for the CLI
//   - [RedisCache]: shared cache for multi-instance server deployments
//   - [NullCache]: no-op, used when caching is disabled
//
// Keys come from a [Keyer] so that backends never need to know what they
// store. Values are opaque bytes with a TTL; a zero TTL never expires.
package cache

import (
	"context"
	"errors"
	"time"
)

// Default TTLs.
const (
	// TTLToken is how long an encoded token stays cached. Encoding is
	// deterministic for a given encoder, so this only bounds disk usage.
	TTLToken = 7 * 24 * time.Hour
)

// ErrCacheMiss is returned by helpers when an item is not in the cache.
var ErrCacheMiss = errors.New("cache miss")

// Cache is a byte-oriented key/value store with expiration.
type Cache interface {
	// Get returns the value for key. The bool is false on a miss; a miss is
	// not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
