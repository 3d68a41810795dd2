// Package cache provides the byte cache backing thumbnail delivery. Cached
// images are immutable per URL, so entries only ever expire, never change.
package cache

import (
	"fmt"
	"time"
)

// Logger receives error reports from cache operations. If nil, errors are
// silently ignored.
type Logger interface {
	Error(msg string, err error)
}

// Cache is a key-value byte cache with TTL semantics. Implementations may be
// in-memory or backed by Redis/Valkey.
type Cache interface {
	// Get retrieves a value by key. Returns the value and true on a hit.
	Get(key string) ([]byte, bool)

	// Set stores a value, overwriting any existing entry for the key.
	Set(key string, value []byte)

	// Len returns the number of entries currently in the cache.
	Len() int

	// Close releases any resources held by the cache (e.g., network
	// connections). For in-memory caches this is a no-op.
	Close() error
}

// Options configures a cache instance.
type Options struct {
	// Provider selects the backend: "memory" (default) or "redis".
	Provider string

	// Size is the maximum number of entries. Only the memory backend
	// enforces it; Redis relies on its server-side eviction policy.
	Size int

	// TTL is the time-to-live for entries.
	TTL time.Duration

	// Logger receives backend error reports.
	Logger Logger

	RedisAddress  string
	RedisPassword string
	RedisDB       int
}

// New creates a Cache for the configured provider, wrapped with Prometheus
// hit/miss instrumentation.
func New(opts Options) (Cache, error) {
	var (
		inner Cache
		err   error
	)
	switch opts.Provider {
	case "", "memory":
		inner = newMemoryCache(opts)
	case "redis":
		inner, err = newRedisCache(opts)
	default:
		return nil, fmt.Errorf("cache: unknown provider %q", opts.Provider)
	}
	if err != nil {
		return nil, err
	}
	return newInstrumentedCache(inner), nil
}
