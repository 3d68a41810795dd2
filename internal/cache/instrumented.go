package cache

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// HitsTotal counts successful cache lookups.
	HitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "thumbnail_cache_hits_total",
		Help: "Total number of thumbnail cache hits.",
	})

	// MissesTotal counts failed cache lookups.
	MissesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "thumbnail_cache_misses_total",
		Help: "Total number of thumbnail cache misses.",
	})
)

var registerOnce sync.Once

// instrumentedCache wraps a Cache and records Prometheus hit/miss counters.
// The instrumentation lives in the cache layer so callers do not have to
// manage it.
type instrumentedCache struct {
	inner Cache
}

func newInstrumentedCache(inner Cache) *instrumentedCache {
	registerOnce.Do(func() {
		prometheus.MustRegister(HitsTotal, MissesTotal)
	})
	return &instrumentedCache{inner: inner}
}

func (c *instrumentedCache) Get(key string) ([]byte, bool) {
	value, ok := c.inner.Get(key)
	if ok {
		HitsTotal.Inc()
	} else {
		MissesTotal.Inc()
	}
	return value, ok
}

func (c *instrumentedCache) Set(key string, value []byte) {
	c.inner.Set(key, value)
}

func (c *instrumentedCache) Len() int {
	return c.inner.Len()
}

func (c *instrumentedCache) Close() error {
	return c.inner.Close()
}
