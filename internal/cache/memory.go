package cache

import (
	lru "github.com/hashicorp/golang-lru/v2/expirable"
)

// memoryCache wraps hashicorp/golang-lru/v2/expirable to implement the Cache
// interface in process memory.
type memoryCache struct {
	inner *lru.LRU[string, []byte]
}

func newMemoryCache(opts Options) Cache {
	return &memoryCache{
		inner: lru.NewLRU[string, []byte](opts.Size, nil, opts.TTL),
	}
}

func (m *memoryCache) Get(key string) ([]byte, bool) {
	return m.inner.Get(key)
}

func (m *memoryCache) Set(key string, value []byte) {
	m.inner.Add(key, value)
}

func (m *memoryCache) Len() int {
	return m.inner.Len()
}

func (m *memoryCache) Close() error {
	return nil
}
