package cache

import (
	"fmt"
	"testing"
	"time"
)

func newTestCache(t *testing.T, size int, ttl time.Duration) Cache {
	t.Helper()
	c, err := New(Options{Provider: "memory", Size: size, TTL: ttl})
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestMemoryCacheGetSet(t *testing.T) {
	c := newTestCache(t, 10, time.Minute)

	if _, ok := c.Get("absent"); ok {
		t.Error("Get on empty cache should miss")
	}

	c.Set("thumb", []byte("image bytes"))
	got, ok := c.Get("thumb")
	if !ok {
		t.Fatal("Get after Set should hit")
	}
	if string(got) != "image bytes" {
		t.Errorf("Get = %q, want %q", got, "image bytes")
	}
	if c.Len() != 1 {
		t.Errorf("Len = %d, want 1", c.Len())
	}
}

func TestMemoryCacheOverwrite(t *testing.T) {
	c := newTestCache(t, 10, time.Minute)

	c.Set("thumb", []byte("first"))
	c.Set("thumb", []byte("second"))

	got, ok := c.Get("thumb")
	if !ok {
		t.Fatal("Get after overwrite should hit")
	}
	if string(got) != "second" {
		t.Errorf("Get = %q, want latest value", got)
	}
	if c.Len() != 1 {
		t.Errorf("Len = %d, want 1", c.Len())
	}
}

func TestMemoryCacheEviction(t *testing.T) {
	c := newTestCache(t, 2, time.Minute)

	for i := 0; i < 3; i++ {
		c.Set(fmt.Sprintf("key-%d", i), []byte{byte(i)})
	}

	if c.Len() != 2 {
		t.Errorf("Len = %d, want 2 after size-bound eviction", c.Len())
	}
	if _, ok := c.Get("key-0"); ok {
		t.Error("oldest entry should have been evicted")
	}
	if _, ok := c.Get("key-2"); !ok {
		t.Error("newest entry should survive eviction")
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := newTestCache(t, 10, 20*time.Millisecond)

	c.Set("thumb", []byte("image bytes"))
	if _, ok := c.Get("thumb"); !ok {
		t.Fatal("fresh entry should hit")
	}

	time.Sleep(50 * time.Millisecond)
	if _, ok := c.Get("thumb"); ok {
		t.Error("entry should expire after the TTL")
	}
}

func TestNewUnknownProvider(t *testing.T) {
	if _, err := New(Options{Provider: "memcached"}); err == nil {
		t.Error("New with an unknown provider should return an error")
	}
}
