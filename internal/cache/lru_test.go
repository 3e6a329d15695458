package cache

import (
	"testing"
	"time"
)

func TestLRUSetGetDelete(t *testing.T) {
	c := NewLRUCache[string](10, time.Minute)

	c.Set(1, "a")
	c.Set(2, "b")
	if got, ok := c.Get(1); !ok || got != "a" {
		t.Fatalf("expected a, got %q (ok=%v)", got, ok)
	}

	// Re-setting the same key replaces the value.
	c.Set(1, "a2")
	if got, _ := c.Get(1); got != "a2" {
		t.Fatalf("expected a2, got %q", got)
	}
	if c.Size() != 2 {
		t.Fatalf("expected size 2, got %d", c.Size())
	}

	c.Delete(1)
	if _, ok := c.Get(1); ok {
		t.Fatalf("deleted key must be gone")
	}
}

func TestLRUEvictsOldest(t *testing.T) {
	c := NewLRUCache[int](2, time.Minute)
	c.Set(1, 1)
	c.Set(2, 2)
	c.Get(1) // touch 1 so 2 becomes the eviction candidate
	c.Set(3, 3)

	if _, ok := c.Get(2); ok {
		t.Fatalf("expected key 2 to be evicted")
	}
	if _, ok := c.Get(1); !ok {
		t.Fatalf("recently used key must survive")
	}
}

func TestLRUExpiry(t *testing.T) {
	c := NewLRUCache[int](10, 10*time.Millisecond)
	c.Set(1, 1)
	c.Set(2, 2)

	time.Sleep(20 * time.Millisecond)

	if _, ok := c.Get(1); ok {
		t.Fatalf("expired entry must not be returned")
	}
	if n := c.CleanExpired(); n != 1 {
		// Get already dropped key 1; the sweep removes the other.
		t.Fatalf("expected 1 swept entry, got %d", n)
	}
	if c.Size() != 0 {
		t.Fatalf("expected empty cache, got %d", c.Size())
	}
}
