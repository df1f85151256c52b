package cache

import (
	"testing"
	"time"
)

func TestGetSet(t *testing.T) {
	c := New[string, int](time.Minute, time.Minute)
	defer c.Close()

	if _, ok := c.Get("missing"); ok {
		t.Error("missing key should be a miss")
	}

	c.Set("a", 42)
	got, ok := c.Get("a")
	if !ok || got != 42 {
		t.Errorf("Get(a) = (%d, %v), want (42, true)", got, ok)
	}
}

func TestExpiry(t *testing.T) {
	c := New[string, string](20*time.Millisecond, time.Minute)
	defer c.Close()

	c.Set("k", "v")
	time.Sleep(30 * time.Millisecond)
	if _, ok := c.Get("k"); ok {
		t.Error("expired entry should be a miss")
	}
}

func TestDelete(t *testing.T) {
	c := New[string, int](time.Minute, time.Minute)
	defer c.Close()

	c.Set("a", 1)
	c.Delete("a")
	if _, ok := c.Get("a"); ok {
		t.Error("deleted key should be a miss")
	}
}

func TestEvictExpired(t *testing.T) {
	c := New[string, int](10*time.Millisecond, time.Minute)
	defer c.Close()

	c.Set("a", 1)
	c.Set("b", 2)
	time.Sleep(20 * time.Millisecond)

	c.evictExpired()
	if c.Len() != 0 {
		t.Errorf("expected empty cache after eviction, got %d entries", c.Len())
	}
}
