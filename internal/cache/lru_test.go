package cache

import (
	"testing"
	"time"
)

func TestGetSet(t *testing.T) {
	c := New(4, time.Minute)

	if _, ok := c.Get("missing"); ok {
		t.Error("unexpected hit for missing key")
	}

	c.Set("a", []byte("alpha"), 0)
	got, ok := c.Get("a")
	if !ok || string(got) != "alpha" {
		t.Errorf("Get(a) = %q, %v", got, ok)
	}

	c.Set("a", []byte("updated"), 0)
	got, _ = c.Get("a")
	if string(got) != "updated" {
		t.Errorf("overwrite lost: %q", got)
	}
	if c.Len() != 1 {
		t.Errorf("Len = %d, want 1", c.Len())
	}
}

func TestEvictionAtCapacity(t *testing.T) {
	c := New(2, time.Minute)
	c.Set("a", []byte("1"), 0)
	c.Set("b", []byte("2"), 0)

	// Touch a so b becomes the least recently used entry.
	c.Get("a")
	c.Set("c", []byte("3"), 0)

	if _, ok := c.Get("b"); ok {
		t.Error("least recently used entry survived eviction")
	}
	if _, ok := c.Get("a"); !ok {
		t.Error("recently used entry was evicted")
	}
	if c.Len() != 2 {
		t.Errorf("Len = %d, want 2", c.Len())
	}
}

func TestTTLExpiry(t *testing.T) {
	c := New(4, time.Minute)
	c.Set("a", []byte("soon gone"), time.Millisecond)

	time.Sleep(5 * time.Millisecond)
	if _, ok := c.Get("a"); ok {
		t.Error("expired entry returned")
	}
}

func TestPurge(t *testing.T) {
	c := New(4, time.Minute)
	c.Set("a", []byte("1"), 0)
	c.Set("b", []byte("2"), 0)
	c.Purge()
	if c.Len() != 0 {
		t.Errorf("Len after purge = %d, want 0", c.Len())
	}
	if _, ok := c.Get("a"); ok {
		t.Error("purged entry returned")
	}
}

func TestNewDefaults(t *testing.T) {
	c := New(0, 0)
	if c.capacity != 128 {
		t.Errorf("default capacity = %d, want 128", c.capacity)
	}
	if c.defaultTTL != 5*time.Minute {
		t.Errorf("default ttl = %v, want 5m", c.defaultTTL)
	}
}
