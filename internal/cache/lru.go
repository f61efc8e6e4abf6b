// Package cache provides a small in-process LRU with TTL. The questions
// handler uses it so repeated requests against an unchanged constellation do
// not re-invoke the narrative provider.
package cache

import (
	"container/list"
	"sync"
	"time"
)

// LRU is a fixed-capacity cache with per-entry expiry.
type LRU struct {
	capacity   int
	defaultTTL time.Duration
	mu         sync.Mutex

	entries map[string]*entry
	order   *list.List
}

type entry struct {
	key       string
	value     []byte
	expiresAt time.Time
	element   *list.Element
}

// New creates an LRU cache.
func New(capacity int, defaultTTL time.Duration) *LRU {
	if capacity <= 0 {
		capacity = 128
	}
	if defaultTTL <= 0 {
		defaultTTL = 5 * time.Minute
	}
	return &LRU{
		capacity:   capacity,
		defaultTTL: defaultTTL,
		entries:    make(map[string]*entry),
		order:      list.New(),
	}
}

// Get retrieves a value, reporting whether it exists and is unexpired.
func (c *LRU) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if time.Now().After(e.expiresAt) {
		c.remove(e)
		return nil, false
	}
	c.order.MoveToFront(e.element)
	return e.value, true
}

// Set stores a value. A non-positive ttl uses the default.
func (c *LRU) Set(key string, value []byte, ttl time.Duration) {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.value = value
		e.expiresAt = time.Now().Add(ttl)
		c.order.MoveToFront(e.element)
		return
	}

	for len(c.entries) >= c.capacity {
		oldest := c.order.Back()
		if oldest == nil {
			break
		}
		c.remove(oldest.Value.(*entry))
	}

	e := &entry{
		key:       key,
		value:     value,
		expiresAt: time.Now().Add(ttl),
	}
	e.element = c.order.PushFront(e)
	c.entries[key] = e
}

// Purge drops every entry.
func (c *LRU) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*entry)
	c.order.Init()
}

// Len returns the number of entries, including any not yet expired-swept.
func (c *LRU) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *LRU) remove(e *entry) {
	c.order.Remove(e.element)
	delete(c.entries, e.key)
}
