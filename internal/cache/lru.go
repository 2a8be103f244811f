package cache

import (
	"container/list"
	"sync"
	"time"
)

// entry is one L1 cache slot.
type entry struct {
	key       string
	value     []byte
	expiresAt time.Time
	elem      *list.Element
}

// LRU is a per-namespace bounded, TTL-aware, strictly-LRU in-process
// cache (spec §4.9). Eviction bumps access order on read; TTL is
// checked lazily on read, not by a background sweep.
type LRU struct {
	mu       sync.Mutex
	capacity int
	ttl      time.Duration
	items    map[string]*entry
	order    *list.List // front = most recently used
}

// NewLRU constructs a bounded cache with the given per-namespace
// capacity and TTL.
func NewLRU(capacity int, ttl time.Duration) *LRU {
	return &LRU{
		capacity: capacity,
		ttl:      ttl,
		items:    make(map[string]*entry),
		order:    list.New(),
	}
}

// Get returns the cached value and true on a live hit. Expired entries
// are deleted lazily and reported as a miss.
func (c *LRU) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.items[key]
	if !ok {
		return nil, false
	}
	if time.Now().After(e.expiresAt) {
		c.removeLocked(e)
		return nil, false
	}
	c.order.MoveToFront(e.elem)
	return e.value, true
}

// Set inserts or updates key, evicting the least-recently-used entry if
// the namespace is at capacity.
func (c *LRU) Set(key string, value []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.items[key]; ok {
		e.value = value
		e.expiresAt = time.Now().Add(c.ttl)
		c.order.MoveToFront(e.elem)
		return
	}

	e := &entry{key: key, value: value, expiresAt: time.Now().Add(c.ttl)}
	e.elem = c.order.PushFront(e)
	c.items[key] = e

	if c.capacity > 0 && len(c.items) > c.capacity {
		c.evictOldestLocked()
	}
}

// Delete removes key if present.
func (c *LRU) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.items[key]; ok {
		c.removeLocked(e)
	}
}

// Len reports the number of stored entries, including expired ones
// not yet removed, since TTL is checked lazily.
func (c *LRU) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

func (c *LRU) evictOldestLocked() {
	oldest := c.order.Back()
	if oldest == nil {
		return
	}
	c.removeLocked(oldest.Value.(*entry))
}

func (c *LRU) removeLocked(e *entry) {
	c.order.Remove(e.elem)
	delete(c.items, e.key)
}
