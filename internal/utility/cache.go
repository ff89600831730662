// Package utility provides small shared helpers.
package utility

import (
	"sync"
	"time"
)

// entry is a cached value with its last-access time.
type entry struct {
	value    any
	lastSeen time.Time
}

// Cache is an in-memory store with idle-TTL eviction. Reading a key renews
// it. Used as the session registry: evicted sessions get an OnEvict call so
// their controllers can be closed.
type Cache struct {
	items    map[string]*entry
	mu       sync.RWMutex
	ttl      time.Duration
	cleanup  time.Duration
	stopChan chan struct{}
	stopOnce sync.Once

	// OnEvict, when set, runs for every expired or deleted value.
	OnEvict func(key string, value any)
}

// NewCache creates a cache whose entries expire after ttl without access,
// swept every cleanup interval.
func NewCache(ttl, cleanup time.Duration) *Cache {
	c := &Cache{
		items:    make(map[string]*entry),
		ttl:      ttl,
		cleanup:  cleanup,
		stopChan: make(chan struct{}),
	}
	go c.cleanupLoop()
	return c
}

// Set stores a value.
func (c *Cache) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = &entry{value: value, lastSeen: time.Now()}
}

// Get returns a value and renews its TTL.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, exists := c.items[key]
	if !exists {
		return nil, false
	}
	e.lastSeen = time.Now()
	return e.value, true
}

// Delete removes a value, running OnEvict when one was present.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	e, exists := c.items[key]
	if exists {
		delete(c.items, key)
	}
	c.mu.Unlock()

	if exists && c.OnEvict != nil {
		c.OnEvict(key, e.value)
	}
}

// Stop terminates the sweeper goroutine.
func (c *Cache) Stop() {
	c.stopOnce.Do(func() { close(c.stopChan) })
}

func (c *Cache) cleanupLoop() {
	ticker := time.NewTicker(c.cleanup)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.sweep()
		case <-c.stopChan:
			return
		}
	}
}

func (c *Cache) sweep() {
	now := time.Now()
	var evicted []struct {
		key   string
		value any
	}

	c.mu.Lock()
	for k, e := range c.items {
		if now.Sub(e.lastSeen) > c.ttl {
			evicted = append(evicted, struct {
				key   string
				value any
			}{k, e.value})
			delete(c.items, k)
		}
	}
	c.mu.Unlock()

	if c.OnEvict != nil {
		for _, e := range evicted {
			c.OnEvict(e.key, e.value)
		}
	}
}
