package di

import (
	"context"
	"sync"
	"time"
)

const cacheJanitorInterval = time.Minute

// InMemoryCache is a TTL cache for query results. Expired entries are
// invisible to Get immediately and reclaimed by a background janitor.
type InMemoryCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	value     interface{}
	expiresAt time.Time
}

func (e cacheEntry) expired(now time.Time) bool {
	return now.After(e.expiresAt)
}

// NewInMemoryCache creates the cache and starts its janitor
func NewInMemoryCache() *InMemoryCache {
	cache := &InMemoryCache{
		entries: make(map[string]cacheEntry),
	}
	go cache.janitor()
	return cache
}

// Get retrieves a live value from the cache
func (c *InMemoryCache) Get(ctx context.Context, key string) (interface{}, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || entry.expired(time.Now()) {
		return nil, false
	}
	return entry.value, true
}

// Set stores a value with a TTL in seconds
func (c *InMemoryCache) Set(ctx context.Context, key string, value interface{}, ttl int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = cacheEntry{
		value:     value,
		expiresAt: time.Now().Add(time.Duration(ttl) * time.Second),
	}
	return nil
}

// Delete removes a single entry
func (c *InMemoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)
	return nil
}

// Clear drops every entry
func (c *InMemoryCache) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]cacheEntry)
	return nil
}

func (c *InMemoryCache) janitor() {
	ticker := time.NewTicker(cacheJanitorInterval)
	defer ticker.Stop()

	for now := range ticker.C {
		c.mu.Lock()
		for key, entry := range c.entries {
			if entry.expired(now) {
				delete(c.entries, key)
			}
		}
		c.mu.Unlock()
	}
}
