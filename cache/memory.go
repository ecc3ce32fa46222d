package cache

import (
	"maps"
	"sync"
)

// InMemoryCache is a thread-safe translation memory held entirely in memory.
// Entries never expire; over a run the memory only grows.
type InMemoryCache struct {
	mu      sync.RWMutex
	entries map[string]string
}

// NewInMemoryCache creates an empty in-memory cache.
func NewInMemoryCache() *InMemoryCache {
	return &InMemoryCache{entries: make(map[string]string)}
}

// Get returns the cached translation for key, if any.
func (c *InMemoryCache) Get(key string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.entries[key]
	return v, ok
}

// Set records a translation. The error is always nil; it exists to satisfy
// TranslationCache, whose other implementations can fail.
func (c *InMemoryCache) Set(key, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
	return nil
}

// Len returns the number of cached translations.
func (c *InMemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Clear drops every entry.
func (c *InMemoryCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.entries)
}

// Entries returns a copy of the mapping, safe to range over while the
// cache is in use.
func (c *InMemoryCache) Entries() map[string]string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return maps.Clone(c.entries)
}

var _ TranslationCache = (*InMemoryCache)(nil)
