package marketdata

import (
	"sync"
	"time"
)

// CacheEntry is one cached price or rate. FetchedAt supports the per-type
// staleness policy; ExpiresAt is a hard ceiling after which the entry is
// dropped regardless of who asks.
type CacheEntry struct {
	Value     float64
	Currency  string
	FetchedAt time.Time
	ExpiresAt time.Time
}

// Age returns how long ago the entry was fetched.
func (e CacheEntry) Age() time.Duration {
	return time.Since(e.FetchedAt)
}

// Cache stores price and rate entries keyed by symbol or currency pair.
// Entries are immutable value replacements: writers replace whole entries,
// last write wins. Implementations must be safe for concurrent use.
type Cache interface {
	Get(key string) (CacheEntry, bool)
	Set(key string, entry CacheEntry)
	Clear()
}

// MemoryCache is an in-process Cache. Expired entries are evicted lazily on
// read.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]CacheEntry
}

// NewMemoryCache creates an empty in-memory cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]CacheEntry)}
}

// Get returns the entry for key if present and not expired.
func (c *MemoryCache) Get(key string) (CacheEntry, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return CacheEntry{}, false
	}
	if time.Now().After(entry.ExpiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return CacheEntry{}, false
	}
	return entry, true
}

// Set stores or replaces the entry for key.
func (c *MemoryCache) Set(key string, entry CacheEntry) {
	c.mu.Lock()
	c.entries[key] = entry
	c.mu.Unlock()
}

// Clear removes every entry.
func (c *MemoryCache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]CacheEntry)
	c.mu.Unlock()
}
