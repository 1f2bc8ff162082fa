// Package cache provides a generic in-memory key/value store with per-entry
// TTL expiration. Entries are evicted lazily on read; CleanupExpired offers
// an optional periodic sweep. Nothing is persisted across restarts.
package cache

import (
	"log/slog"
	"sync"
	"time"
)

// DefaultTTL applies when Set is called without an explicit TTL.
const DefaultTTL = time.Hour

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// Cache is a thread-safe TTL store. The zero value is not usable; construct
// with New. Concurrent reads and writes to distinct keys are safe; there are
// no multi-key transactions.
type Cache[V any] struct {
	mu         sync.RWMutex
	entries    map[string]entry[V]
	defaultTTL time.Duration

	// now is injectable for tests with a fake clock.
	now func() time.Time
}

// New creates a Cache with the given default TTL. A non-positive ttl falls
// back to DefaultTTL.
func New[V any](defaultTTL time.Duration) *Cache[V] {
	return NewWithClock[V](defaultTTL, time.Now)
}

// NewWithClock creates a Cache with an explicit time source.
func NewWithClock[V any](defaultTTL time.Duration, now func() time.Time) *Cache[V] {
	if defaultTTL <= 0 {
		defaultTTL = DefaultTTL
	}
	return &Cache[V]{
		entries:    make(map[string]entry[V]),
		defaultTTL: defaultTTL,
		now:        now,
	}
}

// Get returns the stored value if the entry exists and has not expired.
// An expired entry is evicted as a side effect of the read.
func (c *Cache[V]) Get(key string) (V, bool) {
	var zero V

	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		slog.Debug("cache miss", "key", key)
		return zero, false
	}

	if !c.now().Before(e.expiresAt) {
		c.mu.Lock()
		// Re-check under write lock: another writer may have refreshed the key.
		if cur, still := c.entries[key]; still && !c.now().Before(cur.expiresAt) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		slog.Debug("cache expired", "key", key)
		return zero, false
	}

	slog.Debug("cache hit", "key", key)
	return e.value, true
}

// Set stores value under key with the cache's default TTL.
func (c *Cache[V]) Set(key string, value V) {
	c.SetTTL(key, value, c.defaultTTL)
}

// SetTTL stores value under key, expiring ttl from now. A non-positive ttl
// falls back to the cache default.
func (c *Cache[V]) SetTTL(key string, value V, ttl time.Duration) {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}
	expiresAt := c.now().Add(ttl)

	c.mu.Lock()
	c.entries[key] = entry[V]{value: value, expiresAt: expiresAt}
	c.mu.Unlock()

	slog.Debug("cache set", "key", key, "ttl_seconds", ttl.Seconds())
}

// Delete removes key if present.
func (c *Cache[V]) Delete(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Clear removes all entries.
func (c *Cache[V]) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]entry[V])
	c.mu.Unlock()
	slog.Debug("cache cleared")
}

// CleanupExpired sweeps every entry whose expiry has passed and returns the
// number of entries removed. Get self-evicts, so this is an optimization for
// long-running processes, not a correctness requirement.
func (c *Cache[V]) CleanupExpired() int {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key, e := range c.entries {
		if !now.Before(e.expiresAt) {
			delete(c.entries, key)
			removed++
		}
	}

	if removed > 0 {
		slog.Debug("expired cache entries removed", "count", removed)
	}
	return removed
}

// Len returns the number of entries currently stored, expired or not.
func (c *Cache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
