package scout

import (
	"sync"
	"time"
)

// Clock supplies the current time. Injected so cache expiry is testable
// without sleeping.
type Clock func() time.Time

// Cache holds the most recent Snapshot per host with a uniform TTL.
// Reads for absent or expired entries are misses; the checker refreshes
// and writes back. Writes replace the whole entry atomically, so the
// last completed check wins regardless of which check started first.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	ttl     time.Duration
	now     Clock
}

type cacheEntry struct {
	snapshot Snapshot
	storedAt time.Time
}

// NewCache creates a snapshot cache. A nil clock defaults to time.Now.
// A TTL of zero disables caching entirely (every read is a miss).
func NewCache(ttl time.Duration, clock Clock) *Cache {
	if clock == nil {
		clock = time.Now
	}
	return &Cache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		now:     clock,
	}
}

// Get returns the cached snapshot for name if one exists and is still
// fresh. Expired entries are left in place; the next Put overwrites them.
func (c *Cache) Get(name string) (Snapshot, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[name]
	if !ok {
		return Snapshot{}, false
	}
	if c.now().Sub(entry.storedAt) >= c.ttl {
		return Snapshot{}, false
	}
	return entry.snapshot, true
}

// Put stores the snapshot for name, replacing any previous entry.
// Failed checks are cached too, so an unreachable host is not re-probed
// on every call within the TTL window.
func (c *Cache) Put(name string, snapshot Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[name] = cacheEntry{
		snapshot: snapshot,
		storedAt: c.now(),
	}
}

// InvalidateAll drops every cached snapshot.
func (c *Cache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]cacheEntry)
}

// Len returns the number of cached entries, fresh or expired.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
