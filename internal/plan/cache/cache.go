package cache

import (
	"sync"
	"time"
)

// Snapshot is one cached source fetch: the raw rows plus ordered headers.
type Snapshot struct {
	Rows    []map[string]string
	Headers []string
	Fetched time.Time
}

// Cache holds source snapshots with a fixed time-to-live. A get younger
// than the TTL returns the cached snapshot; anything older is treated as
// absent. Not a concurrency primitive — just a cached read with expiry.
type Cache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]Snapshot
	now     func() time.Time
}

func New(ttl time.Duration) *Cache {
	return &Cache{
		ttl:     ttl,
		entries: make(map[string]Snapshot),
		now:     time.Now,
	}
}

func (c *Cache) Get(key string) (Snapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.entries[key]
	if !ok {
		return Snapshot{}, false
	}
	if c.now().Sub(s.Fetched) > c.ttl {
		delete(c.entries, key)
		return Snapshot{}, false
	}
	return s, true
}

func (c *Cache) Put(key string, rows []map[string]string, headers []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = Snapshot{Rows: rows, Headers: headers, Fetched: c.now()}
}

// Expire force-clears one key so the next load refetches.
func (c *Cache) Expire(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}
