package memory

import (
	"sync"
	"time"

	"github.com/frederico-kluser/docchat/internal/core/domain"
	"github.com/frederico-kluser/docchat/internal/core/ports/driven"
)

// Ensure ResponseCache implements the interface.
var _ driven.ResponseCache = (*ResponseCache)(nil)

// Response cache defaults.
const (
	DefaultResponseCacheCapacity = 100
	DefaultResponseCacheTTL      = time.Hour
)

type responseEntry struct {
	answer     domain.Answer
	storedAt   time.Time
	lastAccess time.Time
}

// ResponseCache is a time-boxed answer cache with LRU eviction. Entries
// expire after the TTL and the least recently used entry is evicted when
// capacity is exceeded.
type ResponseCache struct {
	mu       sync.Mutex
	capacity int
	ttl      time.Duration
	entries  map[string]*responseEntry
	now      func() time.Time
}

// NewResponseCache creates a cache with the given capacity and TTL.
func NewResponseCache(capacity int, ttl time.Duration) *ResponseCache {
	if capacity <= 0 {
		capacity = DefaultResponseCacheCapacity
	}
	if ttl <= 0 {
		ttl = DefaultResponseCacheTTL
	}
	return &ResponseCache{
		capacity: capacity,
		ttl:      ttl,
		entries:  make(map[string]*responseEntry, capacity),
		now:      time.Now,
	}
}

// Get returns a previously stored answer when present and fresh.
// Expired entries are removed on access.
func (c *ResponseCache) Get(key string) (domain.Answer, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return domain.Answer{}, false
	}
	if c.now().Sub(entry.storedAt) > c.ttl {
		delete(c.entries, key)
		return domain.Answer{}, false
	}
	entry.lastAccess = c.now()
	return entry.answer, true
}

// Set stores an answer, evicting the least recently used entry when at
// capacity.
func (c *ResponseCache) Set(key string, answer domain.Answer) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.capacity {
		c.evictOldest()
	}
	now := c.now()
	c.entries[key] = &responseEntry{answer: answer, storedAt: now, lastAccess: now}
}

// Clear removes all entries.
func (c *ResponseCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*responseEntry, c.capacity)
}

// evictOldest removes the least recently accessed entry.
// Caller must hold the lock.
func (c *ResponseCache) evictOldest() {
	var oldestKey string
	var oldestAccess time.Time
	for key, entry := range c.entries {
		if oldestKey == "" || entry.lastAccess.Before(oldestAccess) {
			oldestKey = key
			oldestAccess = entry.lastAccess
		}
	}
	if oldestKey != "" {
		delete(c.entries, oldestKey)
	}
}
