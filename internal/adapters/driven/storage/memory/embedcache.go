// Package memory provides in-memory implementations of the pipeline's
// bounded caches.
package memory

import (
	"sync"

	"github.com/frederico-kluser/docchat/internal/core/domain"
	"github.com/frederico-kluser/docchat/internal/core/ports/driven"
)

// Ensure EmbeddingCache implements the interface.
var _ driven.EmbeddingCache = (*EmbeddingCache)(nil)

// DefaultEmbeddingCacheCapacity bounds the cache when no capacity is given.
const DefaultEmbeddingCacheCapacity = 1000

// EmbeddingCache is a bounded hash→vector map with insertion-order FIFO
// eviction. Eviction is deterministic: when at capacity, the
// oldest-inserted entry goes first. Entries never expire by time.
type EmbeddingCache struct {
	mu       sync.RWMutex
	capacity int
	vectors  map[string][]float32
	order    []string
}

// NewEmbeddingCache creates a cache bounded to capacity entries.
func NewEmbeddingCache(capacity int) *EmbeddingCache {
	if capacity <= 0 {
		capacity = DefaultEmbeddingCacheCapacity
	}
	return &EmbeddingCache{
		capacity: capacity,
		vectors:  make(map[string][]float32, capacity),
	}
}

// Get returns the vector for a content hash, if cached.
func (c *EmbeddingCache) Get(hash string) ([]float32, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.vectors[hash]
	return v, ok
}

// Set stores a vector under a content hash. Overwriting an existing hash
// keeps its original insertion position.
func (c *EmbeddingCache) Set(hash string, vector []float32) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.vectors[hash]; exists {
		c.vectors[hash] = vector
		return
	}
	if len(c.order) >= c.capacity {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.vectors, oldest)
	}
	c.vectors[hash] = vector
	c.order = append(c.order, hash)
}

// Has reports whether a hash is cached.
func (c *EmbeddingCache) Has(hash string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.vectors[hash]
	return ok
}

// Len reports the number of cached vectors.
func (c *EmbeddingCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.vectors)
}

// Entries returns up to limit cache pairs in insertion order.
func (c *EmbeddingCache) Entries(limit int) []domain.CacheEntry {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if limit <= 0 || limit > len(c.order) {
		limit = len(c.order)
	}
	out := make([]domain.CacheEntry, 0, limit)
	for _, hash := range c.order[:limit] {
		out = append(out, domain.CacheEntry{Hash: hash, Vector: c.vectors[hash]})
	}
	return out
}

// Clear removes all entries.
func (c *EmbeddingCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vectors = make(map[string][]float32, c.capacity)
	c.order = nil
}
