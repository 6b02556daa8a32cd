package driven

import "github.com/frederico-kluser/docchat/internal/core/domain"

// EmbeddingCache is a bounded hash→vector store used to avoid re-embedding
// identical chunks and repeated queries. Entries never expire by time; the
// cache lives for the process lifetime or until explicit cleanup.
type EmbeddingCache interface {
	// Get returns the vector for a content hash, if cached.
	Get(hash string) ([]float32, bool)

	// Set stores a vector under a content hash, evicting the
	// oldest-inserted entry when at capacity.
	Set(hash string, vector []float32)

	// Has reports whether a hash is cached.
	Has(hash string) bool

	// Len reports the number of cached vectors.
	Len() int

	// Entries returns up to limit cache pairs in insertion order,
	// used by index export.
	Entries(limit int) []domain.CacheEntry

	// Clear removes all entries.
	Clear()
}

// ResponseCache is a time-boxed answer cache keyed by query plus the
// sorted content hashes of the retrieved sources.
type ResponseCache interface {
	// Get returns a previously generated answer when present and fresh.
	Get(key string) (domain.Answer, bool)

	// Set stores an answer under the key, evicting the least recently
	// used entry when at capacity.
	Set(key string, answer domain.Answer)

	// Clear removes all entries.
	Clear()
}
