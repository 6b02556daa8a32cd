package driven

import "github.com/frederico-kluser/docchat/internal/core/domain"

// VectorIndex provides in-memory vector storage and cosine similarity
// search over index entries.
type VectorIndex interface {
	// Add inserts an entry. Re-inserting the same id overwrites.
	Add(entry domain.IndexEntry) error

	// Get returns the entry with the given id.
	// Returns domain.ErrNotFound when absent.
	Get(id string) (domain.IndexEntry, error)

	// Search returns up to limit entries whose cosine similarity to the
	// query vector is at least threshold, ordered by descending score.
	Search(query []float32, limit int, threshold float64) ([]domain.SearchResult, error)

	// Len reports the number of stored entries.
	Len() int

	// Serialize renders the index contents as an opaque JSON blob.
	Serialize() ([]byte, error)

	// Restore replaces the index contents from a Serialize blob.
	Restore(blob []byte) error

	// Clear removes all entries.
	Clear()
}

// KeywordIndex provides plain text search over the same entries held by
// the vector index. It is the degraded-mode fallback used when vector
// search is unavailable.
type KeywordIndex interface {
	// Index registers an entry's text under its id. Re-indexing the same
	// id overwrites.
	Index(id, text string) error

	// Search returns ids of entries matching the query text, best first,
	// with normalized scores.
	Search(query string, limit int) ([]KeywordHit, error)

	// Clear removes all indexed entries.
	Clear() error
}

// KeywordHit is a keyword search match.
type KeywordHit struct {
	// ID is the matched entry id.
	ID string

	// Score is the engine's relevance score, normalized to [0, 1].
	Score float64
}
