// Package memory provides a brute-force in-memory vector index with
// cosine similarity search and JSON serialization.
package memory

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/frederico-kluser/docchat/internal/core/domain"
	"github.com/frederico-kluser/docchat/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

// Index stores entries in insertion order and searches them with
// exhaustive cosine similarity. Suitable for single-document corpora
// where entry counts stay in the low thousands.
type Index struct {
	mu         sync.RWMutex
	dimensions int
	entries    map[string]domain.IndexEntry
	order      []string
}

// serializedIndex is the JSON layout produced by Serialize.
type serializedIndex struct {
	Dimensions int                 `json:"dimensions"`
	Entries    []domain.IndexEntry `json:"entries"`
}

// New creates an index for vectors of the given dimension.
func New(dimensions int) (*Index, error) {
	if dimensions <= 0 {
		return nil, fmt.Errorf("%w: dimensions must be positive", domain.ErrInvalidInput)
	}
	return &Index{
		dimensions: dimensions,
		entries:    make(map[string]domain.IndexEntry),
	}, nil
}

// Add inserts an entry. Re-inserting the same id overwrites in place.
func (ix *Index) Add(entry domain.IndexEntry) error {
	if entry.ID == "" {
		return fmt.Errorf("%w: entry id required", domain.ErrInvalidInput)
	}
	if len(entry.Embedding) != ix.dimensions {
		return fmt.Errorf("%w: got %d dimensions, index expects %d",
			domain.ErrDimensionMismatch, len(entry.Embedding), ix.dimensions)
	}

	ix.mu.Lock()
	defer ix.mu.Unlock()
	if _, exists := ix.entries[entry.ID]; !exists {
		ix.order = append(ix.order, entry.ID)
	}
	ix.entries[entry.ID] = entry
	return nil
}

// Get returns the entry with the given id.
func (ix *Index) Get(id string) (domain.IndexEntry, error) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	entry, ok := ix.entries[id]
	if !ok {
		return domain.IndexEntry{}, domain.ErrNotFound
	}
	return entry, nil
}

// Search returns up to limit entries with cosine similarity to query of
// at least threshold, ordered by descending score.
func (ix *Index) Search(query []float32, limit int, threshold float64) ([]domain.SearchResult, error) {
	if len(query) != ix.dimensions {
		return nil, fmt.Errorf("%w: query has %d dimensions, index expects %d",
			domain.ErrDimensionMismatch, len(query), ix.dimensions)
	}
	if limit <= 0 {
		limit = domain.DefaultRetrieveLimit
	}

	ix.mu.RLock()
	defer ix.mu.RUnlock()

	results := make([]domain.SearchResult, 0, limit)
	for _, id := range ix.order {
		entry := ix.entries[id]
		score := cosineSimilarity(query, entry.Embedding)
		if score < threshold {
			continue
		}
		results = append(results, domain.SearchResult{Entry: entry, Score: score, Origin: "vector"})
	}

	sort.SliceStable(results, func(i, j int) bool { return results[i].Score > results[j].Score })
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// Len reports the number of stored entries.
func (ix *Index) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.entries)
}

// Serialize renders the index contents as a JSON blob in insertion order.
func (ix *Index) Serialize() ([]byte, error) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	out := serializedIndex{
		Dimensions: ix.dimensions,
		Entries:    make([]domain.IndexEntry, 0, len(ix.order)),
	}
	for _, id := range ix.order {
		out.Entries = append(out.Entries, ix.entries[id])
	}
	return json.Marshal(out)
}

// Restore replaces the index contents from a Serialize blob. The blob's
// dimension must match the index configuration; on any error the index
// is left untouched.
func (ix *Index) Restore(blob []byte) error {
	var in serializedIndex
	if err := json.Unmarshal(blob, &in); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidFormat, err)
	}
	if in.Dimensions != ix.dimensions {
		return fmt.Errorf("%w: blob has %d dimensions, index expects %d",
			domain.ErrDimensionMismatch, in.Dimensions, ix.dimensions)
	}
	for _, entry := range in.Entries {
		if len(entry.Embedding) != ix.dimensions {
			return fmt.Errorf("%w: entry %s has %d dimensions",
				domain.ErrDimensionMismatch, entry.ID, len(entry.Embedding))
		}
	}

	entries := make(map[string]domain.IndexEntry, len(in.Entries))
	order := make([]string, 0, len(in.Entries))
	for _, entry := range in.Entries {
		if _, exists := entries[entry.ID]; !exists {
			order = append(order, entry.ID)
		}
		entries[entry.ID] = entry
	}

	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.entries = entries
	ix.order = order
	return nil
}

// Clear removes all entries.
func (ix *Index) Clear() {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.entries = make(map[string]domain.IndexEntry)
	ix.order = nil
}

// cosineSimilarity computes the cosine of the angle between two vectors.
// Zero-magnitude vectors score zero.
func cosineSimilarity(a, b []float32) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
