// Package bleve provides an in-memory keyword index used as the
// degraded-mode fallback when vector search is unavailable.
package bleve

import (
	"fmt"
	"sync"

	"github.com/blevesearch/bleve/v2"

	"github.com/frederico-kluser/docchat/internal/core/ports/driven"
)

// Ensure Engine implements the interface.
var _ driven.KeywordIndex = (*Engine)(nil)

// chunkDoc is the shape indexed per entry.
type chunkDoc struct {
	Text string `json:"text"`
}

// Engine wraps a memory-only bleve index over entry id→text.
type Engine struct {
	mu    sync.RWMutex
	index bleve.Index
}

// New creates an empty in-memory keyword index.
func New() (*Engine, error) {
	index, err := newMemIndex()
	if err != nil {
		return nil, err
	}
	return &Engine{index: index}, nil
}

func newMemIndex() (bleve.Index, error) {
	mapping := bleve.NewIndexMapping()
	index, err := bleve.NewMemOnly(mapping)
	if err != nil {
		return nil, fmt.Errorf("create keyword index: %w", err)
	}
	return index, nil
}

// Index registers an entry's text under its id. Re-indexing the same id
// overwrites.
func (e *Engine) Index(id, text string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.index.Index(id, chunkDoc{Text: text}); err != nil {
		return fmt.Errorf("index entry %s: %w", id, err)
	}
	return nil
}

// Search returns matching entry ids, best first, with scores normalized
// against the top hit.
func (e *Engine) Search(query string, limit int) ([]driven.KeywordHit, error) {
	if limit <= 0 {
		limit = 10
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	req := bleve.NewSearchRequest(bleve.NewMatchQuery(query))
	req.Size = limit

	res, err := e.index.Search(req)
	if err != nil {
		return nil, fmt.Errorf("keyword search: %w", err)
	}

	hits := make([]driven.KeywordHit, 0, len(res.Hits))
	var top float64
	if len(res.Hits) > 0 {
		top = res.Hits[0].Score
	}
	for _, hit := range res.Hits {
		score := hit.Score
		if top > 0 {
			score = hit.Score / top
		}
		hits = append(hits, driven.KeywordHit{ID: hit.ID, Score: score})
	}
	return hits, nil
}

// Clear drops all indexed entries by swapping in a fresh memory index.
func (e *Engine) Clear() error {
	fresh, err := newMemIndex()
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	old := e.index
	e.index = fresh
	_ = old.Close()
	return nil
}
