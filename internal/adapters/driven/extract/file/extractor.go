// Package file reads pre-extracted page fragments from a JSON document.
//
// Parsing the source binary (PDF) is the job of the external extraction
// collaborator; this adapter consumes its output: one fragment list per
// page, each fragment carrying x/y coordinates and text.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/frederico-kluser/docchat/internal/core/domain"
	"github.com/frederico-kluser/docchat/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.PageExtractor = (*Extractor)(nil)

// document is the JSON layout of an extraction output file.
type document struct {
	DocumentID string                  `json:"documentId"`
	Pages      [][]domain.PageFragment `json:"pages"`
}

// Extractor serves positioned fragments loaded from an extraction file.
type Extractor struct {
	documentID string
	pages      [][]domain.PageFragment
}

// Open reads an extraction output file.
func Open(path string) (*Extractor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read extraction file: %w", err)
	}
	return Parse(data)
}

// Parse decodes extraction output bytes.
func Parse(data []byte) (*Extractor, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: decode extraction document: %v", domain.ErrInvalidFormat, err)
	}
	if len(doc.Pages) == 0 {
		return nil, fmt.Errorf("%w: extraction document has no pages", domain.ErrInvalidInput)
	}
	return &Extractor{documentID: doc.DocumentID, pages: doc.Pages}, nil
}

// DocumentID returns the id recorded in the extraction file, if any.
func (e *Extractor) DocumentID() string {
	return e.documentID
}

// PageCount reports the number of pages available.
func (e *Extractor) PageCount(_ context.Context) (int, error) {
	return len(e.pages), nil
}

// ExtractPage returns the positioned fragments of the 1-based page.
func (e *Extractor) ExtractPage(_ context.Context, page int) ([]domain.PageFragment, error) {
	if page < 1 || page > len(e.pages) {
		return nil, fmt.Errorf("%w: page %d of %d", domain.ErrNotFound, page, len(e.pages))
	}
	return e.pages[page-1], nil
}

// Pages returns all pages in order, for callers that ingest in one shot.
func (e *Extractor) Pages() [][]domain.PageFragment {
	return e.pages
}
