// Package driving defines the interfaces the surrounding application uses
// to call INTO the pipeline core (primary/inbound ports).
//
// The upload widget, key-entry screen, progress rendering, and any other
// user-facing surface are external collaborators; they drive the pipeline
// exclusively through these contracts.
package driving

import (
	"context"

	"github.com/frederico-kluser/docchat/internal/core/domain"
)

// AnswerOptions configures a generation call.
type AnswerOptions struct {
	// Retrieve configures the retrieval step feeding the answer.
	Retrieve domain.RetrieveOptions

	// MaxContextTokens overrides the assembled-context token budget.
	MaxContextTokens int
}

// Pipeline is the single session object holding the index, caches, and
// external clients. Construct once per session and pass by reference;
// there is no global service state.
type Pipeline interface {
	// IngestDocument replaces the active document: reconstructs page
	// text, splits it into chunks, embeds them in batches, and inserts
	// them into the index in page order. Progress callbacks report the
	// extraction and embedding phases.
	IngestDocument(ctx context.Context, documentID string, pages [][]domain.PageFragment, progress domain.ProgressFunc) (domain.DocumentStats, error)

	// Retrieve returns the passages most relevant to the query.
	Retrieve(ctx context.Context, query string, opts domain.RetrieveOptions) ([]domain.SearchResult, error)

	// Answer generates a grounded response in blocking mode.
	Answer(ctx context.Context, query string, opts AnswerOptions) (domain.Answer, error)

	// AnswerStream generates a grounded response, delivering incremental
	// deltas to onDelta. The returned Answer carries the full text and
	// sources once the stream completes.
	AnswerStream(ctx context.Context, query string, opts AnswerOptions, onDelta func(delta string) error) (domain.Answer, error)

	// Export bundles the index, stats, config, and partial embedding
	// cache into a versioned JSON blob.
	Export() ([]byte, error)

	// Import validates and restores a previously exported blob,
	// returning its metadata.
	Import(blob []byte) (domain.ExportMetadata, error)

	// Stats reports the currently ingested document.
	Stats() domain.DocumentStats

	// Reset clears the index and document state. Process-lifetime caches
	// are left intact.
	Reset() error
}
