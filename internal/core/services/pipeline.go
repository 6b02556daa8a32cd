package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/frederico-kluser/docchat/internal/chunker"
	"github.com/frederico-kluser/docchat/internal/core/domain"
	"github.com/frederico-kluser/docchat/internal/core/ports/driven"
	"github.com/frederico-kluser/docchat/internal/core/ports/driving"
	"github.com/frederico-kluser/docchat/internal/logger"
)

var _ driving.Pipeline = (*Pipeline)(nil)

// Deps collects the driven adapters a Pipeline is wired with.
// EmbeddingClient, ChatClient, and VectorIndex are required; the rest
// are optional and disable their feature when nil.
type Deps struct {
	EmbeddingClient driven.EmbeddingClient
	ChatClient      driven.ChatClient
	VectorIndex     driven.VectorIndex
	KeywordIndex    driven.KeywordIndex
	EmbeddingCache  driven.EmbeddingCache
	ResponseCache   driven.ResponseCache
}

// Pipeline is the session object tying the splitter, embedder,
// retriever, generator, and exporter together over a single active
// document.
type Pipeline struct {
	cfg       domain.Config
	splitter  *chunker.Splitter
	embedder  *Embedder
	retriever *Retriever
	generator *Generator
	exporter  *Exporter
	index     driven.VectorIndex
	keyword   driven.KeywordIndex

	mu    sync.RWMutex
	stats domain.DocumentStats
}

// NewPipeline validates cfg and deps and wires the services.
func NewPipeline(cfg domain.Config, deps Deps) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if deps.EmbeddingClient == nil || deps.ChatClient == nil || deps.VectorIndex == nil {
		return nil, fmt.Errorf("%w: embedding client, chat client, and vector index are required", domain.ErrNotInitialized)
	}

	embedder := NewEmbedder(deps.EmbeddingClient, deps.EmbeddingCache, cfg)
	retriever := NewRetriever(embedder, deps.VectorIndex, deps.KeywordIndex, deps.ChatClient, cfg)
	return &Pipeline{
		cfg:       cfg,
		splitter:  chunker.NewSplitter(cfg.ChunkSize, cfg.ChunkOverlap),
		embedder:  embedder,
		retriever: retriever,
		generator: NewGenerator(retriever, deps.ChatClient, deps.ResponseCache, cfg),
		exporter:  NewExporter(deps.VectorIndex, deps.KeywordIndex, deps.EmbeddingCache, cfg),
		index:     deps.VectorIndex,
		keyword:   deps.KeywordIndex,
	}, nil
}

// IngestDocument replaces the active document with the given pages:
// page text is reconstructed, split into chunks, scored, embedded in
// batches, and inserted into the index in page order.
func (p *Pipeline) IngestDocument(ctx context.Context, documentID string, pages [][]domain.PageFragment, progress domain.ProgressFunc) (domain.DocumentStats, error) {
	if documentID == "" {
		return domain.DocumentStats{}, fmt.Errorf("pipeline: %w: empty document id", domain.ErrInvalidInput)
	}
	if len(pages) == 0 {
		return domain.DocumentStats{}, fmt.Errorf("pipeline: %w: document has no pages", domain.ErrInvalidInput)
	}

	logger.Section(fmt.Sprintf("Ingesting %s (%d pages)", documentID, len(pages)))

	totalPages := len(pages)
	var chunks []domain.Chunk
	for i, fragments := range pages {
		pageNumber := i + 1
		text := chunker.ReconstructPage(fragments)
		for j, piece := range p.splitter.Split(text) {
			chunks = append(chunks, domain.Chunk{
				Text:             piece,
				SourceDocument:   documentID,
				PageNumber:       pageNumber,
				ChunkIndexOnPage: j,
				EstimatedTokens:  domain.EstimateTokens(piece),
				Importance:       domain.ImportanceScore(piece, pageNumber, totalPages),
				ContentHash:      domain.ContentHash(piece),
			})
		}
		progress.Report(domain.PhaseExtraction, pageNumber, totalPages,
			fmt.Sprintf("Extracted page %d/%d", pageNumber, totalPages))
	}
	if len(chunks) == 0 {
		return domain.DocumentStats{}, fmt.Errorf("pipeline: %w: document has no extractable text", domain.ErrInvalidInput)
	}

	entries, err := p.embedder.EmbedChunks(ctx, chunks, progress)
	if err != nil {
		return domain.DocumentStats{}, err
	}

	// Only one document is active at a time; the new one replaces the old
	// index contents after embedding succeeded.
	p.index.Clear()
	if p.keyword != nil {
		if err := p.keyword.Clear(); err != nil {
			logger.Warn("Keyword index clear failed: %v", err)
		}
	}

	totalTokens := 0
	for i, entry := range entries {
		if err := p.index.Add(entry); err != nil {
			return domain.DocumentStats{}, err
		}
		if p.keyword != nil {
			if err := p.keyword.Index(entry.ID, entry.Text); err != nil {
				logger.Warn("Keyword indexing failed for %s: %v", entry.ID, err)
			}
		}
		totalTokens += chunks[i].EstimatedTokens
	}

	stats := domain.DocumentStats{
		DocumentID:  documentID,
		PageCount:   totalPages,
		ChunkCount:  len(entries),
		TotalTokens: totalTokens,
	}
	p.mu.Lock()
	p.stats = stats
	p.mu.Unlock()

	logger.Info("Ingested %s: %d chunks, ~%d tokens", documentID, stats.ChunkCount, stats.TotalTokens)
	return stats, nil
}

// Retrieve returns the passages most relevant to query.
func (p *Pipeline) Retrieve(ctx context.Context, query string, opts domain.RetrieveOptions) ([]domain.SearchResult, error) {
	if p.index.Len() == 0 {
		return nil, fmt.Errorf("%w: no document ingested", domain.ErrNotInitialized)
	}
	return p.retriever.Retrieve(ctx, query, opts)
}

// Answer generates a grounded response in blocking mode.
func (p *Pipeline) Answer(ctx context.Context, query string, opts driving.AnswerOptions) (domain.Answer, error) {
	if p.index.Len() == 0 {
		return domain.Answer{}, fmt.Errorf("%w: no document ingested", domain.ErrNotInitialized)
	}
	return p.generator.Answer(ctx, query, opts)
}

// AnswerStream generates a grounded response, streaming deltas to onDelta.
func (p *Pipeline) AnswerStream(ctx context.Context, query string, opts driving.AnswerOptions, onDelta func(delta string) error) (domain.Answer, error) {
	if p.index.Len() == 0 {
		return domain.Answer{}, fmt.Errorf("%w: no document ingested", domain.ErrNotInitialized)
	}
	return p.generator.AnswerStream(ctx, query, opts, onDelta)
}

// Export bundles the index and session state into a versioned JSON blob.
func (p *Pipeline) Export() ([]byte, error) {
	return p.exporter.Export(p.Stats())
}

// Import restores a previously exported blob, replacing the active
// document.
func (p *Pipeline) Import(blob []byte) (domain.ExportMetadata, error) {
	meta, err := p.exporter.Import(blob)
	if err != nil {
		return domain.ExportMetadata{}, err
	}
	p.mu.Lock()
	p.stats = meta.DocumentStats
	p.mu.Unlock()
	return meta, nil
}

// Stats reports the currently ingested document.
func (p *Pipeline) Stats() domain.DocumentStats {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.stats
}

// Reset clears the index and document state. The embedding and response
// caches are process-lifetime and survive a reset.
func (p *Pipeline) Reset() error {
	p.index.Clear()
	if p.keyword != nil {
		if err := p.keyword.Clear(); err != nil {
			return err
		}
	}
	p.mu.Lock()
	p.stats = domain.DocumentStats{}
	p.mu.Unlock()
	return nil
}
