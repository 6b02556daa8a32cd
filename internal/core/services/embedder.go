package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/frederico-kluser/docchat/internal/core/domain"
	"github.com/frederico-kluser/docchat/internal/core/ports/driven"
	"github.com/frederico-kluser/docchat/internal/logger"
)

// Embedder produces embeddings through an EmbeddingClient, deduplicating
// work through a content-addressed cache and retrying transient provider
// failures with exponential backoff. Batches are paced by a rate limiter
// so large documents do not burst the provider.
type Embedder struct {
	client     driven.EmbeddingClient
	cache      driven.EmbeddingCache
	batchSize  int
	maxRetries int
	baseDelay  time.Duration
	limiter    *rate.Limiter
}

// NewEmbedder creates an Embedder configured from cfg. The cache may be
// nil, in which case every call reaches the client.
func NewEmbedder(client driven.EmbeddingClient, cache driven.EmbeddingCache, cfg domain.Config) *Embedder {
	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = domain.DefaultBatchSize
	}
	interval := cfg.BatchInterval
	if interval <= 0 {
		interval = domain.DefaultBatchInterval
	}
	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = domain.DefaultMaxRetries
	}
	baseDelay := cfg.RetryBaseDelay
	if baseDelay <= 0 {
		baseDelay = domain.DefaultRetryBaseDelay
	}
	return &Embedder{
		client:     client,
		cache:      cache,
		batchSize:  batchSize,
		maxRetries: maxRetries,
		baseDelay:  baseDelay,
		limiter:    rate.NewLimiter(rate.Every(interval), 1),
	}
}

// Embed returns the embedding for text, served from the cache when the
// same content has been embedded before.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, fmt.Errorf("embedder: %w: empty text", domain.ErrInvalidInput)
	}

	hash := domain.ContentHash(text)
	if e.cache != nil {
		if vec, ok := e.cache.Get(hash); ok {
			logger.Debug("Embedding cache hit for %s", hash)
			return vec, nil
		}
	}

	vec, err := e.embedWithRetry(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrEmbeddingFailed, err)
	}

	if e.cache != nil {
		e.cache.Set(hash, vec)
	}
	return vec, nil
}

func (e *Embedder) embedWithRetry(ctx context.Context, text string) ([]float32, error) {
	var lastErr error
	for attempt := 0; attempt <= e.maxRetries; attempt++ {
		if attempt > 0 {
			delay := e.baseDelay << (attempt - 1)
			delay += time.Duration(rand.Int63n(int64(e.baseDelay)/2 + 1))
			logger.Debug("Retrying embedding in %v (attempt %d/%d)", delay, attempt, e.maxRetries)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}

		vec, err := e.client.Embed(ctx, text)
		if err == nil {
			return vec, nil
		}
		lastErr = err

		var retryable *driven.RetryableError
		if !errors.As(err, &retryable) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("retries exhausted: %w", lastErr)
}

// EmbedChunks embeds every chunk and pairs each with its metadata,
// preserving chunk order. Chunks inside a batch are embedded
// concurrently; consecutive batches are paced by the configured
// interval. Progress is reported after each batch.
func (e *Embedder) EmbedChunks(ctx context.Context, chunks []domain.Chunk, progress domain.ProgressFunc) ([]domain.IndexEntry, error) {
	if len(chunks) == 0 {
		return nil, nil
	}

	entries := make([]domain.IndexEntry, len(chunks))
	total := len(chunks)
	done := 0

	for start := 0; start < total; start += e.batchSize {
		end := start + e.batchSize
		if end > total {
			end = total
		}

		if err := e.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		var wg sync.WaitGroup
		errs := make([]error, end-start)
		for i := start; i < end; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				vec, err := e.Embed(ctx, chunks[i].Text)
				if err != nil {
					errs[i-start] = err
					return
				}
				entries[i] = chunks[i].Entry(vec)
			}(i)
		}
		wg.Wait()

		for _, err := range errs {
			if err != nil {
				return nil, err
			}
		}

		done = end
		progress.Report(domain.PhaseEmbedding, done, total,
			fmt.Sprintf("Embedded %d/%d chunks", done, total))
	}

	return entries, nil
}
