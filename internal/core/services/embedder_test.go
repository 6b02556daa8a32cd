package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frederico-kluser/docchat/internal/adapters/driven/storage/memory"
	"github.com/frederico-kluser/docchat/internal/core/domain"
	"github.com/frederico-kluser/docchat/internal/core/ports/driven"
)

// fakeEmbeddingClient returns canned vectors and counts calls.
type fakeEmbeddingClient struct {
	mu      sync.Mutex
	calls   int
	vectors map[string][]float32
	errs    []error
}

func (f *fakeEmbeddingClient) Embed(_ context.Context, text string) ([]float32, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if len(f.errs) > 0 {
		err := f.errs[0]
		f.errs = f.errs[1:]
		if err != nil {
			return nil, err
		}
	}
	if vec, ok := f.vectors[text]; ok {
		return vec, nil
	}
	return []float32{1, 0, 0}, nil
}

func (f *fakeEmbeddingClient) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		vec, err := f.Embed(ctx, t)
		if err != nil {
			return nil, err
		}
		out[i] = vec
	}
	return out, nil
}

func (f *fakeEmbeddingClient) Dimensions() int { return 3 }

func (f *fakeEmbeddingClient) ModelName() string { return "fake-embedding" }

func (f *fakeEmbeddingClient) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func testConfig() domain.Config {
	cfg := domain.DefaultConfig()
	cfg.EmbeddingDimensions = 3
	cfg.BatchInterval = time.Millisecond
	cfg.RetryBaseDelay = time.Millisecond
	return cfg
}

func TestEmbedder_CacheDeduplicatesIdenticalText(t *testing.T) {
	client := &fakeEmbeddingClient{}
	cache := memory.NewEmbeddingCache(10)
	e := NewEmbedder(client, cache, testConfig())

	first, err := e.Embed(context.Background(), "mesmo texto")
	require.NoError(t, err)
	second, err := e.Embed(context.Background(), "mesmo texto")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, client.callCount())
}

func TestEmbedder_RetriesTransientFailures(t *testing.T) {
	client := &fakeEmbeddingClient{
		errs: []error{
			&driven.RetryableError{Err: errors.New("rate limited")},
			&driven.RetryableError{Err: errors.New("rate limited")},
		},
	}
	e := NewEmbedder(client, nil, testConfig())

	vec, err := e.Embed(context.Background(), "texto")
	require.NoError(t, err)
	assert.Len(t, vec, 3)
	assert.Equal(t, 3, client.callCount())
}

func TestEmbedder_PermanentFailureNotRetried(t *testing.T) {
	client := &fakeEmbeddingClient{
		errs: []error{errors.New("invalid request")},
	}
	e := NewEmbedder(client, nil, testConfig())

	_, err := e.Embed(context.Background(), "texto")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrEmbeddingFailed)
	assert.Equal(t, 1, client.callCount())
}

func TestEmbedder_RetriesExhausted(t *testing.T) {
	transient := &driven.RetryableError{Err: errors.New("server error")}
	client := &fakeEmbeddingClient{
		errs: []error{transient, transient, transient, transient},
	}
	e := NewEmbedder(client, nil, testConfig())

	_, err := e.Embed(context.Background(), "texto")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrEmbeddingFailed)
	assert.Equal(t, 4, client.callCount())
}

func TestEmbedder_EmptyTextRejected(t *testing.T) {
	e := NewEmbedder(&fakeEmbeddingClient{}, nil, testConfig())
	_, err := e.Embed(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestEmbedChunks_PreservesOrderAndReportsProgress(t *testing.T) {
	client := &fakeEmbeddingClient{vectors: map[string][]float32{
		"alfa":  {1, 0, 0},
		"beta":  {0, 1, 0},
		"gama":  {0, 0, 1},
		"delta": {1, 1, 0},
	}}
	cfg := testConfig()
	cfg.BatchSize = 2
	e := NewEmbedder(client, nil, cfg)

	chunks := make([]domain.Chunk, 0, 4)
	for i, text := range []string{"alfa", "beta", "gama", "delta"} {
		chunks = append(chunks, domain.Chunk{
			Text:             text,
			SourceDocument:   "doc",
			PageNumber:       1,
			ChunkIndexOnPage: i,
			ContentHash:      domain.ContentHash(text),
		})
	}

	var reports []domain.Progress
	entries, err := e.EmbedChunks(context.Background(), chunks, func(p domain.Progress) {
		reports = append(reports, p)
	})
	require.NoError(t, err)
	require.Len(t, entries, 4)

	assert.Equal(t, "doc_p1_c0", entries[0].ID)
	assert.Equal(t, []float32{1, 0, 0}, entries[0].Embedding)
	assert.Equal(t, "doc_p1_c3", entries[3].ID)
	assert.Equal(t, []float32{1, 1, 0}, entries[3].Embedding)

	require.Len(t, reports, 2)
	assert.Equal(t, domain.PhaseEmbedding, reports[0].Phase)
	assert.Equal(t, 2, reports[0].Current)
	assert.Equal(t, 4, reports[1].Current)
	assert.InDelta(t, 100.0, reports[1].Percentage, 1e-9)
}

func TestEmbedChunks_Empty(t *testing.T) {
	e := NewEmbedder(&fakeEmbeddingClient{}, nil, testConfig())
	entries, err := e.EmbedChunks(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Nil(t, entries)
}
