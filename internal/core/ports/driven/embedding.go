package driven

import "context"

// EmbeddingClient converts text into fixed-dimension vectors through an
// external embedding endpoint.
//
// Note: this is the raw endpoint contract. Caching, retries, and batch
// scheduling live in the core embedding service, not here.
//
// Implementations may include:
//   - OpenAI (text-embedding-3-small, text-embedding-3-large)
//   - OpenAI-compatible inference servers
type EmbeddingClient interface {
	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts in one call.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the embedding vector size (e.g. 1536, 3072).
	// This must match the vector index configuration.
	Dimensions() int

	// ModelName returns the name of the embedding model being used.
	ModelName() string
}

// RetryableError marks a transport failure that is worth retrying
// (HTTP 429/5xx, connection resets). Non-retryable failures surface
// immediately.
type RetryableError struct {
	Err error
}

func (e *RetryableError) Error() string { return e.Err.Error() }

func (e *RetryableError) Unwrap() error { return e.Err }
