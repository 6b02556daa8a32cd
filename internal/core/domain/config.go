package domain

import (
	"fmt"
	"time"
)

// Default configuration values.
const (
	DefaultEmbeddingModel      = "text-embedding-3-large"
	DefaultChatModel           = "gpt-4o-mini"
	DefaultEmbeddingDimensions = 3072
	DefaultChunkSize           = 500
	DefaultChunkOverlap        = 50
	DefaultBatchSize           = 5
	DefaultBatchInterval       = 200 * time.Millisecond
	DefaultMaxRetries          = 3
	DefaultRetryBaseDelay      = time.Second
	DefaultSimilarityThreshold = 0.3
	DefaultRetrieveLimit       = 5
	DefaultContextTokens       = 2000
	DefaultAnswerTokens        = 1000
	DefaultTemperature         = 0.3
	DefaultEmbeddingCacheSize  = 1000
	DefaultResponseCacheSize   = 100
	DefaultResponseCacheTTL    = time.Hour
)

// Config holds the pipeline configuration. The zero value is not usable;
// construct with DefaultConfig and override fields as needed.
type Config struct {
	// EmbeddingModel is the external embedding model identifier.
	EmbeddingModel string `toml:"embedding_model" json:"embeddingModel"`

	// ChatModel is the external chat/completion model identifier.
	ChatModel string `toml:"chat_model" json:"chatModel"`

	// EmbeddingDimensions is the fixed vector dimension. Import blobs
	// carrying a different dimension are rejected.
	EmbeddingDimensions int `toml:"embedding_dimensions" json:"embeddingDimensions"`

	// ChunkSize is the target chunk size in estimated tokens.
	ChunkSize int `toml:"chunk_size" json:"chunkSize"`

	// ChunkOverlap is the overlap tail budget in estimated tokens.
	ChunkOverlap int `toml:"chunk_overlap" json:"chunkOverlap"`

	// BatchSize is the number of chunks embedded concurrently per batch.
	BatchSize int `toml:"batch_size" json:"batchSize"`

	// BatchInterval is the pause between embedding batches.
	BatchInterval time.Duration `toml:"batch_interval" json:"batchIntervalMs"`

	// MaxRetries bounds retry attempts for transient embedding failures.
	MaxRetries int `toml:"max_retries" json:"maxRetries"`

	// RetryBaseDelay is the base of the exponential backoff.
	RetryBaseDelay time.Duration `toml:"retry_base_delay" json:"retryBaseDelayMs"`

	// SimilarityThreshold excludes vector hits scoring below it.
	SimilarityThreshold float64 `toml:"similarity_threshold" json:"similarityThreshold"`

	// RetrieveLimit is the default number of passages retrieved per query.
	RetrieveLimit int `toml:"retrieve_limit" json:"retrieveLimit"`

	// ContextTokens is the token budget for assembled context.
	ContextTokens int `toml:"context_tokens" json:"contextTokens"`

	// AnswerTokens caps the generated answer length.
	AnswerTokens int `toml:"answer_tokens" json:"answerTokens"`

	// Temperature controls generation randomness.
	Temperature float64 `toml:"temperature" json:"temperature"`

	// EmbeddingCacheSize bounds the embedding cache entry count.
	EmbeddingCacheSize int `toml:"embedding_cache_size" json:"embeddingCacheSize"`

	// ResponseCacheSize bounds the response cache entry count.
	ResponseCacheSize int `toml:"response_cache_size" json:"responseCacheSize"`

	// ResponseCacheTTL expires cached answers.
	ResponseCacheTTL time.Duration `toml:"response_cache_ttl" json:"responseCacheTtlMs"`
}

// DefaultConfig returns the configuration defaults.
func DefaultConfig() Config {
	return Config{
		EmbeddingModel:      DefaultEmbeddingModel,
		ChatModel:           DefaultChatModel,
		EmbeddingDimensions: DefaultEmbeddingDimensions,
		ChunkSize:           DefaultChunkSize,
		ChunkOverlap:        DefaultChunkOverlap,
		BatchSize:           DefaultBatchSize,
		BatchInterval:       DefaultBatchInterval,
		MaxRetries:          DefaultMaxRetries,
		RetryBaseDelay:      DefaultRetryBaseDelay,
		SimilarityThreshold: DefaultSimilarityThreshold,
		RetrieveLimit:       DefaultRetrieveLimit,
		ContextTokens:       DefaultContextTokens,
		AnswerTokens:        DefaultAnswerTokens,
		Temperature:         DefaultTemperature,
		EmbeddingCacheSize:  DefaultEmbeddingCacheSize,
		ResponseCacheSize:   DefaultResponseCacheSize,
		ResponseCacheTTL:    DefaultResponseCacheTTL,
	}
}

// Validate checks the configuration for values the pipeline cannot
// operate with.
func (c Config) Validate() error {
	if c.EmbeddingDimensions <= 0 {
		return fmt.Errorf("%w: embedding dimensions must be positive", ErrInvalidInput)
	}
	if c.ChunkSize <= 0 {
		return fmt.Errorf("%w: chunk size must be positive", ErrInvalidInput)
	}
	if c.ChunkOverlap < 0 || c.ChunkOverlap >= c.ChunkSize {
		return fmt.Errorf("%w: chunk overlap must be in [0, chunk size)", ErrInvalidInput)
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("%w: batch size must be positive", ErrInvalidInput)
	}
	if c.SimilarityThreshold < 0 || c.SimilarityThreshold > 1 {
		return fmt.Errorf("%w: similarity threshold must be in [0, 1]", ErrInvalidInput)
	}
	return nil
}
