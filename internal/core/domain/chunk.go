package domain

import (
	"fmt"
	"hash/fnv"
)

// CharsPerToken is the character-to-token ratio used by the token
// approximation. Tuned for Portuguese prose, where tokenizers average
// roughly three characters per token.
const CharsPerToken = 3

// EstimateTokens approximates the token count of natural-language text.
// It is deliberately cheap: ceil(len/CharsPerToken). Callers must treat
// the result as an estimate, not an exact tokenizer count.
func EstimateTokens(text string) int {
	if text == "" {
		return 0
	}
	return (len(text) + CharsPerToken - 1) / CharsPerToken
}

// ContentHash returns a deterministic digest of text, used as the key for
// the embedding cache and for response-cache source fingerprints.
// FNV-1a is sufficient here: the hash is a cache key, not a security
// boundary.
func ContentHash(text string) string {
	h := fnv.New64a()
	_, _ = h.Write([]byte(text))
	return fmt.Sprintf("%016x", h.Sum64())
}

// Chunk is a passage of source text produced by the splitter.
// Chunks are immutable once embedded; they live until the index is
// cleared or a new document replaces them.
type Chunk struct {
	// Text is the passage content.
	Text string

	// SourceDocument identifies the document this chunk came from.
	SourceDocument string

	// PageNumber is the 1-based page the chunk was extracted from.
	PageNumber int

	// ChunkIndexOnPage is the 0-based position of the chunk within its page.
	ChunkIndexOnPage int

	// EstimatedTokens is the approximate token count of Text.
	EstimatedTokens int

	// Importance is a structural relevance multiplier in [1.0, 2.0].
	Importance float64

	// ContentHash is the deterministic digest of Text.
	ContentHash string
}

// ID returns the chunk's index entry identifier.
func (c Chunk) ID() string {
	return EntryID(c.SourceDocument, c.PageNumber, c.ChunkIndexOnPage)
}

// EntryID builds the canonical index entry identifier for a chunk position.
// IDs are unique within an index; re-inserting the same id overwrites.
func EntryID(sourceDocument string, page, chunkIndex int) string {
	return fmt.Sprintf("%s_p%d_c%d", sourceDocument, page, chunkIndex)
}

// ChunkMetadata carries the searchable metadata stored alongside an
// index entry's text and embedding.
type ChunkMetadata struct {
	SourceDocument   string  `json:"sourceDocument"`
	PageNumber       int     `json:"pageNumber"`
	ChunkIndexOnPage int     `json:"chunkIndexOnPage"`
	EstimatedTokens  int     `json:"estimatedTokens"`
	Importance       float64 `json:"importance"`
	ContentHash      string  `json:"contentHash"`
}

// IndexEntry is the unit stored in the vector index.
type IndexEntry struct {
	// ID is unique within an index (see EntryID).
	ID string `json:"id"`

	// Text is the chunk content.
	Text string `json:"text"`

	// Embedding is the fixed-dimension vector for Text. The embedding
	// cache is the canonical owner of vectors; the index holds its own
	// copy for similarity search.
	Embedding []float32 `json:"embedding"`

	// Metadata holds the chunk's page, source, and scoring fields.
	Metadata ChunkMetadata `json:"metadata"`
}

// Entry builds the index entry for a chunk and its embedding.
func (c Chunk) Entry(embedding []float32) IndexEntry {
	return IndexEntry{
		ID:        c.ID(),
		Text:      c.Text,
		Embedding: embedding,
		Metadata: ChunkMetadata{
			SourceDocument:   c.SourceDocument,
			PageNumber:       c.PageNumber,
			ChunkIndexOnPage: c.ChunkIndexOnPage,
			EstimatedTokens:  c.EstimatedTokens,
			Importance:       c.Importance,
			ContentHash:      c.ContentHash,
		},
	}
}

// SearchResult is a transient scored retrieval hit. Results are produced
// per query and never persisted.
type SearchResult struct {
	// Entry is the matched index entry.
	Entry IndexEntry

	// Score is the similarity score in [0, 1].
	Score float64

	// Origin records which search path produced the hit: "vector" or
	// "keyword" (degraded mode).
	Origin string
}

// RetrieveOptions configures a retrieval call.
type RetrieveOptions struct {
	// Limit is the maximum number of results (default 5).
	Limit int

	// Threshold excludes results scoring below it.
	Threshold float64

	// UseReranking asks the LLM to reorder candidates by relevance.
	// Rerank failures degrade to the vector ordering.
	UseReranking bool

	// IncludeContext extends results with immediately adjacent chunks
	// from the same page when they exist.
	IncludeContext bool
}

// PageFragment is a positioned text fragment emitted by the external
// page-extraction collaborator. Coordinates use a bottom-left origin.
type PageFragment struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Width float64 `json:"width,omitempty"`
	Text  string  `json:"text"`
}

// DocumentStats summarises the currently ingested document.
type DocumentStats struct {
	DocumentID  string `json:"documentId"`
	PageCount   int    `json:"pageCount"`
	ChunkCount  int    `json:"chunkCount"`
	TotalTokens int    `json:"totalTokens"`
}
