package domain

// SourceRef is a citation attached to a generated answer.
type SourceRef struct {
	// ID is the index entry id of the cited passage.
	ID string `json:"id"`

	// PageNumber is the page the passage came from.
	PageNumber int `json:"pageNumber"`

	// Score is the retrieval relevance of the passage.
	Score float64 `json:"score"`

	// ContentHash fingerprints the passage content.
	ContentHash string `json:"contentHash"`

	// Excerpt is a short preview of the passage.
	Excerpt string `json:"excerpt"`
}

// Answer is the outcome of a generation call: the response text plus its
// citations. A zero-results retrieval produces a fixed no-information
// answer with empty sources; that is a successful outcome, not an error.
type Answer struct {
	// Content is the generated response text.
	Content string `json:"content"`

	// Sources cites the passages the answer was grounded on.
	Sources []SourceRef `json:"sources"`

	// Cached reports whether the answer was served from the response
	// cache without calling the model.
	Cached bool `json:"cached"`

	// PromptTokens and CompletionTokens carry the endpoint's token
	// accounting when available (blocking mode).
	PromptTokens     int `json:"promptTokens,omitempty"`
	CompletionTokens int `json:"completionTokens,omitempty"`
}
