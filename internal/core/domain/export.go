package domain

import (
	"encoding/json"
	"time"
)

// ExportVersion is the literal version tag checked on import.
const ExportVersion = "2.0"

// ExportedCacheLimit caps how many embedding cache entries ride along in
// an export, to bound the blob size.
const ExportedCacheLimit = 100

// CacheEntry is one exported embedding cache pair.
type CacheEntry struct {
	Hash   string    `json:"hash"`
	Vector []float32 `json:"vector"`
}

// ExportMetadata is the envelope's metadata block. Dimensions must equal
// the importing system's configured dimension before an import is accepted.
type ExportMetadata struct {
	EmbeddingModel string        `json:"embeddingModel"`
	Dimensions     int           `json:"dimensions"`
	CreatedAt      time.Time     `json:"createdAt"`
	DocumentStats  DocumentStats `json:"documentStats"`
	Config         Config        `json:"config"`
}

// IndexExport is the single-document persistence form of a vector index:
// the serialized index plus metadata and a bounded slice of the embedding
// cache. The version tag and dimensions are the bit-exact import contract.
type IndexExport struct {
	ExportID        string          `json:"exportId"`
	Version         string          `json:"version"`
	Metadata        ExportMetadata  `json:"metadata"`
	SerializedIndex json.RawMessage `json:"serializedIndex"`
	EmbeddingCache  []CacheEntry    `json:"partialEmbeddingCache,omitempty"`
}
