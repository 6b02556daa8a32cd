package services

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/frederico-kluser/docchat/internal/core/domain"
	"github.com/frederico-kluser/docchat/internal/core/ports/driven"
	"github.com/frederico-kluser/docchat/internal/logger"
)

// Exporter persists and restores the vector index as a versioned JSON
// envelope. Restores are all-or-nothing: a blob that fails any check
// leaves the running index untouched.
type Exporter struct {
	index   driven.VectorIndex
	keyword driven.KeywordIndex
	cache   driven.EmbeddingCache
	cfg     domain.Config
}

// NewExporter creates an Exporter. keyword and cache may be nil.
func NewExporter(index driven.VectorIndex, keyword driven.KeywordIndex, cache driven.EmbeddingCache, cfg domain.Config) *Exporter {
	return &Exporter{index: index, keyword: keyword, cache: cache, cfg: cfg}
}

// Export bundles the current index, document stats, configuration, and a
// bounded slice of the embedding cache into a JSON blob.
func (e *Exporter) Export(stats domain.DocumentStats) ([]byte, error) {
	blob, err := e.index.Serialize()
	if err != nil {
		return nil, fmt.Errorf("exporter: serialize index: %w", err)
	}

	export := domain.IndexExport{
		ExportID: uuid.NewString(),
		Version:  domain.ExportVersion,
		Metadata: domain.ExportMetadata{
			EmbeddingModel: e.cfg.EmbeddingModel,
			Dimensions:     e.cfg.EmbeddingDimensions,
			CreatedAt:      time.Now().UTC(),
			DocumentStats:  stats,
			Config:         e.cfg,
		},
		SerializedIndex: blob,
	}
	if e.cache != nil {
		export.EmbeddingCache = e.cache.Entries(domain.ExportedCacheLimit)
	}

	out, err := json.Marshal(export)
	if err != nil {
		return nil, fmt.Errorf("exporter: marshal envelope: %w", err)
	}
	logger.Info("Exported index %s (%d entries)", export.ExportID, e.index.Len())
	return out, nil
}

// Import validates blob and restores its index contents, returning the
// envelope metadata. Validation runs before any mutation; once the index
// is restored the keyword index is rebuilt and cached vectors are
// re-seeded.
func (e *Exporter) Import(blob []byte) (domain.ExportMetadata, error) {
	var export domain.IndexExport
	if err := json.Unmarshal(blob, &export); err != nil {
		return domain.ExportMetadata{}, fmt.Errorf("%w: %v", domain.ErrInvalidFormat, err)
	}
	if export.Version != domain.ExportVersion {
		return domain.ExportMetadata{}, fmt.Errorf("%w: version %q, expected %q",
			domain.ErrInvalidFormat, export.Version, domain.ExportVersion)
	}
	if len(export.SerializedIndex) == 0 {
		return domain.ExportMetadata{}, fmt.Errorf("%w: missing serialized index", domain.ErrInvalidFormat)
	}
	if export.Metadata.Dimensions != e.cfg.EmbeddingDimensions {
		return domain.ExportMetadata{}, fmt.Errorf("%w: export has %d dimensions, index expects %d",
			domain.ErrDimensionMismatch, export.Metadata.Dimensions, e.cfg.EmbeddingDimensions)
	}

	if err := e.index.Restore(export.SerializedIndex); err != nil {
		return domain.ExportMetadata{}, err
	}

	if e.keyword != nil {
		if err := e.rebuildKeywordIndex(export.SerializedIndex); err != nil {
			logger.Warn("Keyword index rebuild failed, degraded search disabled: %v", err)
		}
	}
	for _, entry := range export.EmbeddingCache {
		if e.cache != nil {
			e.cache.Set(entry.Hash, entry.Vector)
		}
	}

	logger.Info("Imported index %s (%d entries)", export.ExportID, e.index.Len())
	return export.Metadata, nil
}

// rebuildKeywordIndex re-indexes entry texts from the serialized blob.
// The blob layout is part of the export contract, so reading the entry
// list here does not couple the service to a particular index adapter.
func (e *Exporter) rebuildKeywordIndex(blob []byte) error {
	var contents struct {
		Entries []domain.IndexEntry `json:"entries"`
	}
	if err := json.Unmarshal(blob, &contents); err != nil {
		return err
	}
	if err := e.keyword.Clear(); err != nil {
		return err
	}
	for _, entry := range contents.Entries {
		if err := e.keyword.Index(entry.ID, entry.Text); err != nil {
			return err
		}
	}
	return nil
}
