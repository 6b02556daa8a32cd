package driven

import (
	"context"

	"github.com/frederico-kluser/docchat/internal/core/domain"
)

// PageExtractor supplies positioned text fragments per page from an
// external extraction collaborator (e.g. a PDF-rendering library).
// The pipeline never parses document binary formats itself.
type PageExtractor interface {
	// PageCount reports the number of pages available.
	PageCount(ctx context.Context) (int, error)

	// ExtractPage returns the positioned fragments of the 1-based page.
	ExtractPage(ctx context.Context, page int) ([]domain.PageFragment, error)
}

// ConfigStore persists pipeline configuration between sessions.
type ConfigStore interface {
	// Load reads the stored configuration, falling back to defaults when
	// nothing has been stored yet.
	Load() (domain.Config, error)

	// Save writes the configuration.
	Save(cfg domain.Config) error
}
