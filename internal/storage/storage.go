package storage

import (
	"time"

	"sra/internal/config"
	"sra/internal/domain"
)

// Storage persists and loads replay results (e.g. for the faills
// viewer).
type Storage interface {
	Save(summaries []*domain.RunSummary, duration time.Duration, workers int) (*domain.RunArchive, error)
	Load() (*domain.RunArchive, error)
	// SaveArchive rewrites the full archive (e.g. after viewer updates).
	SaveArchive(archive *domain.RunArchive) error
}

// JSONStorage stores archives in a JSON file under the configured
// output path.
type JSONStorage struct {
	cfg *config.Config
}

// NewJSONStorage returns a Storage that reads/writes the config's
// output JSON path.
func NewJSONStorage(cfg *config.Config) *JSONStorage {
	return &JSONStorage{cfg: cfg}
}
