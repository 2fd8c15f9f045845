package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"sra/internal/domain"
)

// Save assembles an archive from the replayed summaries and writes it
// to the configured JSON output file.
func (s *JSONStorage) Save(summaries []*domain.RunSummary, duration time.Duration, workers int) (*domain.RunArchive, error) {
	meta := domain.ArchiveMeta{
		TotalStreams:    len(summaries),
		Duration:        duration.String(),
		DurationSeconds: duration.Seconds(),
		Workers:         workers,
		Timestamp:       time.Now().Format(time.RFC3339),
	}
	for _, summary := range summaries {
		meta.TotalSpecs += len(summary.TestResults)
		meta.FailingSpecs += summary.NumFailingTests
		meta.PassingSpecs += summary.NumPassingTests
		meta.PendingSpecs += summary.NumPendingTests
		meta.TodoSpecs += summary.NumTodoTests
	}

	archive := &domain.RunArchive{
		Meta: meta,
		Runs: summaries,
	}
	if err := s.SaveArchive(archive); err != nil {
		return nil, err
	}
	return archive, nil
}

// Load reads the last archive from the configured JSON output file.
func (s *JSONStorage) Load() (*domain.RunArchive, error) {
	path := s.cfg.GetOutputPath()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read results file: %w", err)
	}
	var archive domain.RunArchive
	if err := json.Unmarshal(data, &archive); err != nil {
		return nil, fmt.Errorf("parse results: %w", err)
	}
	return &archive, nil
}

// SaveArchive writes the full archive to the configured JSON file (e.g.
// after the viewer toggles resolved markers).
func (s *JSONStorage) SaveArchive(archive *domain.RunArchive) error {
	data, err := json.MarshalIndent(archive, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}
	path := s.cfg.GetOutputPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write results: %w", err)
	}
	return nil
}
