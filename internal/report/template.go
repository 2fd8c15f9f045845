package report

import "sra/internal/domain"

// Template supplies the baseline RunSummary shape the aggregator
// overlays: zeroed counters, no results, and the fixed "no snapshot
// activity" block.
type Template struct{}

// NewTemplate creates a new Template
func NewTemplate() Template {
	return Template{}
}

// Empty returns a fresh zeroed summary for testFilePath.
func (Template) Empty(testFilePath string) *domain.RunSummary {
	return &domain.RunSummary{
		TestResults: []domain.AssertionResult{},
		Snapshot: domain.SnapshotSummary{
			UncheckedKeys: []string{},
		},
		TestFilePath: testFilePath,
	}
}
