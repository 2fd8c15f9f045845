package ui

import "sra/internal/domain"

// Viewer displays archived failures in an interactive TUI
type Viewer interface {
	View(archive *domain.RunArchive) error
}
