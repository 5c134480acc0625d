package ui

import "github.com/fhunleth/zigler/internal/domain"

// Viewer displays test results in an interactive TUI
type Viewer interface {
	View(results *domain.RunOutput) error
}
