// Package tui provides an interactive terminal user interface for docaudit.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/docaudit-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Workflow drives select, submit, query and remove.
	Workflow driving.WorkflowService

	// Files lists and loads local documents for the picker.
	Files driving.FileService

	// Health reports whether the analysis service is ready. Optional.
	Health driving.HealthService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(
	workflow driving.WorkflowService,
	files driving.FileService,
	health driving.HealthService,
) *Ports {
	return &Ports{
		Workflow: workflow,
		Files:    files,
		Health:   health,
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Workflow == nil {
		return ErrMissingWorkflowService
	}
	if p.Files == nil {
		return ErrMissingFileService
	}
	return nil
}
