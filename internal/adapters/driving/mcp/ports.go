package mcp

import (
	"github.com/custodia-labs/docaudit-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Workflow drives submit, query and remove.
	Workflow driving.WorkflowService

	// Files resolves the paths passed to analyze_document.
	Files driving.FileService

	// History backs the history resource. Optional.
	History driving.HistoryService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Workflow == nil {
		return ErrMissingWorkflowService
	}
	if p.Files == nil {
		return ErrMissingFileService
	}
	return nil
}
