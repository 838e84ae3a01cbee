// Package domain defines the core entities of docaudit.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - UploadedFile: The single document currently selected for analysis
//   - AnalysisResult: The Analysis Service's answer to an uploaded document
//   - QueryResult: The answer to a follow-up question about that document
//   - WorkflowState: The snapshot a front end renders
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
