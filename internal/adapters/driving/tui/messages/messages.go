// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/docaudit-cli/internal/core/domain"
)

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewPicker lists documents to choose from.
	ViewPicker ViewType = iota
	// ViewDocument shows the selected document, its analysis and the query panel.
	ViewDocument
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewPicker:
		return "picker"
	case ViewDocument:
		return "document"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// FilesListed carries the supported files of a directory.
type FilesListed struct {
	Dir   string
	Files []domain.CandidateFile
	Err   error
}

// FileChosen is sent when the user picks a file to analyse.
type FileChosen struct {
	File domain.CandidateFile
}

// WorkflowUpdated carries a state snapshot published by the workflow.
type WorkflowUpdated struct {
	State domain.WorkflowState
}

// SubmitFinished is sent when a submit or resubmit returns.
type SubmitFinished struct {
	State domain.WorkflowState
	Err   error
}

// QueryFinished is sent when a question has been answered.
type QueryFinished struct {
	State domain.WorkflowState
	Err   error
}

// FileRemoved is sent after the current file was discarded.
type FileRemoved struct {
	State domain.WorkflowState
}

// HealthChecked carries the analysis service health.
type HealthChecked struct {
	Status *domain.HealthStatus
	Err    error
}

// ExampleTick advances the example question carousel.
// Seq ties the tick to the carousel run that scheduled it.
type ExampleTick struct {
	Seq int
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
