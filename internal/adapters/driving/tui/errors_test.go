package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors_AreDistinct(t *testing.T) {
	errors := []error{
		ErrMissingWorkflowService,
		ErrMissingFileService,
		ErrInvalidPorts,
	}

	// Ensure all errors are unique
	seen := make(map[string]bool)
	for _, err := range errors {
		msg := err.Error()
		assert.False(t, seen[msg], "duplicate error message: %s", msg)
		seen[msg] = true
	}
}

func TestErrMissingWorkflowService_Message(t *testing.T) {
	assert.Contains(t, ErrMissingWorkflowService.Error(), "workflow service")
}

func TestErrMissingFileService_Message(t *testing.T) {
	assert.Contains(t, ErrMissingFileService.Error(), "file service")
}

func TestErrInvalidPorts_Message(t *testing.T) {
	assert.Contains(t, ErrInvalidPorts.Error(), "ports")
}
