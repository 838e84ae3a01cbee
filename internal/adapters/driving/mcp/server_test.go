package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer(t *testing.T) {
	t.Run("nil workflow service returns error", func(t *testing.T) {
		ports := &Ports{Files: &mockFileService{}}
		server, err := NewServer(ports)
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingWorkflowService)
	})

	t.Run("valid ports creates server", func(t *testing.T) {
		ports := &Ports{
			Workflow: &mockWorkflowService{},
			Files:    &mockFileService{},
		}
		server, err := NewServer(ports)
		require.NoError(t, err)
		assert.NotNil(t, server)
	})
}

func TestPorts_Validate(t *testing.T) {
	t.Run("nil workflow service returns error", func(t *testing.T) {
		ports := &Ports{Files: &mockFileService{}}
		err := ports.Validate()
		assert.ErrorIs(t, err, ErrMissingWorkflowService)
	})

	t.Run("nil file service returns error", func(t *testing.T) {
		ports := &Ports{Workflow: &mockWorkflowService{}}
		err := ports.Validate()
		assert.ErrorIs(t, err, ErrMissingFileService)
	})

	t.Run("history is optional", func(t *testing.T) {
		ports := &Ports{
			Workflow: &mockWorkflowService{},
			Files:    &mockFileService{},
		}
		err := ports.Validate()
		assert.NoError(t, err)
	})

	t.Run("all ports is valid", func(t *testing.T) {
		ports := &Ports{
			Workflow: &mockWorkflowService{},
			Files:    &mockFileService{},
			History:  &mockHistoryService{},
		}
		err := ports.Validate()
		assert.NoError(t, err)
	})
}
