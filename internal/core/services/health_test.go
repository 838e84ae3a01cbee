package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docaudit-cli/internal/core/domain"
)

func TestHealthService_Check(t *testing.T) {
	s := NewHealthService(&mockAnalysis{})

	status, err := s.Check(context.Background())

	require.NoError(t, err)
	assert.True(t, status.Healthy())
	assert.True(t, status.RAGInitialized)
}

func TestHealthService_Check_Error(t *testing.T) {
	s := NewHealthService(&mockAnalysis{
		HealthFunc: func(context.Context) (*domain.HealthStatus, error) {
			return nil, domain.ErrTransport
		},
	})

	_, err := s.Check(context.Background())

	assert.True(t, errors.Is(err, domain.ErrTransport))
}

func TestHealthService_NotConfigured(t *testing.T) {
	_, err := NewHealthService(nil).Check(context.Background())
	assert.Error(t, err)
}
