package services

import (
	"context"
	"errors"

	"github.com/custodia-labs/docaudit-cli/internal/core/domain"
	"github.com/custodia-labs/docaudit-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docaudit-cli/internal/core/ports/driving"
)

// Ensure HealthService implements the interface.
var _ driving.HealthService = (*HealthService)(nil)

// HealthService checks the analysis service.
type HealthService struct {
	analysis driven.AnalysisService
}

// NewHealthService creates a new health service.
func NewHealthService(analysis driven.AnalysisService) *HealthService {
	return &HealthService{analysis: analysis}
}

// Check queries the service health endpoint.
func (s *HealthService) Check(ctx context.Context) (*domain.HealthStatus, error) {
	if s.analysis == nil {
		return nil, errors.New("analysis service not configured")
	}
	return s.analysis.Health(ctx)
}
