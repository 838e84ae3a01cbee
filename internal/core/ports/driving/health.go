package driving

import (
	"context"

	"github.com/custodia-labs/docaudit-cli/internal/core/domain"
)

// HealthService reports whether the analysis service is ready.
type HealthService interface {
	// Check queries the service health endpoint.
	Check(ctx context.Context) (*domain.HealthStatus, error)
}
