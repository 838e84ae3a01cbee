package driving

import (
	"context"

	"github.com/custodia-labs/docaudit-cli/internal/core/domain"
)

// HistoryService exposes recorded analyses and queries.
type HistoryService interface {
	// List returns up to limit entries, newest first. limit <= 0 means all.
	List(ctx context.Context, limit int) ([]domain.HistoryEntry, error)

	// Clear removes all recorded entries.
	Clear(ctx context.Context) error
}
