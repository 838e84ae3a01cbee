package driven

import (
	"context"

	"github.com/custodia-labs/docaudit-cli/internal/core/domain"
)

// HistoryStore persists finished analyses and queries.
type HistoryStore interface {
	// Append records an entry. The ID and CreatedAt must already be set.
	Append(ctx context.Context, entry *domain.HistoryEntry) error

	// List returns the most recent entries, newest first.
	// A limit <= 0 returns everything.
	List(ctx context.Context, limit int) ([]domain.HistoryEntry, error)

	// Clear removes all entries.
	Clear(ctx context.Context) error
}
