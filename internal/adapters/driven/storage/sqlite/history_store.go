package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/custodia-labs/docaudit-cli/internal/core/domain"
	"github.com/custodia-labs/docaudit-cli/internal/core/ports/driven"
)

// timeLayout is fixed width so created_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// historyStore implements driven.HistoryStore.
type historyStore struct {
	store *Store
}

var _ driven.HistoryStore = (*historyStore)(nil)

// Append records an entry.
func (s *historyStore) Append(ctx context.Context, entry *domain.HistoryEntry) error {
	if entry == nil || entry.ID == "" || !entry.Kind.IsValid() {
		return domain.ErrInvalidInput
	}
	createdAt := entry.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO history (id, kind, file_id, file_name, success, message, question, answer, error, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, entry.ID, string(entry.Kind),
		nullString(entry.FileID), nullString(entry.FileName),
		boolToInt(entry.Success), nullString(entry.Message),
		nullString(entry.Question), nullString(entry.Answer), nullString(entry.Error),
		createdAt.UTC().Format(timeLayout))
	if err != nil {
		return fmt.Errorf("saving history entry: %w", err)
	}
	return nil
}

// List returns up to limit entries, newest first.
func (s *historyStore) List(ctx context.Context, limit int) ([]domain.HistoryEntry, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}

	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, kind, file_id, file_name, success, message, question, answer, error, created_at
		FROM history
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var entries []domain.HistoryEntry //nolint:prealloc // size unknown from query
	for rows.Next() {
		entry, err := scanHistoryEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating history: %w", err)
	}

	return entries, nil
}

// Clear removes all entries.
func (s *historyStore) Clear(ctx context.Context) error {
	if _, err := s.store.db.ExecContext(ctx, "DELETE FROM history"); err != nil {
		return fmt.Errorf("clearing history: %w", err)
	}
	return nil
}

// ==================== Helper Functions ====================

func scanHistoryEntry(rows *sql.Rows) (*domain.HistoryEntry, error) {
	var e domain.HistoryEntry
	var kind, createdAt string
	var fileID, fileName, message, question, answer, errText sql.NullString
	var success int

	if err := rows.Scan(&e.ID, &kind, &fileID, &fileName, &success,
		&message, &question, &answer, &errText, &createdAt); err != nil {
		return nil, fmt.Errorf("scanning history entry: %w", err)
	}

	e.Kind = domain.HistoryKind(kind)
	e.FileID = fileID.String
	e.FileName = fileName.String
	e.Success = success == 1
	e.Message = message.String
	e.Question = question.String
	e.Answer = answer.String
	e.Error = errText.String
	if t, err := time.Parse(timeLayout, createdAt); err == nil {
		e.CreatedAt = t
	}
	return &e, nil
}

// nullString converts empty strings to NULL.
func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// boolToInt converts a bool to 1 (true) or 0 (false).
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
