package driven

import "github.com/custodia-labs/docaudit-cli/internal/core/domain"

// FileLoader resolves local filesystem paths into candidate files.
type FileLoader interface {
	// Load stats a single path and returns a candidate with a reopenable payload.
	// Returns domain.ErrNotFound when the path does not exist.
	Load(path string) (*domain.CandidateFile, error)

	// List returns the supported, non-hidden files directly inside dir,
	// sorted by name.
	List(dir string) ([]domain.CandidateFile, error)
}
