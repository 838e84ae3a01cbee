package driving

import "github.com/custodia-labs/docaudit-cli/internal/core/domain"

// FileService turns user-chosen paths into candidate files.
type FileService interface {
	// Load resolves one path. Any file type is accepted.
	Load(path string) (*domain.CandidateFile, error)

	// Browse lists the supported files in a directory.
	Browse(dir string) ([]domain.CandidateFile, error)
}
