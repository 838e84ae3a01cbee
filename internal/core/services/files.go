package services

import (
	"errors"
	"fmt"

	"github.com/custodia-labs/docaudit-cli/internal/core/domain"
	"github.com/custodia-labs/docaudit-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docaudit-cli/internal/core/ports/driving"
)

// Ensure FileService implements the interface.
var _ driving.FileService = (*FileService)(nil)

// FileService resolves local paths into candidate files.
type FileService struct {
	loader driven.FileLoader
}

// NewFileService creates a new file service.
func NewFileService(loader driven.FileLoader) *FileService {
	return &FileService{loader: loader}
}

// Load resolves a single path. The type is not checked here: the analysis
// service rejects what it cannot read and that answer is shown as is.
func (s *FileService) Load(path string) (*domain.CandidateFile, error) {
	if s.loader == nil {
		return nil, errors.New("file loader not configured")
	}
	if path == "" {
		return nil, fmt.Errorf("%w: empty path", domain.ErrInvalidInput)
	}
	return s.loader.Load(path)
}

// Browse lists supported files in dir.
func (s *FileService) Browse(dir string) ([]domain.CandidateFile, error) {
	if s.loader == nil {
		return nil, errors.New("file loader not configured")
	}
	return s.loader.List(dir)
}
