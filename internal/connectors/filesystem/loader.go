// Package filesystem turns local files into upload candidates and watches
// drop folders for new documents.
package filesystem

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/custodia-labs/docaudit-cli/internal/core/domain"
	"github.com/custodia-labs/docaudit-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docaudit-cli/internal/logger"
)

// Ensure Loader implements the interface.
var _ driven.FileLoader = (*Loader)(nil)

// fallbackTypes covers the supported extensions when sniffing fails.
var fallbackTypes = map[string]string{
	".pdf":  "application/pdf",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".txt":  "text/plain",
}

// Loader reads candidate files from the local filesystem.
type Loader struct{}

// NewLoader creates a filesystem loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load stats path and returns a candidate whose payload reopens the file
// on every call.
func (l *Loader) Load(path string) (*domain.CandidateFile, error) {
	path = ResolvePath(path)
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, path)
		}
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", domain.ErrInvalidInput, path)
	}

	return candidateFor(abs, info), nil
}

// List returns supported, non-hidden regular files directly inside dir.
func (l *Loader) List(dir string) ([]domain.CandidateFile, error) {
	dir = ResolvePath(dir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, dir)
		}
		return nil, err
	}

	var files []domain.CandidateFile //nolint:prealloc // filtered
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || isHidden(name) || !domain.IsSupportedFile(name) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			logger.Debug("skipping %s: %v", name, err)
			continue
		}
		abs, err := filepath.Abs(filepath.Join(dir, name))
		if err != nil {
			continue
		}
		files = append(files, *candidateFor(abs, info))
	}

	sort.Slice(files, func(i, j int) bool {
		return strings.ToLower(files[i].Name) < strings.ToLower(files[j].Name)
	})
	return files, nil
}

func candidateFor(path string, info os.FileInfo) *domain.CandidateFile {
	return &domain.CandidateFile{
		Name:      info.Name(),
		Path:      path,
		Size:      info.Size(),
		MediaType: detectMediaType(path),
		Payload:   filePayload(path),
	}
}

func filePayload(path string) domain.Payload {
	return domain.PayloadFunc(func() (io.ReadCloser, error) {
		return os.Open(path)
	})
}

// detectMediaType sniffs the file content, falling back to the extension
// when the sniffed type is too generic. Parameters such as charset are stripped.
func detectMediaType(path string) string {
	ext := strings.ToLower(filepath.Ext(path))

	detected := ""
	if mt, err := mimetype.DetectFile(path); err == nil {
		detected = stripParams(mt.String())
	}

	if t, ok := fallbackTypes[ext]; ok && isGeneric(detected) {
		return t
	}
	if detected != "" {
		return detected
	}
	if t := mime.TypeByExtension(ext); t != "" {
		return stripParams(t)
	}
	return "application/octet-stream"
}

// isGeneric reports sniff results that say little about the document kind.
func isGeneric(mediaType string) bool {
	switch mediaType {
	case "", "application/octet-stream", "application/zip", "text/plain":
		return true
	}
	return false
}

func stripParams(mediaType string) string {
	if i := strings.Index(mediaType, ";"); i >= 0 {
		return strings.TrimSpace(mediaType[:i])
	}
	return mediaType
}

// isHidden reports whether any path element starts with a dot.
// "." and ".." are not hidden.
func isHidden(path string) bool {
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if part == "" || part == "." || part == ".." {
			continue
		}
		if strings.HasPrefix(part, ".") {
			return true
		}
	}
	return false
}
