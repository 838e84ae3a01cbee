package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strconv"
	"sync"

	"github.com/custodia-labs/docaudit-cli/internal/core/domain"
	"github.com/custodia-labs/docaudit-cli/internal/core/ports/driven"
)

// mockAnalysis is a configurable driven.AnalysisService.
type mockAnalysis struct {
	PredictFunc func(ctx context.Context, req driven.PredictRequest) (*driven.PredictReply, error)
	QueryFunc   func(ctx context.Context, query string) (*domain.QueryResult, error)
	HealthFunc  func(ctx context.Context) (*domain.HealthStatus, error)

	mu       sync.Mutex
	uploads  []string
	queries  []string
	bodyRead []string
}

func (m *mockAnalysis) Predict(ctx context.Context, req driven.PredictRequest) (*driven.PredictReply, error) {
	body, _ := io.ReadAll(req.Content)
	m.mu.Lock()
	m.uploads = append(m.uploads, req.FileName)
	m.bodyRead = append(m.bodyRead, string(body))
	m.mu.Unlock()
	if m.PredictFunc != nil {
		return m.PredictFunc(ctx, req)
	}
	if req.OnResponse != nil {
		req.OnResponse(200)
	}
	return &driven.PredictReply{
		StatusCode: 200,
		Result:     &domain.AnalysisResult{Success: true, Message: "ok", DocumentProcessed: true},
	}, nil
}

func (m *mockAnalysis) Query(ctx context.Context, query string) (*domain.QueryResult, error) {
	m.mu.Lock()
	m.queries = append(m.queries, query)
	m.mu.Unlock()
	if m.QueryFunc != nil {
		return m.QueryFunc(ctx, query)
	}
	return &domain.QueryResult{Success: true, Message: "ok", Query: query, Response: "answer"}, nil
}

func (m *mockAnalysis) Health(ctx context.Context) (*domain.HealthStatus, error) {
	if m.HealthFunc != nil {
		return m.HealthFunc(ctx)
	}
	return &domain.HealthStatus{Status: "healthy", Message: "ready", RAGInitialized: true}, nil
}

func (m *mockAnalysis) Uploads() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.uploads...)
}

func (m *mockAnalysis) Queries() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.queries...)
}

// mockHistory records appended entries.
type mockHistory struct {
	mu        sync.Mutex
	entries   []domain.HistoryEntry
	AppendErr error
}

func (m *mockHistory) Append(_ context.Context, entry *domain.HistoryEntry) error {
	if m.AppendErr != nil {
		return m.AppendErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, *entry)
	return nil
}

func (m *mockHistory) List(_ context.Context, limit int) ([]domain.HistoryEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := append([]domain.HistoryEntry(nil), m.entries...)
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (m *mockHistory) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = nil
	return nil
}

// mockLoader serves candidate files from a map.
type mockLoader struct {
	files map[string]domain.CandidateFile
	dirs  map[string][]domain.CandidateFile
}

func (m *mockLoader) Load(path string) (*domain.CandidateFile, error) {
	c, ok := m.files[path]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}

func (m *mockLoader) List(dir string) ([]domain.CandidateFile, error) {
	files, ok := m.dirs[dir]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return files, nil
}

func candidate(name, content string) domain.CandidateFile {
	return domain.CandidateFile{
		Name:      name,
		Path:      "/tmp/" + name,
		Size:      int64(len(content)),
		MediaType: "text/plain",
		Payload: domain.PayloadFunc(func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader([]byte(content))), nil
		}),
	}
}

func brokenCandidate(name string) domain.CandidateFile {
	c := candidate(name, "")
	c.Payload = domain.PayloadFunc(func() (io.ReadCloser, error) {
		return nil, errors.New("permission denied")
	})
	return c
}

// sequentialIDs returns an ID generator producing "id-1", "id-2", ...
func sequentialIDs() func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return "id-" + strconv.Itoa(n)
	}
}
