package mcp

import (
	"context"

	"github.com/custodia-labs/docaudit-cli/internal/core/domain"
	"github.com/custodia-labs/docaudit-cli/internal/core/ports/driving"
)

// mockWorkflowService is a mock implementation of driving.WorkflowService.
type mockWorkflowService struct {
	state     domain.WorkflowState
	err       error
	submitted []domain.CandidateFile
	asked     []string
	removed   bool
}

func (m *mockWorkflowService) State() domain.WorkflowState {
	return m.state
}

func (m *mockWorkflowService) Select(c []domain.CandidateFile) (domain.WorkflowState, bool) {
	return m.state, len(c) > 0
}

func (m *mockWorkflowService) Submit(_ context.Context, _ string) (domain.WorkflowState, error) {
	return m.state, m.err
}

func (m *mockWorkflowService) SelectAndSubmit(
	_ context.Context,
	candidates []domain.CandidateFile,
) (domain.WorkflowState, error) {
	m.submitted = append(m.submitted, candidates...)
	return m.state, m.err
}

func (m *mockWorkflowService) Resubmit(_ context.Context) (domain.WorkflowState, error) {
	return m.state, m.err
}

func (m *mockWorkflowService) Remove() domain.WorkflowState {
	m.removed = true
	m.state = domain.WorkflowState{}
	return m.state
}

func (m *mockWorkflowService) SetPendingQuery(text string) domain.WorkflowState {
	m.state.PendingQuery = text
	return m.state
}

func (m *mockWorkflowService) AskQuery(_ context.Context, text string) (domain.WorkflowState, error) {
	m.asked = append(m.asked, text)
	return m.state, m.err
}

func (m *mockWorkflowService) Subscribe(func(domain.WorkflowState)) func() {
	return func() {}
}

// mockFileService is a mock implementation of driving.FileService.
type mockFileService struct {
	err error
}

func (m *mockFileService) Load(path string) (*domain.CandidateFile, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &domain.CandidateFile{Name: "report.pdf", Path: path, Size: 2048}, nil
}

func (m *mockFileService) Browse(_ string) ([]domain.CandidateFile, error) {
	return nil, m.err
}

// mockHistoryService is a mock implementation of driving.HistoryService.
type mockHistoryService struct {
	entries []domain.HistoryEntry
	err     error
	limit   int
}

func (m *mockHistoryService) List(_ context.Context, limit int) ([]domain.HistoryEntry, error) {
	m.limit = limit
	return m.entries, m.err
}

func (m *mockHistoryService) Clear(_ context.Context) error {
	return m.err
}

// Verify interface compliance.
var (
	_ driving.WorkflowService = (*mockWorkflowService)(nil)
	_ driving.FileService     = (*mockFileService)(nil)
	_ driving.HistoryService  = (*mockHistoryService)(nil)
)

func processedState() domain.WorkflowState {
	return domain.WorkflowState{
		File: &domain.UploadedFile{
			ID: "file-1", Name: "report.pdf", Size: 2048, MediaType: "application/pdf",
			Status: domain.FileCompleted, Progress: 100,
		},
		Analysis: &domain.AnalysisResult{
			Success: true,
			Message: "File processed successfully",
			Analysis: map[string]string{
				"What risks are listed?":     "Liquidity risk.",
				"Summarize the key findings": "Revenue grew.",
			},
			DocumentProcessed: true,
		},
	}
}
