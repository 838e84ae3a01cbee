package mcp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docaudit-cli/internal/core/domain"
)

func newTestServer(t *testing.T, workflow *mockWorkflowService, files *mockFileService) *Server {
	t.Helper()
	server, err := NewServer(&Ports{Workflow: workflow, Files: files})
	require.NoError(t, err)
	return server
}

func TestServer_handleAnalyze(t *testing.T) {
	ctx := context.Background()

	t.Run("returns sorted analysis", func(t *testing.T) {
		workflow := &mockWorkflowService{state: processedState()}
		server := newTestServer(t, workflow, &mockFileService{})

		_, output, err := server.handleAnalyze(ctx, nil, AnalyzeInput{Path: "/docs/report.pdf"})

		require.NoError(t, err)
		require.Len(t, workflow.submitted, 1)
		assert.Equal(t, "/docs/report.pdf", workflow.submitted[0].Path)
		assert.True(t, output.Success)
		assert.True(t, output.DocumentProcessed)
		require.Len(t, output.Analysis, 2)
		assert.Equal(t, "Summarize the key findings", output.Analysis[0].Question)
		assert.Equal(t, "What risks are listed?", output.Analysis[1].Question)
		require.NotNil(t, output.File)
		assert.Equal(t, "completed", output.File.Status)
		assert.Equal(t, 100, output.File.Progress)
	})

	t.Run("failed upload is reported in output", func(t *testing.T) {
		workflow := &mockWorkflowService{state: domain.WorkflowState{
			File:     &domain.UploadedFile{ID: "file-1", Name: "report.pdf", Status: domain.FileError, Progress: 100},
			Analysis: domain.NewFailedAnalysis(domain.ErrTransport),
		}}
		server := newTestServer(t, workflow, &mockFileService{})

		_, output, err := server.handleAnalyze(ctx, nil, AnalyzeInput{Path: "report.pdf"})

		require.NoError(t, err)
		assert.False(t, output.Success)
		assert.Equal(t, "Failed to process file", output.Message)
		assert.Contains(t, output.Error, "transport error")
		assert.Equal(t, "error", output.File.Status)
	})

	t.Run("empty path is rejected", func(t *testing.T) {
		workflow := &mockWorkflowService{}
		server := newTestServer(t, workflow, &mockFileService{})

		_, _, err := server.handleAnalyze(ctx, nil, AnalyzeInput{Path: "  "})

		require.ErrorIs(t, err, domain.ErrInvalidInput)
		assert.Empty(t, workflow.submitted)
	})

	t.Run("load error is returned", func(t *testing.T) {
		workflow := &mockWorkflowService{}
		server := newTestServer(t, workflow, &mockFileService{err: domain.ErrNotFound})

		_, _, err := server.handleAnalyze(ctx, nil, AnalyzeInput{Path: "notes.md"})

		require.ErrorIs(t, err, domain.ErrNotFound)
		assert.Contains(t, err.Error(), "notes.md")
		assert.Empty(t, workflow.submitted)
	})

	t.Run("workflow error is returned", func(t *testing.T) {
		workflow := &mockWorkflowService{err: domain.ErrSubmitInFlight}
		server := newTestServer(t, workflow, &mockFileService{})

		_, _, err := server.handleAnalyze(ctx, nil, AnalyzeInput{Path: "report.pdf"})

		assert.ErrorIs(t, err, domain.ErrSubmitInFlight)
	})
}

func TestServer_handleAsk(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the answer", func(t *testing.T) {
		state := processedState()
		state.Query = &domain.QueryResult{
			Success: true, Message: "Query processed successfully",
			Query: "Who audited it?", Response: "An external firm.",
		}
		workflow := &mockWorkflowService{state: state}
		server := newTestServer(t, workflow, &mockFileService{})

		_, output, err := server.handleAsk(ctx, nil, AskInput{Query: "Who audited it?"})

		require.NoError(t, err)
		assert.Equal(t, []string{"Who audited it?"}, workflow.asked)
		assert.True(t, output.Success)
		assert.Equal(t, "An external firm.", output.Response)
	})

	t.Run("not processed is an error", func(t *testing.T) {
		workflow := &mockWorkflowService{err: domain.ErrDocumentNotProcessed}
		server := newTestServer(t, workflow, &mockFileService{})

		_, _, err := server.handleAsk(ctx, nil, AskInput{Query: "anything"})

		assert.ErrorIs(t, err, domain.ErrDocumentNotProcessed)
	})

	t.Run("discarded answer is an error", func(t *testing.T) {
		workflow := &mockWorkflowService{state: processedState()}
		server := newTestServer(t, workflow, &mockFileService{})

		_, _, err := server.handleAsk(ctx, nil, AskInput{Query: "anything"})

		assert.ErrorIs(t, err, domain.ErrNoFile)
	})
}

func TestServer_handleState(t *testing.T) {
	workflow := &mockWorkflowService{state: processedState()}
	server := newTestServer(t, workflow, &mockFileService{})

	_, output, err := server.handleState(context.Background(), nil, EmptyInput{})

	require.NoError(t, err)
	require.NotNil(t, output.File)
	assert.Equal(t, "report.pdf", output.File.Name)
	assert.True(t, output.QueryEnabled)
	require.NotNil(t, output.Analysis)
	assert.Len(t, output.Analysis.Analysis, 2)
	assert.Nil(t, output.Query)
}

func TestServer_handleRemove(t *testing.T) {
	workflow := &mockWorkflowService{state: processedState()}
	server := newTestServer(t, workflow, &mockFileService{})

	_, output, err := server.handleRemove(context.Background(), nil, EmptyInput{})

	require.NoError(t, err)
	assert.True(t, workflow.removed)
	assert.Nil(t, output.File)
	assert.Nil(t, output.Analysis)
	assert.False(t, output.QueryEnabled)
}

func TestServer_SupersededResultsAreErrors(t *testing.T) {
	ctx := context.Background()
	workflow := &mockWorkflowService{state: processedState(), err: domain.ErrStaleResult}
	server := newTestServer(t, workflow, &mockFileService{})

	_, _, err := server.handleAsk(ctx, nil, AskInput{Query: "old question"})
	assert.ErrorIs(t, err, domain.ErrStaleResult)

	_, _, err = server.handleAnalyze(ctx, nil, AnalyzeInput{Path: "report.pdf"})
	assert.ErrorIs(t, err, domain.ErrStaleResult)
}
