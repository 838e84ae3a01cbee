package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/docaudit-cli/internal/core/domain"
)

// AnalyzeInput is the input schema for the analyze_document tool.
type AnalyzeInput struct {
	Path string `json:"path" jsonschema:"path of a local .pdf, .docx or .txt file to analyse"`
}

// AskInput is the input schema for the ask_document tool.
type AskInput struct {
	Query string `json:"query" jsonschema:"a follow-up question about the analysed document"`
}

// EmptyInput is the input schema for tools without arguments.
type EmptyInput struct{}

// FileOutput describes the selected file.
type FileOutput struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Size      int64  `json:"size"`
	MediaType string `json:"media_type,omitempty"`
	Status    string `json:"status"`
	Progress  int    `json:"progress"`
}

// AnalysisEntryOutput is one question/answer pair of an analysis.
type AnalysisEntryOutput struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// AnalysisOutput is the output schema for the analyze_document tool.
type AnalysisOutput struct {
	File              *FileOutput           `json:"file,omitempty"`
	Success           bool                  `json:"success"`
	Message           string                `json:"message"`
	Analysis          []AnalysisEntryOutput `json:"analysis,omitempty"`
	DocumentProcessed bool                  `json:"document_processed"`
	Error             string                `json:"error,omitempty"`
}

// QueryOutput is the output schema for the ask_document tool.
type QueryOutput struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	Query    string `json:"query"`
	Response string `json:"response"`
	Error    string `json:"error,omitempty"`
}

// StateOutput is the output schema for the workflow_state and
// remove_document tools.
type StateOutput struct {
	File         *FileOutput     `json:"file,omitempty"`
	Analysis     *AnalysisOutput `json:"analysis,omitempty"`
	Query        *QueryOutput    `json:"query,omitempty"`
	QueryEnabled bool            `json:"query_enabled"`
	Submitting   bool            `json:"submitting"`
	Querying     bool            `json:"querying"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "analyze_document",
		Description: "Upload a local document to the analysis service and return its analysis",
	}, s.handleAnalyze)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask_document",
		Description: "Ask a follow-up question about the most recently analysed document",
	}, s.handleAsk)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "workflow_state",
		Description: "Show the selected document, its analysis and the latest answer",
	}, s.handleState)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "remove_document",
		Description: "Discard the selected document and its results",
	}, s.handleRemove)
}

// handleAnalyze handles the analyze_document tool invocation.
// A failed upload is reported in the output, not as a tool error.
func (s *Server) handleAnalyze(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AnalyzeInput,
) (*mcp.CallToolResult, AnalysisOutput, error) {
	path := strings.TrimSpace(input.Path)
	if path == "" {
		return nil, AnalysisOutput{}, fmt.Errorf("path is required: %w", domain.ErrInvalidInput)
	}

	candidate, err := s.ports.Files.Load(path)
	if err != nil {
		return nil, AnalysisOutput{}, fmt.Errorf("loading %s: %w", path, err)
	}

	state, err := s.ports.Workflow.SelectAndSubmit(ctx, []domain.CandidateFile{*candidate})
	if errors.Is(err, domain.ErrStaleResult) {
		return nil, AnalysisOutput{}, fmt.Errorf("%s was replaced by another document before its analysis arrived: %w", candidate.Name, err)
	}
	if err != nil {
		return nil, AnalysisOutput{}, err
	}

	out := toAnalysisOutput(state.Analysis)
	if out == nil {
		out = &AnalysisOutput{Message: "No analysis returned"}
	}
	out.File = toFileOutput(state.File)
	return nil, *out, nil
}

// handleAsk handles the ask_document tool invocation.
func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, QueryOutput, error) {
	state, err := s.ports.Workflow.AskQuery(ctx, input.Query)
	if errors.Is(err, domain.ErrStaleResult) {
		return nil, QueryOutput{}, fmt.Errorf("a newer question replaced this one before its answer arrived: %w", err)
	}
	if err != nil {
		return nil, QueryOutput{}, err
	}
	out := toQueryOutput(state.Query)
	if out == nil {
		// A newer selection replaced the document while the question was out.
		return nil, QueryOutput{}, fmt.Errorf("answer discarded: %w", domain.ErrNoFile)
	}
	return nil, *out, nil
}

// handleState handles the workflow_state tool invocation.
func (s *Server) handleState(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ EmptyInput,
) (*mcp.CallToolResult, StateOutput, error) {
	return nil, toStateOutput(s.ports.Workflow.State()), nil
}

// handleRemove handles the remove_document tool invocation.
func (s *Server) handleRemove(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ EmptyInput,
) (*mcp.CallToolResult, StateOutput, error) {
	return nil, toStateOutput(s.ports.Workflow.Remove()), nil
}

func toFileOutput(f *domain.UploadedFile) *FileOutput {
	if f == nil {
		return nil
	}
	return &FileOutput{
		ID:        f.ID,
		Name:      f.Name,
		Size:      f.Size,
		MediaType: f.MediaType,
		Status:    f.Status.String(),
		Progress:  f.Progress,
	}
}

func toAnalysisOutput(a *domain.AnalysisResult) *AnalysisOutput {
	if a == nil {
		return nil
	}
	out := &AnalysisOutput{
		Success:           a.Success,
		Message:           a.Message,
		DocumentProcessed: a.DocumentProcessed,
		Error:             a.Error,
	}
	for _, e := range a.Entries() {
		out.Analysis = append(out.Analysis, AnalysisEntryOutput{Question: e.Question, Answer: e.Answer})
	}
	return out
}

func toQueryOutput(q *domain.QueryResult) *QueryOutput {
	if q == nil {
		return nil
	}
	return &QueryOutput{
		Success:  q.Success,
		Message:  q.Message,
		Query:    q.Query,
		Response: q.Response,
		Error:    q.Error,
	}
}

func toStateOutput(ws domain.WorkflowState) StateOutput {
	return StateOutput{
		File:         toFileOutput(ws.File),
		Analysis:     toAnalysisOutput(ws.Analysis),
		Query:        toQueryOutput(ws.Query),
		QueryEnabled: ws.QueryEnabled(),
		Submitting:   ws.Submitting,
		Querying:     ws.Querying,
	}
}
