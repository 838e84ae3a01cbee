package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/docaudit-cli/internal/core/domain"
)

const (
	// URIScheme is the custom URI scheme for docaudit resources.
	uriScheme = "docaudit://"

	// historyLimit caps the entries returned by the history resources.
	historyLimit = 50
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "workflow",
		Name:        "workflow",
		Description: "The selected document, its analysis and the latest answer",
		MIMEType:    "application/json",
	}, s.handleWorkflowResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "history",
		Name:        "history",
		Description: "Recent analyses and follow-up questions, newest first",
		MIMEType:    "application/json",
	}, s.handleHistoryResource)

	// Template for history filtered by kind (analysis or query).
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "history/{kind}",
		Name:        "history-by-kind",
		Description: "Recent analyses or recent questions only",
		MIMEType:    "application/json",
	}, s.handleHistoryResource)
}

// handleWorkflowResource returns the current workflow state.
func (s *Server) handleWorkflowResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	return jsonResource(req.Params.URI, toStateOutput(s.ports.Workflow.State()))
}

// handleHistoryResource returns recorded exchanges, optionally filtered by kind.
func (s *Server) handleHistoryResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	kind, ok := extractHistoryKind(req.Params.URI)
	if !ok {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	if s.ports.History == nil {
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     "[]",
			}},
		}, nil
	}

	entries, err := s.ports.History.List(ctx, historyLimit)
	if err != nil {
		return nil, fmt.Errorf("listing history: %w", err)
	}

	filtered := make([]domain.HistoryEntry, 0, len(entries))
	for i := range entries {
		if kind == "" || entries[i].Kind == kind {
			filtered = append(filtered, entries[i])
		}
	}

	return jsonResource(req.Params.URI, filtered)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractHistoryKind extracts the kind from docaudit://history or
// docaudit://history/{kind}. An empty kind means all entries.
func extractHistoryKind(uri string) (domain.HistoryKind, bool) {
	const base = uriScheme + "history"

	if uri == base {
		return "", true
	}
	if !strings.HasPrefix(uri, base+"/") {
		return "", false
	}

	kind := domain.HistoryKind(strings.TrimPrefix(uri, base+"/"))
	if !kind.IsValid() {
		return "", false
	}
	return kind, true
}
