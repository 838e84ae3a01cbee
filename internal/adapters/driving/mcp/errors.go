// Package mcp provides an MCP (Model Context Protocol) server adapter for docaudit.
// It lets AI assistants submit local documents for analysis and ask
// follow-up questions about them.
package mcp

import "errors"

// ErrMissingWorkflowService is returned when the workflow service is not provided.
var ErrMissingWorkflowService = errors.New("mcp: workflow service is required")

// ErrMissingFileService is returned when the file service is not provided.
var ErrMissingFileService = errors.New("mcp: file service is required")
