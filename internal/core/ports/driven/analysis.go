package driven

import (
	"context"
	"io"

	"github.com/custodia-labs/docaudit-cli/internal/core/domain"
)

// PredictRequest carries one document upload.
type PredictRequest struct {
	// FileName is sent as the multipart filename.
	FileName string

	// Content is streamed as the "file" form field.
	Content io.Reader

	// OnResponse, if set, is called once when response headers arrive,
	// before the body is decoded.
	OnResponse func(statusCode int)
}

// PredictReply is a decoded /predict response.
type PredictReply struct {
	// StatusCode is the HTTP status of the response.
	StatusCode int

	// Result is the decoded body. Never nil when the error is nil.
	Result *domain.AnalysisResult
}

// OK reports whether the status code is in the 2xx range.
func (r *PredictReply) OK() bool {
	return r != nil && r.StatusCode >= 200 && r.StatusCode < 300
}

// AnalysisService is the remote document analysis service.
//
// Implementations must not retry on their own: every call maps to at most
// one request on the wire.
type AnalysisService interface {
	// Predict uploads a document for analysis.
	// A non-2xx response with a decodable body is returned as a reply,
	// not as an error. Errors wrap domain.ErrTransport, domain.ErrProtocol
	// or domain.ErrServiceUnavailable.
	Predict(ctx context.Context, req PredictRequest) (*PredictReply, error)

	// Query asks a free-text question about the last processed document.
	// The result is returned as decoded regardless of HTTP status.
	Query(ctx context.Context, query string) (*domain.QueryResult, error)

	// Health reports service readiness.
	Health(ctx context.Context) (*domain.HealthStatus, error)
}
