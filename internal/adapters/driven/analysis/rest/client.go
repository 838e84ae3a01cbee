// Package rest is the HTTP adapter for the document analysis service.
//
// It speaks the service's three endpoints:
//
//	POST /predict  multipart upload, field "file"
//	POST /query    JSON {"query": "..."}
//	GET  /health   readiness probe
//
// Every call goes through a circuit breaker and is sent at most once.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/docaudit-cli/internal/core/domain"
	"github.com/custodia-labs/docaudit-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docaudit-cli/internal/logger"
	"github.com/custodia-labs/docaudit-cli/internal/resilience"
)

// Ensure Client implements the interface.
var _ driven.AnalysisService = (*Client)(nil)

// Default configuration values.
const (
	DefaultTimeout    = 120 * time.Second
	DefaultQueryRate  = 2.0
	DefaultQueryBurst = 1

	maxResponseBytes = 16 << 20
)

// Config holds configuration for the analysis client.
type Config struct {
	// BaseURL is the service root, e.g. http://127.0.0.1:5000.
	BaseURL string

	// Timeout bounds each request end to end (default: 120s).
	Timeout time.Duration

	// QueryRate is the sustained number of /query calls per second (default: 2).
	QueryRate float64

	// QueryBurst is the limiter bucket size (default: 1).
	QueryBurst int

	// Guard wraps every call. Nil disables circuit breaking.
	Guard *resilience.Guard

	// HTTPClient overrides the default client. Timeout is ignored when set.
	HTTPClient *http.Client
}

// Client talks to the analysis service over HTTP.
type Client struct {
	client  *http.Client
	baseURL string
	limiter *rate.Limiter
	guard   *resilience.Guard
}

// queryRequest is the /query request body.
type queryRequest struct {
	Query string `json:"query"`
}

// NewClient creates a new analysis client.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = domain.DefaultServiceURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.QueryRate <= 0 {
		cfg.QueryRate = DefaultQueryRate
	}
	if cfg.QueryBurst <= 0 {
		cfg.QueryBurst = DefaultQueryBurst
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &Client{
		client:  httpClient,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		limiter: rate.NewLimiter(rate.Limit(cfg.QueryRate), cfg.QueryBurst),
		guard:   cfg.Guard,
	}
}

// BaseURL returns the service root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Predict uploads a document as multipart form data.
func (c *Client) Predict(ctx context.Context, req driven.PredictRequest) (*driven.PredictReply, error) {
	defer logger.Timed("predict")()

	body, contentType, err := encodeUpload(req.FileName, req.Content)
	if err != nil {
		return nil, fmt.Errorf("encode upload: %w", err)
	}
	logger.Debug("predict: %s (%d bytes encoded)", req.FileName, body.Len())

	var reply *driven.PredictReply
	err = c.guard.Do(ctx, "predict", func(ctx context.Context) error {
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict", bytes.NewReader(body.Bytes()))
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}
		httpReq.Header.Set("Content-Type", contentType)
		httpReq.Header.Set("Accept", "application/json")

		resp, err := c.client.Do(httpReq)
		if err != nil {
			return &TransportError{Op: "predict", Err: err}
		}
		defer resp.Body.Close()

		if req.OnResponse != nil {
			req.OnResponse(resp.StatusCode)
		}

		var result domain.AnalysisResult
		if err := decode("predict", resp, &result); err != nil {
			return err
		}
		reply = &driven.PredictReply{StatusCode: resp.StatusCode, Result: &result}
		if resp.StatusCode >= http.StatusInternalServerError {
			return &statusError{code: resp.StatusCode}
		}
		return nil
	}, countsAsFailure)

	var se *statusError
	if errors.As(err, &se) && reply != nil {
		logger.Warn("predict: %v", err)
		return reply, nil
	}
	if err != nil {
		return nil, err
	}
	return reply, nil
}

// Query asks a question about the last processed document.
func (c *Client) Query(ctx context.Context, query string) (*domain.QueryResult, error) {
	defer logger.Timed("query")()

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	payload, err := json.Marshal(queryRequest{Query: query})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	var result *domain.QueryResult
	err = c.guard.Do(ctx, "query", func(ctx context.Context) error {
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/query", bytes.NewReader(payload))
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}
		httpReq.Header.Set("Content-Type", "application/json")
		httpReq.Header.Set("Accept", "application/json")

		resp, err := c.client.Do(httpReq)
		if err != nil {
			return &TransportError{Op: "query", Err: err}
		}
		defer resp.Body.Close()

		var r domain.QueryResult
		if err := decode("query", resp, &r); err != nil {
			return err
		}
		result = &r
		if resp.StatusCode >= http.StatusInternalServerError {
			return &statusError{code: resp.StatusCode}
		}
		return nil
	}, countsAsFailure)

	var se *statusError
	if errors.As(err, &se) && result != nil {
		logger.Warn("query: %v", err)
		return result, nil
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Health checks the service readiness endpoint.
func (c *Client) Health(ctx context.Context) (*domain.HealthStatus, error) {
	var status domain.HealthStatus
	err := c.guard.Do(ctx, "health", func(ctx context.Context) error {
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}
		httpReq.Header.Set("Accept", "application/json")

		resp, err := c.client.Do(httpReq)
		if err != nil {
			return &TransportError{Op: "health", Err: err}
		}
		defer resp.Body.Close()

		return decode("health", resp, &status)
	}, countsAsFailure)
	if err != nil {
		return nil, err
	}
	return &status, nil
}

// encodeUpload builds the multipart body with a single "file" part.
func encodeUpload(name string, content io.Reader) (*bytes.Buffer, string, error) {
	if content == nil {
		return nil, "", domain.ErrNoPayload
	}
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", name)
	if err != nil {
		return nil, "", err
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, "", fmt.Errorf("read %s: %w", name, err)
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

// decode reads a JSON body regardless of status code.
func decode(op string, resp *http.Response, v any) error {
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return &TransportError{Op: op, Err: fmt.Errorf("read response: %w", err)}
	}
	if err := json.Unmarshal(body, v); err != nil {
		logger.Debug("%s: undecodable body (HTTP %d): %.200s", op, resp.StatusCode, body)
		return &ProtocolError{Op: op, StatusCode: resp.StatusCode, Err: err}
	}
	return nil
}
