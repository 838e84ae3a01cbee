package rest

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/custodia-labs/docaudit-cli/internal/core/domain"
)

// TransportError means no usable HTTP response was received.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap exposes both domain.ErrTransport and the underlying cause.
func (e *TransportError) Unwrap() []error {
	return []error{domain.ErrTransport, e.Err}
}

// ProtocolError means a response arrived but its body could not be decoded.
type ProtocolError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("%s: invalid response (HTTP %d): %v", e.Op, e.StatusCode, e.Err)
}

// Unwrap exposes both domain.ErrProtocol and the underlying cause.
func (e *ProtocolError) Unwrap() []error {
	return []error{domain.ErrProtocol, e.Err}
}

// statusError marks a decoded 5xx response so the breaker counts it.
// It never leaves the client.
type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("server error: %d %s", e.code, http.StatusText(e.code))
}

// countsAsFailure decides which errors trip the breaker. Client-side
// problems (4xx bodies, undecodable 4xx) do not.
func countsAsFailure(err error) bool {
	var se *statusError
	if errors.As(err, &se) {
		return true
	}
	var pe *ProtocolError
	if errors.As(err, &pe) {
		return pe.StatusCode >= http.StatusInternalServerError
	}
	return errors.Is(err, domain.ErrTransport)
}
