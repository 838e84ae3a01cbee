package domain

import "errors"

// Domain errors represent workflow failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// Workflow Errors.

	// ErrNoFile indicates an operation needs a selected file and there is none,
	// or the file it referred to has since been replaced.
	ErrNoFile = errors.New("no file selected")

	// ErrNoPayload indicates the selected file carries no raw payload to upload.
	ErrNoPayload = errors.New("file has no payload")

	// ErrSubmitInFlight indicates a submit for the current file has not finished yet.
	ErrSubmitInFlight = errors.New("submit already in progress")

	// ErrEmptyQuery indicates a query that is empty after trimming whitespace.
	ErrEmptyQuery = errors.New("query is empty")

	// ErrDocumentNotProcessed indicates the current analysis does not allow queries.
	ErrDocumentNotProcessed = errors.New("document has not been processed")

	// ErrStaleResult indicates a response arrived after its file or question
	// was superseded and was dropped.
	ErrStaleResult = errors.New("result superseded")

	// Service Errors.

	// ErrTransport indicates the request could not be sent or no response arrived.
	ErrTransport = errors.New("transport error")

	// ErrProtocol indicates a response arrived but was not valid JSON.
	ErrProtocol = errors.New("protocol error")

	// ErrServiceUnavailable indicates the Analysis Service is failing fast
	// because its circuit breaker is open.
	ErrServiceUnavailable = errors.New("analysis service unavailable")
)
