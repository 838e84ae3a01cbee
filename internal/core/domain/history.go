package domain

import "time"

// HistoryKind distinguishes analysis records from query records.
type HistoryKind string

// History record kinds.
const (
	HistoryAnalysis HistoryKind = "analysis"
	HistoryQuery    HistoryKind = "query"
)

// IsValid returns true if the kind is recognised.
func (k HistoryKind) IsValid() bool {
	return k == HistoryAnalysis || k == HistoryQuery
}

// HistoryEntry records one completed service exchange.
type HistoryEntry struct {
	// ID is the unique identifier for the entry.
	ID string `json:"id"`

	// Kind is analysis or query.
	Kind HistoryKind `json:"kind"`

	// FileID and FileName identify the document the exchange was about.
	FileID   string `json:"file_id,omitempty"`
	FileName string `json:"file_name,omitempty"`

	// Success and Message mirror the service response.
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`

	// Question and Answer hold the query text and its answer. For analysis
	// records Answer holds the number of analysis entries.
	Question string `json:"question,omitempty"`
	Answer   string `json:"answer,omitempty"`

	// Error is the error text, if any.
	Error string `json:"error,omitempty"`

	// CreatedAt is when the exchange completed.
	CreatedAt time.Time `json:"created_at"`
}
