package domain

import "sort"

// AnalysisResult is the Analysis Service's response to a submitted file.
// Error payloads from the service decode into the same shape.
type AnalysisResult struct {
	Success           bool              `json:"success"`
	Message           string            `json:"message"`
	Filename          string            `json:"filename,omitempty"`
	Analysis          map[string]string `json:"analysis,omitempty"`
	DocumentProcessed bool              `json:"document_processed,omitempty"`
	Error             string            `json:"error,omitempty"`
}

// AnalysisEntry is one question/answer pair of an analysis.
type AnalysisEntry struct {
	Question string
	Answer   string
}

// Failure message used when no response could be obtained for an upload.
const analysisFailedMessage = "Failed to process file"

// NewFailedAnalysis synthesises a result for an upload that produced no
// usable response.
func NewFailedAnalysis(err error) *AnalysisResult {
	text := "Unknown error"
	if err != nil {
		text = err.Error()
	}
	return &AnalysisResult{
		Success: false,
		Message: analysisFailedMessage,
		Error:   text,
	}
}

// HasError reports whether the result carries an error text. Front ends
// render the error block instead of the analysis in that case.
func (r *AnalysisResult) HasError() bool {
	return r != nil && r.Error != ""
}

// CanQuery reports whether follow-up questions are allowed.
func (r *AnalysisResult) CanQuery() bool {
	return r != nil && r.DocumentProcessed
}

// Entries returns the analysis pairs sorted by question.
func (r *AnalysisResult) Entries() []AnalysisEntry {
	if r == nil || len(r.Analysis) == 0 {
		return nil
	}
	entries := make([]AnalysisEntry, 0, len(r.Analysis))
	for q, a := range r.Analysis {
		entries = append(entries, AnalysisEntry{Question: q, Answer: a})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Question < entries[j].Question
	})
	return entries
}

// Clone returns a deep copy.
func (r *AnalysisResult) Clone() *AnalysisResult {
	if r == nil {
		return nil
	}
	c := *r
	if r.Analysis != nil {
		c.Analysis = make(map[string]string, len(r.Analysis))
		for k, v := range r.Analysis {
			c.Analysis[k] = v
		}
	}
	return &c
}
