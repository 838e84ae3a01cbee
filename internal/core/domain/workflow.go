package domain

// WorkflowState is everything a front end needs to render the document
// workflow. The controller owns the live value; callers receive copies.
type WorkflowState struct {
	// File is the selected file, nil when nothing is selected.
	File *UploadedFile `json:"file,omitempty"`

	// Analysis is the latest submit outcome for File.
	Analysis *AnalysisResult `json:"analysis,omitempty"`

	// Query is the latest answer to a follow-up question.
	Query *QueryResult `json:"query,omitempty"`

	// PendingQuery is the question text as last entered by the user.
	PendingQuery string `json:"pending_query,omitempty"`

	// Querying is true while a question is awaiting its answer.
	Querying bool `json:"querying"`

	// Submitting is true while File is being uploaded.
	Submitting bool `json:"submitting"`
}

// QueryEnabled reports whether the query panel accepts questions.
func (s WorkflowState) QueryEnabled() bool {
	return s.Analysis.CanQuery()
}

// Empty reports whether no file is selected and no results are held.
func (s WorkflowState) Empty() bool {
	return s.File == nil && s.Analysis == nil && s.Query == nil
}

// Clone returns a deep copy. Payload references are shared.
func (s WorkflowState) Clone() WorkflowState {
	c := s
	if s.File != nil {
		f := *s.File
		c.File = &f
	}
	c.Analysis = s.Analysis.Clone()
	if s.Query != nil {
		q := *s.Query
		c.Query = &q
	}
	return c
}
