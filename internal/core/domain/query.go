package domain

// QueryResult is the Analysis Service's answer to a free-text question.
type QueryResult struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	Query    string `json:"query"`
	Response string `json:"response"`
	Error    string `json:"error,omitempty"`
}

const queryFailedMessage = "Failed to query document"

// NewFailedQuery synthesises a result for a question that produced no usable
// response. query is echoed as typed, before trimming.
func NewFailedQuery(query string, err error) *QueryResult {
	text := "Unknown error"
	if err != nil {
		text = err.Error()
	}
	return &QueryResult{
		Success:  false,
		Message:  queryFailedMessage,
		Query:    query,
		Response: "",
		Error:    text,
	}
}

// HasError reports whether the result carries an error text.
func (r *QueryResult) HasError() bool {
	return r != nil && r.Error != ""
}

// ExampleQuestions are offered as hints in the query panel.
var ExampleQuestions = []string{
	"What are the main financial highlights?",
	"Are there any compliance issues mentioned?",
	"What recommendations does the audit suggest?",
	"Explain the key risks identified",
	"Summarize the audit findings",
	"What are the internal control weaknesses?",
}
