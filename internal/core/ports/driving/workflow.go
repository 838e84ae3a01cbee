package driving

import (
	"context"

	"github.com/custodia-labs/docaudit-cli/internal/core/domain"
)

// WorkflowService drives the single-document workflow:
// select a file, submit it for analysis, query it, remove it.
//
// Every method returns a snapshot of the state after the call. Snapshots
// are copies and may be kept by the caller.
type WorkflowService interface {
	// State returns the current workflow state.
	State() domain.WorkflowState

	// Select replaces the current file with the first candidate and clears
	// any previous analysis and query. Returns false if candidates is empty,
	// in which case nothing changes.
	Select(candidates []domain.CandidateFile) (domain.WorkflowState, bool)

	// Submit uploads the current file if its ID matches fileID.
	// Transport and protocol failures are folded into a failed
	// AnalysisResult rather than returned.
	Submit(ctx context.Context, fileID string) (domain.WorkflowState, error)

	// SelectAndSubmit selects the first candidate and submits it at once.
	SelectAndSubmit(ctx context.Context, candidates []domain.CandidateFile) (domain.WorkflowState, error)

	// Resubmit uploads the current file again.
	// Returns domain.ErrNoFile or domain.ErrSubmitInFlight when not allowed.
	Resubmit(ctx context.Context) (domain.WorkflowState, error)

	// Remove clears the workflow back to its initial state.
	Remove() domain.WorkflowState

	// SetPendingQuery updates the text of the query being composed.
	SetPendingQuery(text string) domain.WorkflowState

	// AskQuery sends a question about the processed document.
	// Returns domain.ErrEmptyQuery or domain.ErrDocumentNotProcessed when
	// the query cannot be sent; the state is unchanged in that case.
	AskQuery(ctx context.Context, text string) (domain.WorkflowState, error)

	// Subscribe registers fn to be called with a snapshot after every change.
	// The returned function removes the subscription.
	Subscribe(fn func(domain.WorkflowState)) (unsubscribe func())
}
