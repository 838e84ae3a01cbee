package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/docaudit-cli/internal/core/domain"
	"github.com/custodia-labs/docaudit-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docaudit-cli/internal/core/ports/driving"
	"github.com/custodia-labs/docaudit-cli/internal/logger"
)

// Ensure WorkflowService implements the interface.
var _ driving.WorkflowService = (*WorkflowService)(nil)

// WorkflowOption configures a WorkflowService.
type WorkflowOption func(*WorkflowService)

// WithHistory records every applied analysis and query in store.
func WithHistory(store driven.HistoryStore) WorkflowOption {
	return func(s *WorkflowService) {
		s.history = store
	}
}

// WithDiscardStale controls what happens to responses that arrive after the
// file or query that triggered them has been superseded. When true (the
// default) they are dropped. When false they are applied to whatever state
// exists, but file status only changes if the file is still current.
func WithDiscardStale(discard bool) WorkflowOption {
	return func(s *WorkflowService) {
		s.discardStale = discard
	}
}

// WithIDGenerator overrides how file and history identifiers are generated.
func WithIDGenerator(fn func() string) WorkflowOption {
	return func(s *WorkflowService) {
		s.newID = fn
	}
}

// WorkflowService owns the single-document workflow state.
type WorkflowService struct {
	analysis     driven.AnalysisService
	history      driven.HistoryStore
	discardStale bool
	newID        func() string
	now          func() time.Time

	mu       sync.Mutex
	state    domain.WorkflowState
	queryGen uint64

	subMu   sync.Mutex
	subs    map[int]func(domain.WorkflowState)
	nextSub int
}

// NewWorkflowService creates a workflow controller backed by the given
// analysis service.
func NewWorkflowService(analysis driven.AnalysisService, opts ...WorkflowOption) *WorkflowService {
	s := &WorkflowService{
		analysis:     analysis,
		discardStale: true,
		newID:        uuid.NewString,
		now:          time.Now,
		subs:         make(map[int]func(domain.WorkflowState)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the current workflow state.
func (s *WorkflowService) State() domain.WorkflowState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Select accepts the first candidate and discards everything else.
func (s *WorkflowService) Select(candidates []domain.CandidateFile) (domain.WorkflowState, bool) {
	if len(candidates) == 0 {
		return s.State(), false
	}
	c := candidates[0]
	if len(candidates) > 1 {
		logger.Debug("ignoring %d extra files after %s", len(candidates)-1, c.Name)
	}

	s.mu.Lock()
	s.state = domain.WorkflowState{
		File: &domain.UploadedFile{
			ID:        s.newID(),
			Name:      c.Name,
			Size:      c.Size,
			MediaType: c.MediaType,
			Status:    domain.FileUploading,
			Progress:  domain.ProgressSelected,
			Payload:   c.Payload,
		},
	}
	s.queryGen++
	snap := s.state.Clone()
	s.mu.Unlock()

	logger.Info("selected %s (%s)", c.Name, snap.File.ID)
	s.notify(snap)
	return snap, true
}

// SelectAndSubmit selects the first candidate and uploads it.
func (s *WorkflowService) SelectAndSubmit(
	ctx context.Context,
	candidates []domain.CandidateFile,
) (domain.WorkflowState, error) {
	snap, ok := s.Select(candidates)
	if !ok {
		return snap, domain.ErrNoFile
	}
	return s.Submit(ctx, snap.File.ID)
}

// Resubmit uploads the current file again.
func (s *WorkflowService) Resubmit(ctx context.Context) (domain.WorkflowState, error) {
	s.mu.Lock()
	if s.state.File == nil {
		s.mu.Unlock()
		return s.State(), domain.ErrNoFile
	}
	if s.state.Submitting {
		s.mu.Unlock()
		return s.State(), domain.ErrSubmitInFlight
	}
	id := s.state.File.ID
	s.mu.Unlock()

	return s.Submit(ctx, id)
}

// Submit uploads the current file. Failures end up in the AnalysisResult.
// When the file is replaced before the response arrives and stale results
// are discarded, the returned error wraps domain.ErrStaleResult.
func (s *WorkflowService) Submit(ctx context.Context, fileID string) (domain.WorkflowState, error) {
	s.mu.Lock()
	file := s.state.File
	switch {
	case file == nil || file.ID != fileID:
		s.mu.Unlock()
		return s.State(), fmt.Errorf("%w: %s", domain.ErrNoFile, fileID)
	case !file.HasPayload():
		s.mu.Unlock()
		return s.State(), domain.ErrNoPayload
	case s.state.Submitting:
		s.mu.Unlock()
		return s.State(), domain.ErrSubmitInFlight
	}
	file.Status = domain.FileUploading
	file.Progress = domain.ProgressSending
	s.state.Submitting = true
	name := file.Name
	payload := file.Payload
	snap := s.state.Clone()
	s.mu.Unlock()
	s.notify(snap)

	logger.Section("Submit")
	logger.Info("uploading %s", name)

	ok, result := s.predict(ctx, fileID, name, payload)
	return s.applyAnalysis(ctx, fileID, name, ok, result)
}

// predict performs the upload and folds every failure into a result.
func (s *WorkflowService) predict(
	ctx context.Context,
	fileID, name string,
	payload domain.Payload,
) (bool, *domain.AnalysisResult) {
	content, err := payload.Open()
	if err != nil {
		logger.Warn("open %s: %v", name, err)
		return false, domain.NewFailedAnalysis(err)
	}
	defer content.Close()

	reply, err := s.analysis.Predict(ctx, driven.PredictRequest{
		FileName: name,
		Content:  content,
		OnResponse: func(status int) {
			logger.Debug("predict responded with %d", status)
			s.markResponding(fileID)
		},
	})
	if err != nil {
		logger.Warn("predict %s: %v", name, err)
		return false, domain.NewFailedAnalysis(err)
	}
	if reply == nil || reply.Result == nil {
		return false, domain.NewFailedAnalysis(domain.ErrProtocol)
	}
	return reply.OK(), reply.Result
}

func (s *WorkflowService) markResponding(fileID string) {
	s.mu.Lock()
	f := s.state.File
	if f == nil || f.ID != fileID || f.Status.IsTerminal() {
		s.mu.Unlock()
		return
	}
	f.Progress = domain.ProgressResponding
	snap := s.state.Clone()
	s.mu.Unlock()
	s.notify(snap)
}

func (s *WorkflowService) applyAnalysis(
	ctx context.Context,
	fileID, name string,
	ok bool,
	result *domain.AnalysisResult,
) (domain.WorkflowState, error) {
	s.mu.Lock()
	current := s.state.File != nil && s.state.File.ID == fileID
	if !current && s.discardStale {
		snap := s.state.Clone()
		s.mu.Unlock()
		logger.Debug("discarding stale analysis for %s", fileID)
		return snap, fmt.Errorf("%w: analysis of %s", domain.ErrStaleResult, name)
	}

	if current {
		f := s.state.File
		f.Progress = domain.ProgressDone
		if ok {
			f.Status = domain.FileCompleted
		} else {
			f.Status = domain.FileError
		}
		s.state.Submitting = false
	}
	s.state.Analysis = result
	s.state.Query = nil
	s.state.Querying = false
	s.queryGen++
	snap := s.state.Clone()
	s.mu.Unlock()

	logger.Info("analysis for %s: success=%t processed=%t", name, result.Success, result.DocumentProcessed)
	s.notify(snap)
	entry := &domain.HistoryEntry{
		Kind:     domain.HistoryAnalysis,
		FileID:   fileID,
		FileName: name,
		Success:  ok && result.Success,
		Message:  result.Message,
		Error:    result.Error,
	}
	if n := len(result.Analysis); n > 0 {
		entry.Answer = strconv.Itoa(n)
	}
	s.record(ctx, entry)
	return snap, nil
}

// Remove clears the workflow back to its initial state.
func (s *WorkflowService) Remove() domain.WorkflowState {
	s.mu.Lock()
	if s.state.File != nil {
		logger.Info("removed %s", s.state.File.Name)
	}
	s.state = domain.WorkflowState{}
	s.queryGen++
	snap := s.state.Clone()
	s.mu.Unlock()

	s.notify(snap)
	return snap
}

// SetPendingQuery updates the query being composed.
func (s *WorkflowService) SetPendingQuery(text string) domain.WorkflowState {
	s.mu.Lock()
	s.state.PendingQuery = text
	snap := s.state.Clone()
	s.mu.Unlock()

	s.notify(snap)
	return snap
}

// AskQuery sends a question about the processed document. An answer that a
// newer question or selection superseded is dropped and the returned error
// wraps domain.ErrStaleResult.
func (s *WorkflowService) AskQuery(ctx context.Context, text string) (domain.WorkflowState, error) {
	trimmed := strings.TrimSpace(text)

	s.mu.Lock()
	if trimmed == "" {
		s.mu.Unlock()
		return s.State(), domain.ErrEmptyQuery
	}
	if !s.state.QueryEnabled() {
		s.mu.Unlock()
		return s.State(), domain.ErrDocumentNotProcessed
	}
	s.queryGen++
	gen := s.queryGen
	var fileID, fileName string
	if s.state.File != nil {
		fileID, fileName = s.state.File.ID, s.state.File.Name
	}
	s.state.PendingQuery = text
	s.state.Query = nil
	s.state.Querying = true
	snap := s.state.Clone()
	s.mu.Unlock()
	s.notify(snap)

	logger.Section("Query")
	logger.Info("asking %q", trimmed)

	result, err := s.analysis.Query(ctx, trimmed)
	switch {
	case err != nil:
		logger.Warn("query: %v", err)
		result = domain.NewFailedQuery(text, err)
	case result == nil:
		result = domain.NewFailedQuery(text, domain.ErrProtocol)
	}

	s.mu.Lock()
	current := gen == s.queryGen
	if !current && s.discardStale {
		snap = s.state.Clone()
		s.mu.Unlock()
		logger.Debug("discarding stale query result for %q", trimmed)
		return snap, fmt.Errorf("%w: query %q", domain.ErrStaleResult, trimmed)
	}
	s.state.Query = result
	s.state.Querying = false
	snap = s.state.Clone()
	s.mu.Unlock()

	s.notify(snap)
	s.record(ctx, &domain.HistoryEntry{
		Kind:     domain.HistoryQuery,
		FileID:   fileID,
		FileName: fileName,
		Success:  result.Success,
		Message:  result.Message,
		Question: trimmed,
		Answer:   result.Response,
		Error:    result.Error,
	})
	return snap, nil
}

// Subscribe registers fn to receive a snapshot after every change.
func (s *WorkflowService) Subscribe(fn func(domain.WorkflowState)) func() {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

func (s *WorkflowService) notify(snap domain.WorkflowState) {
	s.subMu.Lock()
	fns := make([]func(domain.WorkflowState), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(snap.Clone())
	}
}

// record appends a history entry. Failures are logged, never returned.
func (s *WorkflowService) record(ctx context.Context, entry *domain.HistoryEntry) {
	if s.history == nil {
		return
	}
	entry.ID = s.newID()
	entry.CreatedAt = s.now().UTC()
	if err := s.history.Append(context.WithoutCancel(ctx), entry); err != nil {
		logger.Warn("record %s history: %v", entry.Kind, err)
	}
}
