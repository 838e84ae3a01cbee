package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docaudit-cli/internal/core/domain"
)

// mockWorkflowService implements driving.WorkflowService for CLI tests.
type mockWorkflowService struct {
	mu    sync.Mutex
	state domain.WorkflowState
	seq   int

	SelectAndSubmitFunc func(ctx context.Context, c []domain.CandidateFile) (domain.WorkflowState, error)
	SubmitFunc          func(ctx context.Context, fileID string) (domain.WorkflowState, error)
	AskQueryFunc        func(ctx context.Context, text string) (domain.WorkflowState, error)

	asked       []string
	subscribers int
}

func (m *mockWorkflowService) State() domain.WorkflowState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *mockWorkflowService) Select(c []domain.CandidateFile) (domain.WorkflowState, bool) {
	if len(c) == 0 {
		return m.State(), false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	m.state = domain.WorkflowState{File: &domain.UploadedFile{
		ID: fmt.Sprintf("file-%d", m.seq), Name: c[0].Name, Size: c[0].Size,
		Status: domain.FileUploading,
	}}
	return m.state, true
}

func (m *mockWorkflowService) Submit(ctx context.Context, fileID string) (domain.WorkflowState, error) {
	if m.SubmitFunc != nil {
		return m.SubmitFunc(ctx, fileID)
	}
	return m.State(), nil
}

func (m *mockWorkflowService) SelectAndSubmit(
	ctx context.Context, c []domain.CandidateFile,
) (domain.WorkflowState, error) {
	if m.SelectAndSubmitFunc != nil {
		return m.SelectAndSubmitFunc(ctx, c)
	}
	return m.State(), nil
}

func (m *mockWorkflowService) Resubmit(context.Context) (domain.WorkflowState, error) {
	return m.State(), nil
}

func (m *mockWorkflowService) Remove() domain.WorkflowState {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = domain.WorkflowState{}
	return m.state
}

func (m *mockWorkflowService) SetPendingQuery(string) domain.WorkflowState {
	return m.State()
}

func (m *mockWorkflowService) AskQuery(ctx context.Context, text string) (domain.WorkflowState, error) {
	m.mu.Lock()
	m.asked = append(m.asked, text)
	m.mu.Unlock()
	if m.AskQueryFunc != nil {
		return m.AskQueryFunc(ctx, text)
	}
	st := m.State()
	st.Query = &domain.QueryResult{Success: true, Query: text, Response: "answer to " + text}
	return st, nil
}

func (m *mockWorkflowService) Subscribe(func(domain.WorkflowState)) func() {
	m.mu.Lock()
	m.subscribers++
	m.mu.Unlock()
	return func() {
		m.mu.Lock()
		m.subscribers--
		m.mu.Unlock()
	}
}

// mockFileService implements driving.FileService for CLI tests.
type mockFileService struct {
	err error
}

func (m *mockFileService) Load(path string) (*domain.CandidateFile, error) {
	if m.err != nil {
		return nil, m.err
	}
	name := path[strings.LastIndex(path, "/")+1:]
	return &domain.CandidateFile{Name: name, Path: path, Size: 2048, MediaType: "application/pdf"}, nil
}

func (m *mockFileService) Browse(string) ([]domain.CandidateFile, error) {
	return nil, m.err
}

// mockHealthService implements driving.HealthService for CLI tests.
type mockHealthService struct {
	status *domain.HealthStatus
	err    error
}

func (m *mockHealthService) Check(context.Context) (*domain.HealthStatus, error) {
	return m.status, m.err
}

// mockHistoryService implements driving.HistoryService for CLI tests.
type mockHistoryService struct {
	entries []domain.HistoryEntry
	err     error
	limit   int
	cleared bool
}

func (m *mockHistoryService) List(_ context.Context, limit int) ([]domain.HistoryEntry, error) {
	m.limit = limit
	return m.entries, m.err
}

func (m *mockHistoryService) Clear(context.Context) error {
	m.cleared = m.err == nil
	return m.err
}

// mockSettingsService implements driving.SettingsService for CLI tests.
type mockSettingsService struct {
	settings domain.AppSettings
	saved    *domain.AppSettings
	set      map[string]string
	err      error
}

func (m *mockSettingsService) Get() (*domain.AppSettings, error) {
	if m.err != nil {
		return nil, m.err
	}
	s := m.settings
	return &s, nil
}

func (m *mockSettingsService) Save(s *domain.AppSettings) error {
	if m.err != nil {
		return m.err
	}
	m.saved = s
	return nil
}

func (m *mockSettingsService) Set(key, value string) error {
	if key != "service.base_url" && key != "workflow.discard_stale" {
		return fmt.Errorf("%w: unknown key %q", domain.ErrInvalidInput, key)
	}
	if m.err != nil {
		return m.err
	}
	if m.set == nil {
		m.set = make(map[string]string)
	}
	m.set[key] = value
	return nil
}

func (m *mockSettingsService) Keys() []string {
	return []string{"service.base_url", "workflow.discard_stale"}
}

func (m *mockSettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

type testServices struct {
	workflow *mockWorkflowService
	files    *mockFileService
	health   *mockHealthService
	history  *mockHistoryService
	settings *mockSettingsService
}

// setupTestServices injects mocks into the package variables and removes
// them when the test ends.
func setupTestServices(t *testing.T) *testServices {
	t.Helper()
	ts := &testServices{
		workflow: &mockWorkflowService{},
		files:    &mockFileService{},
		health:   &mockHealthService{status: &domain.HealthStatus{Status: "healthy", RAGInitialized: true}},
		history:  &mockHistoryService{},
		settings: &mockSettingsService{settings: domain.DefaultAppSettings()},
	}
	SetWorkflowService(ts.workflow)
	SetFileService(ts.files)
	SetHealthService(ts.health)
	SetHistoryService(ts.history)
	SetSettingsService(ts.settings)
	t.Cleanup(clearServices)
	return ts
}

func clearServices() {
	workflowService = nil
	fileService = nil
	healthService = nil
	historyService = nil
	settingsService = nil
	dropFolderFactory = nil
}

// resetFlags restores every flag to its default. Package-level commands keep
// flag values between executions.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// executeCommand runs the root command with args and returns stdout and stderr.
func executeCommand(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(rootCmd)

	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetErr(nil)
	}()

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRootCmd_Use(t *testing.T) {
	assert.Equal(t, "docaudit", rootCmd.Use)
}

func TestRootCmd_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"analyze", "health", "history", "settings", "watch", "tui", "mcp", "version"} {
		assert.True(t, names[want], "missing command %s", want)
	}
}

func TestRootCmd_PersistentFlags(t *testing.T) {
	flags := rootCmd.PersistentFlags()
	for _, name := range []string{"verbose", "server", "config-dir", "no-history"} {
		assert.NotNil(t, flags.Lookup(name), "missing flag %s", name)
	}
	assert.Equal(t, "v", flags.Lookup("verbose").Shorthand)
}

func TestBootstrap_ReceivesFlagsAndCleansUp(t *testing.T) {
	setupTestServices(t)
	var got Options
	cleaned := false
	SetBootstrap(func(_ context.Context, opts Options) (func(), error) {
		got = opts
		return func() { cleaned = true }, nil
	})
	defer SetBootstrap(nil)

	_, _, err := executeCommand(t, "", "health", "--server", "http://10.0.0.5:5000", "--no-history", "--config-dir", "/tmp/cfg")

	require.NoError(t, err)
	assert.Equal(t, "http://10.0.0.5:5000", got.ServerURL)
	assert.True(t, got.NoHistory)
	assert.Equal(t, "/tmp/cfg", got.ConfigDir)
	assert.False(t, got.Verbose)
	assert.True(t, cleaned)
}

func TestBootstrap_ErrorStopsCommand(t *testing.T) {
	ts := setupTestServices(t)
	ts.health.err = errors.New("should not be called")
	SetBootstrap(func(context.Context, Options) (func(), error) {
		return nil, errors.New("bad config")
	})
	defer SetBootstrap(nil)

	_, _, err := executeCommand(t, "", "health")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad config")
}

func TestRunCleanup_Idempotent(t *testing.T) {
	calls := 0
	cleanup = func() { calls++ }

	runCleanup()
	runCleanup()

	assert.Equal(t, 1, calls)
}

// completedState is a processed document with two analysis entries.
func completedState() domain.WorkflowState {
	return domain.WorkflowState{
		File: &domain.UploadedFile{
			ID: "file-1", Name: "report.pdf", Size: 2048, MediaType: "application/pdf",
			Status: domain.FileCompleted, Progress: 100,
		},
		Analysis: &domain.AnalysisResult{
			Success: true,
			Message: "File processed successfully",
			Analysis: map[string]string{
				"What risks are listed?":     "Liquidity risk.",
				"Summarize the key findings": "Revenue grew.",
			},
			DocumentProcessed: true,
		},
	}
}

func failedState() domain.WorkflowState {
	return domain.WorkflowState{
		File: &domain.UploadedFile{
			ID: "file-1", Name: "report.pdf", Size: 2048,
			Status: domain.FileError, Progress: 100,
		},
		Analysis: domain.NewFailedAnalysis(domain.ErrTransport),
	}
}

var testTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
