package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/docaudit-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/docaudit-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/docaudit-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docaudit-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docaudit-cli/internal/adapters/driving/tui/views/document"
	"github.com/custodia-labs/docaudit-cli/internal/adapters/driving/tui/views/picker"
	"github.com/custodia-labs/docaudit-cli/internal/core/domain"
)

// updateBuffer bounds queued workflow snapshots. Older snapshots are dropped
// when the UI falls behind; the final state always arrives with the
// SubmitFinished or QueryFinished message.
const updateBuffer = 16

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	styles *styles.Styles
	keymap *keymap.KeyMap

	pickerView   *picker.View
	documentView *document.View
	statusBar    *status.Bar

	// currentView tracks which view is active; helpReturn is where help goes back to.
	currentView messages.ViewType
	helpReturn  messages.ViewType

	// updates receives workflow snapshots from the subscription.
	updates     chan domain.WorkflowState
	unsubscribe func()

	health    *domain.HealthStatus
	healthErr error

	// err holds the last error that occurred.
	err error

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
// Call Close when the program has exited.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	a := &App{
		ports:        ports,
		ctx:          context.Background(),
		styles:       s,
		keymap:       km,
		pickerView:   picker.NewView(s, km, ports.Files, ""),
		documentView: document.NewView(s, km, ports.Workflow),
		statusBar:    status.NewBar(s, km),
		currentView:  messages.ViewPicker,
		updates:      make(chan domain.WorkflowState, updateBuffer),
	}
	a.statusBar.SetHints(km.PickerHelp())

	updates := a.updates
	a.unsubscribe = ports.Workflow.Subscribe(func(ws domain.WorkflowState) {
		select {
		case updates <- ws:
		default:
		}
	})
	return a, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.documentView.WithContext(ctx)
	return a
}

// WithStartDir sets the directory the picker opens in.
func (a *App) WithStartDir(dir string) *App {
	a.pickerView.SetDir(dir)
	return a
}

// Close stops listening to workflow updates.
func (a *App) Close() {
	if a.unsubscribe != nil {
		a.unsubscribe()
		a.unsubscribe = nil
	}
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.SetWindowTitle("docaudit"),
		a.pickerView.Init(),
		a.waitForUpdate(),
		a.checkHealth(),
	}

	// Resume a document selected elsewhere, e.g. by a previous command.
	if ws := a.ports.Workflow.State(); ws.File != nil {
		a.currentView = messages.ViewDocument
		cmds = append(cmds, a.applyState(ws))
	}
	return tea.Batch(cmds...)
}

func (a *App) waitForUpdate() tea.Cmd {
	updates := a.updates
	return func() tea.Msg {
		ws, ok := <-updates
		if !ok {
			return nil
		}
		return messages.WorkflowUpdated{State: ws}
	}
}

func (a *App) checkHealth() tea.Cmd {
	if a.ports.Health == nil {
		return nil
	}
	health, ctx := a.ports.Health, a.ctx
	return func() tea.Msg {
		st, err := health.Check(ctx)
		return messages.HealthChecked{Status: st, Err: err}
	}
}

func (a *App) submit(file domain.CandidateFile) tea.Cmd {
	workflow, ctx := a.ports.Workflow, a.ctx
	return func() tea.Msg {
		state, err := workflow.SelectAndSubmit(ctx, []domain.CandidateFile{file})
		return messages.SubmitFinished{State: state, Err: err}
	}
}

// visibleErr hides results that a newer action superseded; the newer
// action reports its own outcome.
func visibleErr(err error) error {
	if errors.Is(err, domain.ErrStaleResult) {
		return nil
	}
	return err
}

// applyState pushes a snapshot to the document view and the status bar.
func (a *App) applyState(ws domain.WorkflowState) tea.Cmd {
	a.statusBar.SetState(status.StateFor(ws))
	msg := ""
	if ws.File != nil {
		msg = ws.File.Name
		if ws.Analysis.HasError() {
			msg = ws.Analysis.Error
		}
	}
	a.statusBar.SetMessage(msg)
	return a.documentView.SetState(ws)
}

func (a *App) showView(v messages.ViewType) {
	a.currentView = v
	switch v {
	case messages.ViewPicker:
		a.statusBar.SetHints(a.keymap.PickerHelp())
	case messages.ViewDocument:
		a.statusBar.SetHints(a.keymap.DocumentHelp())
	case messages.ViewHelp:
		a.statusBar.SetHints(a.keymap.ShortHelp())
	}
}

// Update implements tea.Model.
// It handles messages and updates the model state.
//
//nolint:gocognit,gocyclo // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		// Global quit with ctrl+c
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		return a.handleKey(msg)

	case messages.FileChosen:
		a.err = nil
		a.documentView.Reset()
		a.showView(messages.ViewDocument)
		return a, a.submit(msg.File)

	case messages.WorkflowUpdated:
		return a, tea.Batch(a.applyState(msg.State), a.waitForUpdate())

	case messages.SubmitFinished:
		a.err = visibleErr(msg.Err)
		a.applyState(msg.State)
		a.documentView, cmd = a.documentView.Update(msg)
		return a, cmd

	case messages.QueryFinished:
		a.err = visibleErr(msg.Err)
		a.applyState(msg.State)
		a.documentView, cmd = a.documentView.Update(msg)
		return a, cmd

	case messages.FileRemoved:
		a.applyState(msg.State)
		a.documentView.Reset()
		a.showView(messages.ViewPicker)
		return a, a.pickerView.Init()

	case messages.ViewChanged:
		a.showView(msg.View)
		return a, nil

	case messages.HealthChecked:
		a.health = msg.Status
		a.healthErr = msg.Err
		return a, nil

	case messages.FilesListed:
		a.pickerView, cmd = a.pickerView.Update(msg)
		return a, cmd

	case messages.ErrorOccurred:
		a.err = msg.Err
		a.statusBar.SetState(status.StateError)
		a.statusBar.SetMessage(msg.Err.Error())
		if a.currentView == messages.ViewDocument {
			a.documentView, cmd = a.documentView.Update(msg)
		} else {
			a.pickerView, cmd = a.pickerView.Update(msg)
		}
		return a, cmd

	case messages.Quit:
		return a, tea.Quit
	}

	// Timers belong to the document view even while it is hidden.
	a.documentView, cmd = a.documentView.Update(msg)
	return a, cmd
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	keyStr := msg.String()

	switch a.currentView {
	case messages.ViewHelp:
		if keymap.Matches(keyStr, a.keymap.Back) || keymap.Matches(keyStr, a.keymap.Help) {
			a.showView(a.helpReturn)
		}
		return a, nil

	case messages.ViewPicker:
		if !a.pickerView.TypingPath() {
			if keymap.Matches(keyStr, a.keymap.Help) {
				a.helpReturn = messages.ViewPicker
				a.showView(messages.ViewHelp)
				return a, nil
			}
			// Return to a document that is still selected.
			if keymap.Matches(keyStr, a.keymap.NextExample) && a.documentView.State().File != nil {
				a.showView(messages.ViewDocument)
				return a, nil
			}
		}
		a.pickerView, cmd = a.pickerView.Update(msg)
		return a, cmd

	case messages.ViewDocument:
		a.documentView, cmd = a.documentView.Update(msg)
		return a, cmd
	}
	return a, nil
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var body string
	switch a.currentView {
	case messages.ViewDocument:
		body = a.documentView.View()
	case messages.ViewHelp:
		body = a.viewHelp()
	default:
		body = a.pickerView.View()
	}

	var b strings.Builder
	b.WriteString(a.renderHeader())
	b.WriteString("\n\n")
	b.WriteString(body)

	// Pin the status bar to the last line.
	used := strings.Count(b.String(), "\n") + 1
	if pad := a.height - used - 1; pad > 0 {
		b.WriteString(strings.Repeat("\n", pad))
	}
	b.WriteString("\n")
	b.WriteString(a.statusBar.View())
	return b.String()
}

func (a *App) renderHeader() string {
	title := a.styles.Title.Render("docaudit")
	var svc string
	switch {
	case a.healthErr != nil:
		svc = a.styles.Error.Render("● service unreachable")
	case a.health == nil:
		svc = a.styles.Muted.Render("● checking service...")
	case a.health.Healthy():
		svc = a.styles.Success.Render("● service ready")
	default:
		svc = a.styles.Warning.Render("● service " + a.health.Status)
	}
	return title + "  " + svc
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return `Help

Picker:
  j/k, ↑/↓    Navigate documents
  enter       Analyse the selected document
  /           Type a path (file or directory)
  backspace   Parent directory
  →           Back to the current document
  q           Quit

Document:
  (type)      Compose a question
  enter       Ask
  ←/→         Browse example questions
  tab         Copy the example into the question
  ↑/↓, PgUp   Scroll the analysis
  ctrl+r      Resubmit the document
  ctrl+x      Remove the document
  esc         Back to the picker

Anywhere:
  ctrl+c      Quit

[esc] back`
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// Health returns the last health check result.
func (a *App) Health() *domain.HealthStatus {
	return a.health
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	// Header and status bar.
	body := max(height-4, 1)
	a.pickerView.SetDimensions(width, body)
	a.documentView.SetDimensions(width, body)
	a.statusBar.SetWidth(width)
}
