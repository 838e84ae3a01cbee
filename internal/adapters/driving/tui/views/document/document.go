// Package document provides the view for the selected document: upload
// progress, the analysis, and the follow-up query panel.
package document

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/custodia-labs/docaudit-cli/internal/adapters/driving/tui/components/carousel"
	"github.com/custodia-labs/docaudit-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/docaudit-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/docaudit-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docaudit-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docaudit-cli/internal/core/domain"
	"github.com/custodia-labs/docaudit-cli/internal/core/ports/driving"
)

// Lines outside the scrollable panel: title, file line, progress, blank,
// input box, example hint, spinner line.
const chromeHeight = 11

// View renders one WorkflowState and turns keys into workflow calls.
type View struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	workflow driving.WorkflowService
	ctx      context.Context

	state    domain.WorkflowState
	err      error
	progress progress.Model
	viewport viewport.Model
	spinner  spinner.Model
	input    *input.QueryInput
	carousel *carousel.Carousel

	width  int
	height int
}

// NewView creates the document view.
func NewView(s *styles.Styles, km *keymap.KeyMap, workflow driving.WorkflowService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = s.Warning

	v := &View{
		styles:   s,
		keymap:   km,
		workflow: workflow,
		ctx:      context.Background(),
		progress: progress.New(progress.WithSolidFill(string(s.Theme().Primary))),
		viewport: viewport.New(80, 10),
		spinner:  sp,
		input:    input.NewQueryInput(s),
		carousel: carousel.New(s, domain.ExampleQuestions),
	}
	v.SetDimensions(80, 24)
	return v
}

// WithContext sets the context used for service calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init starts nothing until a state arrives.
func (v *View) Init() tea.Cmd {
	return nil
}

// SetState renders a new snapshot. The query input text is left alone.
func (v *View) SetState(ws domain.WorkflowState) tea.Cmd {
	wasBusy := v.busy()
	v.state = ws

	var cmds []tea.Cmd
	enabled := ws.QueryEnabled() && !ws.Querying
	cmds = append(cmds, v.input.SetEnabled(enabled))
	if ws.QueryEnabled() {
		cmds = append(cmds, v.carousel.Start())
	} else {
		v.carousel.Pause()
	}
	if v.busy() && !wasBusy {
		cmds = append(cmds, v.spinner.Tick)
	}

	v.refreshContent()
	return tea.Batch(cmds...)
}

func (v *View) busy() bool {
	return v.state.Submitting || v.state.Querying
}

// Update handles messages for the document view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKey(msg)

	case messages.SubmitFinished:
		v.err = ignorable(msg.Err)
		return v, v.SetState(msg.State)

	case messages.QueryFinished:
		v.err = ignorable(msg.Err)
		return v, v.SetState(msg.State)

	case messages.ExampleTick:
		var cmd tea.Cmd
		v.carousel, cmd = v.carousel.Update(msg)
		return v, cmd

	case spinner.TickMsg:
		if !v.busy() {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd

	case messages.ErrorOccurred:
		v.err = msg.Err
		return v, nil
	}

	return v, nil
}

// ignorable drops errors that only mean "nothing to do".
func ignorable(err error) error {
	if errors.Is(err, domain.ErrEmptyQuery) || errors.Is(err, domain.ErrStaleResult) {
		return nil
	}
	return err
}

func (v *View) handleKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	keyStr := msg.String()
	switch {
	case keymap.Matches(keyStr, v.keymap.Back):
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewPicker} }

	case keymap.Matches(keyStr, v.keymap.Resubmit):
		return v, v.resubmit()

	case keymap.Matches(keyStr, v.keymap.Remove):
		return v, v.remove()

	case keymap.Matches(keyStr, v.keymap.Ask):
		return v, v.ask()

	case keymap.Matches(keyStr, v.keymap.PrevExample):
		if v.state.QueryEnabled() {
			v.carousel.Prev()
		}
		return v, nil

	case keymap.Matches(keyStr, v.keymap.NextExample):
		if v.state.QueryEnabled() {
			v.carousel.Next()
		}
		return v, nil

	case keymap.Matches(keyStr, v.keymap.UseExample):
		if v.input.Enabled() {
			v.input.SetValue(v.carousel.Current())
			return v, v.syncPending()
		}
		return v, nil

	case keyStr == "up", keyStr == "down", keyStr == "pgup", keyStr == "pgdown":
		var cmd tea.Cmd
		v.viewport, cmd = v.viewport.Update(msg)
		return v, cmd
	}

	before := v.input.Value()
	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	if v.input.Value() != before {
		return v, tea.Batch(cmd, v.syncPending())
	}
	return v, cmd
}

func (v *View) syncPending() tea.Cmd {
	if v.workflow == nil {
		return nil
	}
	v.workflow.SetPendingQuery(v.input.Value())
	return nil
}

func (v *View) ask() tea.Cmd {
	if v.workflow == nil || !v.input.Enabled() {
		return nil
	}
	text := v.input.Value()
	if strings.TrimSpace(text) == "" {
		return nil
	}
	workflow, ctx := v.workflow, v.ctx
	return func() tea.Msg {
		state, err := workflow.AskQuery(ctx, text)
		return messages.QueryFinished{State: state, Err: err}
	}
}

func (v *View) resubmit() tea.Cmd {
	if v.workflow == nil || v.state.File == nil {
		return nil
	}
	workflow, ctx := v.workflow, v.ctx
	return func() tea.Msg {
		state, err := workflow.Resubmit(ctx)
		return messages.SubmitFinished{State: state, Err: err}
	}
}

func (v *View) remove() tea.Cmd {
	if v.workflow == nil {
		return nil
	}
	workflow := v.workflow
	return func() tea.Msg {
		return messages.FileRemoved{State: workflow.Remove()}
	}
}

// Reset clears the view for a new document.
func (v *View) Reset() {
	v.err = nil
	v.input.Reset()
	v.viewport.GotoTop()
}

func (v *View) refreshContent() {
	v.viewport.SetContent(v.renderPanel())
}

// renderPanel renders the analysis followed by the latest answer.
func (v *View) renderPanel() string {
	width := max(v.width-4, 20)
	wrap := lipgloss.NewStyle().Width(width)
	var b strings.Builder

	if a := v.state.Analysis; a != nil {
		if a.HasError() {
			b.WriteString(v.styles.Error.Render(a.Message))
			b.WriteString("\n")
			b.WriteString(v.styles.Error.Render(wrap.Render(a.Error)))
			b.WriteString("\n")
		} else {
			if a.Message != "" {
				b.WriteString(v.styles.Success.Render(a.Message))
				b.WriteString("\n\n")
			}
			for _, e := range a.Entries() {
				b.WriteString(v.styles.Question.Render(wrap.Render(e.Question)))
				b.WriteString("\n")
				b.WriteString(v.styles.Answer.Render(wrap.Render(e.Answer)))
				b.WriteString("\n\n")
			}
		}
	} else if v.state.File != nil {
		b.WriteString(v.styles.Muted.Render("Waiting for the analysis..."))
		b.WriteString("\n")
	}

	if q := v.state.Query; q != nil {
		b.WriteString("\n")
		b.WriteString(v.styles.Subtitle.Render("Q: " + strings.TrimSpace(q.Query)))
		b.WriteString("\n")
		if q.HasError() {
			b.WriteString(v.styles.Error.Render(q.Message + ": " + q.Error))
		} else {
			b.WriteString(v.styles.Answer.Render(wrap.Render(q.Response)))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// View renders the document view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Document"))
	b.WriteString("\n")
	b.WriteString(v.renderFileLine())
	b.WriteString("\n")
	if f := v.state.File; f != nil && !f.Status.IsTerminal() {
		b.WriteString(v.progress.ViewAs(float64(f.Progress) / 100))
	}
	b.WriteString("\n\n")

	b.WriteString(v.viewport.View())
	b.WriteString("\n")

	if v.state.Analysis != nil && !v.state.QueryEnabled() && !v.state.Analysis.HasError() {
		b.WriteString(v.styles.Muted.Render("Follow-up questions are unavailable for this document."))
		b.WriteString("\n")
	}
	b.WriteString(v.input.View())
	b.WriteString("\n")
	if v.state.QueryEnabled() {
		b.WriteString(v.carousel.View())
	}
	b.WriteString("\n")

	switch {
	case v.state.Querying:
		b.WriteString(v.spinner.View() + " " + v.styles.Muted.Render("Asking..."))
	case v.state.Submitting:
		b.WriteString(v.spinner.View() + " " + v.styles.Muted.Render("Analysing..."))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
	}

	return b.String()
}

func (v *View) renderFileLine() string {
	f := v.state.File
	if f == nil {
		return v.styles.Muted.Render("No document selected")
	}

	var mark string
	switch f.Status {
	case domain.FileCompleted:
		mark = v.styles.Success.Render("✓")
	case domain.FileError:
		mark = v.styles.Error.Render("✗")
	default:
		mark = v.styles.Warning.Render(fmt.Sprintf("%d%%", f.Progress))
	}

	details := humanize.Bytes(uint64(max(f.Size, 0)))
	if f.MediaType != "" {
		details += ", " + f.MediaType
	}
	return v.styles.Border.Render(fmt.Sprintf(" %s  %s  %s ",
		mark, v.styles.Normal.Render(f.Name), v.styles.Muted.Render(details)))
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.progress.Width = max(width-4, 10)
	v.viewport.Width = width
	v.viewport.Height = max(height-chromeHeight, 3)
	v.input.SetWidth(width)
	v.refreshContent()
}

// State returns the rendered snapshot.
func (v *View) State() domain.WorkflowState {
	return v.state
}

// Input returns the query input.
func (v *View) Input() *input.QueryInput {
	return v.input
}

// Carousel returns the example question carousel.
func (v *View) Carousel() *carousel.Carousel {
	return v.carousel
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
