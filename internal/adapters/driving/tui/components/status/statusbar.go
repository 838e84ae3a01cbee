// Package status provides status bar components for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/docaudit-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/docaudit-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docaudit-cli/internal/core/domain"
)

// State represents the workflow state for display.
type State string

const (
	StateReady     State = "ready"
	StateUploading State = "uploading"
	StateQuerying  State = "querying"
	StateCompleted State = "completed"
	StateError     State = "error"
	StateHelp      State = "help"
)

// StateFor derives the bar state from a workflow snapshot.
func StateFor(ws domain.WorkflowState) State {
	switch {
	case ws.File == nil:
		return StateReady
	case ws.Submitting || ws.File.Status == domain.FileUploading:
		return StateUploading
	case ws.Querying:
		return StateQuerying
	case ws.File.Status == domain.FileError:
		return StateError
	default:
		return StateCompleted
	}
}

// Bar displays the workflow state and keybinding hints.
type Bar struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	hints   []key.Binding
	state   State
	message string
	width   int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		hints:  km.ShortHelp(),
		state:  StateReady,
		width:  80,
	}
}

// Init initialises the status bar.
func (s *Bar) Init() tea.Cmd {
	return nil
}

// Update handles status bar messages.
func (s *Bar) Update(msg tea.Msg) (*Bar, tea.Cmd) {
	// Bar is passive, updated via Set methods
	return s, nil
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	// Width includes the style's padding, so content gets what is left.
	inner := max(s.width-s.styles.StatusBar.GetHorizontalFrameSize(), 1)
	padding := max(inner-lipgloss.Width(left)-lipgloss.Width(right), 1)
	line := lipgloss.NewStyle().MaxWidth(inner).Render(
		left + strings.Repeat(" ", padding) + right,
	)

	return s.styles.StatusBar.Width(s.width).Render(line)
}

func (s *Bar) renderLeft() string {
	switch s.state {
	case StateUploading:
		return s.styles.Warning.Render(s.withMessage("Uploading"))
	case StateQuerying:
		return s.styles.Warning.Render(s.withMessage("Asking"))
	case StateCompleted:
		return s.styles.Success.Render(s.withMessage("Analysed"))
	case StateError:
		return s.styles.Error.Render(s.withMessage("Error"))
	case StateHelp:
		return s.styles.Normal.Render("Help")
	case StateReady:
	}
	return s.styles.Muted.Render(s.withMessage("Ready"))
}

func (s *Bar) withMessage(label string) string {
	if s.message == "" {
		return label
	}
	return fmt.Sprintf("%s: %s", label, s.message)
}

func (s *Bar) renderRight() string {
	hints := make([]string, 0, len(s.hints))
	for _, b := range s.hints {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetState sets the current state.
func (s *Bar) SetState(state State) {
	s.state = state
}

// State returns the current state.
func (s *Bar) State() State {
	return s.state
}

// SetMessage sets a message shown next to the state.
func (s *Bar) SetMessage(message string) {
	s.message = message
}

// Message returns the current message.
func (s *Bar) Message() string {
	return s.message
}

// SetHints replaces the keybinding hints. Nil restores the short help.
func (s *Bar) SetHints(bindings []key.Binding) {
	if bindings == nil {
		bindings = s.keymap.ShortHelp()
	}
	s.hints = bindings
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Width returns the current width.
func (s *Bar) Width() int {
	return s.width
}

// Clear resets the status bar to default state.
func (s *Bar) Clear() {
	s.state = StateReady
	s.message = ""
	s.hints = s.keymap.ShortHelp()
}
