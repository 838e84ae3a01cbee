// Package input provides text input components for the TUI.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/docaudit-cli/internal/adapters/driving/tui/styles"
)

const (
	placeholderEnabled  = "Ask a question about the document..."
	placeholderDisabled = "Questions are available once the document is processed"
)

// QueryInput wraps a bubbles textinput for follow-up questions.
// While disabled it ignores input and renders muted.
type QueryInput struct {
	textinput textinput.Model
	styles    *styles.Styles
	enabled   bool
	width     int
}

// NewQueryInput creates a disabled query input.
func NewQueryInput(s *styles.Styles) *QueryInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = placeholderDisabled
	ti.CharLimit = 1000
	ti.Width = 50

	return &QueryInput{
		textinput: ti,
		styles:    s,
		width:     50,
	}
}

// Init initialises the query input.
func (q *QueryInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input messages. Disabled inputs ignore everything.
func (q *QueryInput) Update(msg tea.Msg) (*QueryInput, tea.Cmd) {
	if !q.enabled {
		return q, nil
	}
	var cmd tea.Cmd
	q.textinput, cmd = q.textinput.Update(msg)
	return q, cmd
}

// View renders the query input.
func (q *QueryInput) View() string {
	label := q.styles.Title.Render("Ask: ")
	if !q.enabled {
		label = q.styles.Muted.Render("Ask: ")
	}
	field := q.styles.InputField.Render(q.textinput.View())
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center, label, field)
}

// SetEnabled enables or disables the input. Enabling focuses it.
func (q *QueryInput) SetEnabled(enabled bool) tea.Cmd {
	if q.enabled == enabled {
		return nil
	}
	q.enabled = enabled
	if !enabled {
		q.textinput.Blur()
		q.textinput.Placeholder = placeholderDisabled
		return nil
	}
	q.textinput.Placeholder = placeholderEnabled
	return q.textinput.Focus()
}

// Enabled reports whether the input accepts questions.
func (q *QueryInput) Enabled() bool {
	return q.enabled
}

// Value returns the current input value.
func (q *QueryInput) Value() string {
	return q.textinput.Value()
}

// SetValue sets the input value and moves the cursor to the end.
func (q *QueryInput) SetValue(value string) {
	q.textinput.SetValue(value)
	q.textinput.CursorEnd()
}

// Focused returns whether the input is focused.
func (q *QueryInput) Focused() bool {
	return q.textinput.Focused()
}

// SetWidth sets the width of the input.
func (q *QueryInput) SetWidth(width int) {
	q.width = width
	// Account for label and padding
	q.textinput.Width = max(width-12, 20)
}

// Width returns the current width.
func (q *QueryInput) Width() int {
	return q.width
}

// Reset clears the input.
func (q *QueryInput) Reset() {
	q.textinput.Reset()
}
