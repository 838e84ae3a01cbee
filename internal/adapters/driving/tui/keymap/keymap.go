// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// Help toggles the help view.
	Help key.Binding

	// Back returns to the previous view.
	Back key.Binding

	// Up and Down move through the file list or scroll the analysis.
	Up   key.Binding
	Down key.Binding

	// Select picks the highlighted file.
	Select key.Binding

	// Parent moves the picker to the parent directory.
	Parent key.Binding

	// Path opens the path input in the picker.
	Path key.Binding

	// Ask sends the typed question.
	Ask key.Binding

	// Resubmit uploads the current file again.
	Resubmit key.Binding

	// Remove discards the current file.
	Remove key.Binding

	// PrevExample and NextExample browse the example questions.
	PrevExample key.Binding
	NextExample key.Binding

	// UseExample copies the shown example into the query input.
	UseExample key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "analyse"),
		),
		Parent: key.NewBinding(
			key.WithKeys("backspace"),
			key.WithHelp("backspace", "parent dir"),
		),
		Path: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "type path"),
		),
		Ask: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "ask"),
		),
		Resubmit: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "resubmit"),
		),
		Remove: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("ctrl+x", "remove"),
		),
		PrevExample: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "prev example"),
		),
		NextExample: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "next example"),
		),
		UseExample: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "use example"),
		),
	}
}

// ShortHelp returns the hints shown when nothing more specific applies.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.Help}
}

// PickerHelp returns the hints for the file picker.
func (k *KeyMap) PickerHelp() []key.Binding {
	return []key.Binding{k.Select, k.Path, k.Parent, k.Quit}
}

// DocumentHelp returns the hints for the document view.
func (k *KeyMap) DocumentHelp() []key.Binding {
	return []key.Binding{k.Ask, k.UseExample, k.Resubmit, k.Remove, k.Back}
}

// FullHelp returns the full list of keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select, k.Parent, k.Path},
		{k.Ask, k.Resubmit, k.Remove, k.PrevExample, k.NextExample, k.UseExample},
		{k.Back, k.Help, k.Quit},
	}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
