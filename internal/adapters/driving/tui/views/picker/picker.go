// Package picker provides the file picker view for the TUI.
package picker

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/docaudit-cli/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/docaudit-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/docaudit-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docaudit-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docaudit-cli/internal/core/ports/driving"
)

// View lists the supported documents of a directory and lets the user
// choose one, either from the list or by typing or pasting a path.
type View struct {
	styles *styles.Styles
	keymap *keymap.KeyMap
	files  driving.FileService

	list       *list.FileList
	pathInput  textinput.Model
	typingPath bool

	dir    string
	err    error
	width  int
	height int
}

// NewView creates a picker rooted at dir. An empty dir means the working
// directory.
func NewView(s *styles.Styles, km *keymap.KeyMap, files driving.FileService, dir string) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	ti := textinput.New()
	ti.Placeholder = "/path/to/document.pdf or a directory"
	ti.CharLimit = 4096
	ti.Width = 60

	v := &View{
		styles:    s,
		keymap:    km,
		files:     files,
		list:      list.NewFileList(s),
		pathInput: ti,
		width:     80,
		height:    24,
	}
	v.SetDir(dir)
	return v
}

// SetDir changes the directory without listing it. Call Init to list.
func (v *View) SetDir(dir string) {
	if dir == "" {
		dir = "."
	}
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	v.dir = dir
}

// Init lists the current directory.
func (v *View) Init() tea.Cmd {
	return v.browse(v.dir)
}

func (v *View) browse(dir string) tea.Cmd {
	files := v.files
	return func() tea.Msg {
		if files == nil {
			return messages.FilesListed{Dir: dir, Err: fmt.Errorf("file service not available")}
		}
		found, err := files.Browse(dir)
		return messages.FilesListed{Dir: dir, Files: found, Err: err}
	}
}

// open treats path as a directory first, then as a file.
func (v *View) open(path string) tea.Cmd {
	files := v.files
	return func() tea.Msg {
		if files == nil {
			return messages.ErrorOccurred{Err: fmt.Errorf("file service not available")}
		}
		if found, err := files.Browse(path); err == nil {
			dir := path
			if abs, err := filepath.Abs(path); err == nil {
				dir = abs
			}
			return messages.FilesListed{Dir: dir, Files: found}
		}
		candidate, err := files.Load(path)
		if err != nil {
			return messages.ErrorOccurred{Err: err}
		}
		return messages.FileChosen{File: *candidate}
	}
}

// Update handles messages for the picker.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.FilesListed:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.dir = msg.Dir
		v.list.SetFiles(msg.Files)
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		return v, nil

	case tea.KeyMsg:
		if v.typingPath {
			return v.updatePath(msg)
		}
		return v.handleKey(msg)
	}

	return v, nil
}

func (v *View) handleKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	// Terminals paste dropped files as text.
	if msg.Paste {
		v.startPath(string(msg.Runes))
		return v, textinput.Blink
	}

	keyStr := msg.String()
	switch {
	case keymap.Matches(keyStr, v.keymap.Select):
		selected := v.list.SelectedFile()
		if selected == nil {
			return v, nil
		}
		chosen := *selected
		return v, func() tea.Msg { return messages.FileChosen{File: chosen} }

	case keymap.Matches(keyStr, v.keymap.Parent):
		parent := filepath.Dir(v.dir)
		if parent == v.dir {
			return v, nil
		}
		return v, v.browse(parent)

	case keymap.Matches(keyStr, v.keymap.Path):
		v.startPath("/")
		return v, textinput.Blink

	case keyStr == "q":
		return v, tea.Quit
	}

	v.list, _ = v.list.Update(msg)
	return v, nil
}

func (v *View) startPath(initial string) {
	v.typingPath = true
	v.err = nil
	v.pathInput.SetValue(initial)
	v.pathInput.CursorEnd()
	v.pathInput.Focus()
}

func (v *View) updatePath(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		v.typingPath = false
		v.pathInput.Blur()
		return v, nil
	case tea.KeyEnter:
		path := strings.TrimSpace(v.pathInput.Value())
		v.typingPath = false
		v.pathInput.Blur()
		if path == "" {
			return v, nil
		}
		return v, v.open(path)
	}

	var cmd tea.Cmd
	v.pathInput, cmd = v.pathInput.Update(msg)
	return v, cmd
}

// View renders the picker.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Select a document"))
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render(v.dir))
	b.WriteString("\n\n")

	if v.typingPath {
		b.WriteString(v.styles.Subtitle.Render("Path: "))
		b.WriteString(v.styles.InputField.Render(v.pathInput.View()))
		b.WriteString("\n")
		b.WriteString(v.styles.Help.Render("[enter] open  [esc] cancel"))
		b.WriteString("\n\n")
	}

	b.WriteString(v.list.View())
	b.WriteString("\n")

	if v.err != nil {
		b.WriteString("\n")
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n")
	}

	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	// Title, directory, blank, path input and error lines.
	v.list.SetDimensions(width, max(height-10, 1))
	v.pathInput.Width = max(width-12, 20)
}

// Dir returns the directory being listed.
func (v *View) Dir() string {
	return v.dir
}

// TypingPath reports whether the path input is active.
func (v *View) TypingPath() bool {
	return v.typingPath
}

// Files returns the listed files.
func (v *View) Files() *list.FileList {
	return v.list
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
