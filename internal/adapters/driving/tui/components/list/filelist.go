// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/custodia-labs/docaudit-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docaudit-cli/internal/core/domain"
)

// FileList displays candidate documents in a navigable list.
type FileList struct {
	files    []domain.CandidateFile
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewFileList creates a new file list component.
func NewFileList(s *styles.Styles) *FileList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &FileList{
		styles: s,
		width:  80,
		height: 10,
	}
}

// Init initialises the file list.
func (l *FileList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation keys.
func (l *FileList) Update(msg tea.Msg) (*FileList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			l.MoveUp()
		case "down", "j":
			l.MoveDown()
		case "home", "g":
			l.selected = 0
		case "end", "G":
			if len(l.files) > 0 {
				l.selected = len(l.files) - 1
			}
		}
	}
	return l, nil
}

// View renders the visible window of the list around the selection.
func (l *FileList) View() string {
	if len(l.files) == 0 {
		return l.styles.Muted.Render("No supported documents (.pdf, .docx, .txt) here")
	}

	visible := l.height
	if visible < 1 {
		visible = 1
	}
	start := 0
	if l.selected >= visible {
		start = l.selected - visible + 1
	}
	end := min(start+visible, len(l.files))

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		lines = append(lines, l.renderFile(i, &l.files[i]))
	}
	return strings.Join(lines, "\n")
}

func (l *FileList) renderFile(index int, f *domain.CandidateFile) string {
	indicator := "  "
	if index == l.selected {
		indicator = "> "
	}

	size := humanize.Bytes(uint64(max(f.Size, 0)))
	maxNameLen := max(l.width-16, 10)
	name := truncate(f.Name, maxNameLen)

	if index == l.selected {
		return l.styles.Selected.Render(fmt.Sprintf("%s%-*s  %8s", indicator, maxNameLen, name, size))
	}
	return l.styles.Normal.Render(fmt.Sprintf("%s%-*s  ", indicator, maxNameLen, name)) +
		l.styles.Muted.Render(fmt.Sprintf("%8s", size))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}

// SetFiles replaces the list contents and resets the selection.
func (l *FileList) SetFiles(files []domain.CandidateFile) {
	l.files = files
	l.selected = 0
}

// Files returns the current files.
func (l *FileList) Files() []domain.CandidateFile {
	return l.files
}

// Selected returns the index of the selected file.
func (l *FileList) Selected() int {
	return l.selected
}

// SetSelected sets the selected index. Out of range values are ignored.
func (l *FileList) SetSelected(index int) {
	if index >= 0 && index < len(l.files) {
		l.selected = index
	}
}

// SelectedFile returns the selected file, or nil if the list is empty.
func (l *FileList) SelectedFile() *domain.CandidateFile {
	if l.selected < 0 || l.selected >= len(l.files) {
		return nil
	}
	return &l.files[l.selected]
}

// MoveUp moves selection up.
func (l *FileList) MoveUp() {
	if l.selected > 0 {
		l.selected--
	}
}

// MoveDown moves selection down.
func (l *FileList) MoveDown() {
	if l.selected < len(l.files)-1 {
		l.selected++
	}
}

// SetDimensions sets the component dimensions. height is in rows.
func (l *FileList) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}

// Count returns the number of files.
func (l *FileList) Count() int {
	return len(l.files)
}

// IsEmpty returns whether the list is empty.
func (l *FileList) IsEmpty() bool {
	return len(l.files) == 0
}
