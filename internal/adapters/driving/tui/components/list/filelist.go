// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/quala-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/quala-cli/internal/core/domain"
)

// entry is one row of the file list.
type entry struct {
	name        string
	occurrences int
	dirty       bool
}

// FileList shows the files of the active project and which one is open.
type FileList struct {
	entries  []entry
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
		width:  24,
		height: 10,
	}
}

// SetFiles replaces the list and selects the named file when present.
func (l *FileList) SetFiles(files []*domain.TextFile, selected string) {
	l.entries = make([]entry, 0, len(files))
	l.selected = 0
	for i, f := range files {
		l.entries = append(l.entries, entry{name: f.Name, occurrences: len(f.Occurrences), dirty: f.Dirty})
		if f.Name == selected {
			l.selected = i
		}
	}
}

// Select moves the cursor to the named file. Unknown names are ignored.
func (l *FileList) Select(name string) {
	for i, e := range l.entries {
		if e.name == name {
			l.selected = i
			return
		}
	}
}

// Selected returns the name of the selected file, or "" when empty.
func (l *FileList) Selected() string {
	if len(l.entries) == 0 {
		return ""
	}
	return l.entries[l.selected].name
}

// Next returns the file after the selected one, wrapping around.
func (l *FileList) Next() string {
	return l.offset(1)
}

// Prev returns the file before the selected one, wrapping around.
func (l *FileList) Prev() string {
	return l.offset(-1)
}

func (l *FileList) offset(d int) string {
	n := len(l.entries)
	if n == 0 {
		return ""
	}
	return l.entries[((l.selected+d)%n+n)%n].name
}

// Count returns the number of files.
func (l *FileList) Count() int {
	return len(l.entries)
}

// View renders the list.
func (l *FileList) View() string {
	title := l.styles.Subtitle.Render(fmt.Sprintf("Files (%d)", len(l.entries)))
	if len(l.entries) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, title, "", l.styles.Muted.Render("No files"))
	}

	visible := l.height - 2
	if visible < 1 {
		visible = 1
	}
	start := 0
	if l.selected >= visible {
		start = l.selected - visible + 1
	}
	end := min(start+visible, len(l.entries))

	lines := []string{title, ""}
	for i := start; i < end; i++ {
		lines = append(lines, l.renderEntry(i))
	}
	return strings.Join(lines, "\n")
}

func (l *FileList) renderEntry(i int) string {
	e := l.entries[i]
	name := e.name
	if e.dirty {
		name += "*"
	}
	count := fmt.Sprintf("%d", e.occurrences)

	maxName := l.width - len(count) - 3
	if maxName < 4 {
		maxName = 4
	}
	if r := []rune(name); len(r) > maxName {
		name = string(r[:maxName-1]) + "…"
	}

	if i == l.selected {
		return l.styles.Selected.Render(fmt.Sprintf("> %-*s %s", maxName, name, count))
	}
	return l.styles.Normal.Render(fmt.Sprintf("  %-*s ", maxName, name)) + l.styles.Muted.Render(count)
}

// SetDimensions sets the component dimensions.
func (l *FileList) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}

// Width returns the current width.
func (l *FileList) Width() int {
	return l.width
}
