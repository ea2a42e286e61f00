// Package viewer shows one file with its marks highlighted.
package viewer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/quala-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/quala-cli/internal/core/ports/driving"
)

// View is the scrolling file pane.
type View struct {
	styles      *styles.Styles
	highlighter *styles.Highlighter
	viewport    viewport.Model

	rendering *driving.Rendering
	body      string
	err       error
	width     int
	height    int
}

// NewView creates a file pane. A nil highlighter paints with the styles' theme.
func NewView(s *styles.Styles, h *styles.Highlighter) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if h == nil {
		h = styles.NewHighlighter(s.Theme())
	}
	return &View{
		styles:      s,
		highlighter: h,
		viewport:    viewport.New(80, 20),
	}
}

// SetRendering shows a new rendering. The scroll position is kept when the
// file is the same one, so re-highlighting does not jump.
func (v *View) SetRendering(r *driving.Rendering) {
	same := r != nil && v.rendering != nil && r.File == v.rendering.File
	v.rendering = r
	v.err = nil
	v.body = v.highlighter.Render(r)
	v.refresh()
	if !same {
		v.viewport.GotoTop()
	}
}

// SetError shows err instead of the file.
func (v *View) SetError(err error) {
	v.err = err
}

// Update scrolls the pane.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	var cmd tea.Cmd
	v.viewport, cmd = v.viewport.Update(msg)
	return v, cmd
}

// View renders the title line and the visible part of the file.
func (v *View) View() string {
	title := "No file"
	if v.rendering != nil {
		title = v.rendering.File
	}
	header := v.styles.Title.Render(title)
	if v.rendering != nil && v.viewport.TotalLineCount() > v.viewport.Height {
		header += v.styles.Muted.Render(fmt.Sprintf("  %3.f%%", v.viewport.ScrollPercent()*100))
	}
	rule := v.styles.Muted.Render(strings.Repeat("─", max(min(v.width, 80), 1)))

	var body string
	switch {
	case v.err != nil:
		body = v.styles.Error.Render(fmt.Sprintf("Error: %v", v.err))
	case v.rendering == nil:
		body = v.styles.Muted.Render("Add a file with 'quala file add' to start annotating.")
	case v.body == "":
		body = v.styles.Muted.Render("(empty file)")
	default:
		body = v.viewport.View()
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, rule, body)
}

// SetDimensions sets the pane size including the two header lines.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.viewport.Width = max(width, 1)
	v.viewport.Height = max(height-2, 1)
	v.refresh()
}

// refresh wraps the painted body to the pane width.
func (v *View) refresh() {
	v.viewport.SetContent(lipgloss.NewStyle().Width(v.viewport.Width).Render(v.body))
}

// File returns the name of the shown file, or "".
func (v *View) File() string {
	if v.rendering == nil {
		return ""
	}
	return v.rendering.File
}

// Body returns the painted file before wrapping.
func (v *View) Body() string {
	return v.body
}

// YOffset returns the first visible line.
func (v *View) YOffset() int {
	return v.viewport.YOffset
}

// Err returns the error being shown.
func (v *View) Err() error {
	return v.err
}
