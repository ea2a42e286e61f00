// Package status provides status bar components for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/quala-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/quala-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/quala-cli/internal/adapters/driving/tui/styles"
)

// Bar displays the filters, the outcome of the last action and keybinding hints.
type Bar struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	mode      messages.Mode
	filter    string
	highlight string
	message   string
	err       error
	width     int
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
		styles:    s,
		keymap:    km,
		mode:      messages.ModeBrowse,
		filter:    "all",
		highlight: "all",
		width:     80,
	}
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	padding := s.width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

func (s *Bar) renderLeft() string {
	if s.err != nil {
		return s.styles.Error.Render(fmt.Sprintf("Error: %v", s.err))
	}
	if s.message != "" {
		return s.styles.Normal.Render(s.message)
	}
	switch s.mode {
	case messages.ModeInput:
		return s.styles.Normal.Render("Live search")
	case messages.ModeHelp:
		return s.styles.Normal.Render("Help")
	case messages.ModeBrowse, messages.ModePreview:
	}
	return s.styles.Muted.Render(fmt.Sprintf("filter: %s  highlight: %s", s.filter, s.highlight))
}

func (s *Bar) renderRight() string {
	var bindings []key.Binding
	switch s.mode {
	case messages.ModeInput:
		bindings = s.keymap.InputHelp()
	case messages.ModePreview:
		bindings = s.keymap.PreviewHelp()
	case messages.ModeBrowse, messages.ModeHelp:
		bindings = s.keymap.ShortHelp()
	}

	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetMode sets which hints are shown.
func (s *Bar) SetMode(mode messages.Mode) {
	s.mode = mode
}

// Mode returns the current mode.
func (s *Bar) Mode() messages.Mode {
	return s.mode
}

// SetFilters sets the labels of the visibility and highlight filters.
func (s *Bar) SetFilters(filter, highlight string) {
	s.filter = filter
	s.highlight = highlight
}

// SetMessage shows a message until the next Clear. It clears any error.
func (s *Bar) SetMessage(message string) {
	s.message = message
	s.err = nil
}

// Message returns the current message.
func (s *Bar) Message() string {
	return s.message
}

// SetError shows an error until the next Clear.
func (s *Bar) SetError(err error) {
	s.err = err
}

// Err returns the error being shown.
func (s *Bar) Err() error {
	return s.err
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Clear removes the message and error.
func (s *Bar) Clear() {
	s.message = ""
	s.err = nil
}
