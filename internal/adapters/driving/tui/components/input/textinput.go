// Package input provides text input components for the TUI.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/quala-cli/internal/adapters/driving/tui/styles"
)

// TermInput is the one-line prompt for live search terms.
type TermInput struct {
	textinput textinput.Model
	styles    *styles.Styles
	width     int
}

// NewTermInput creates an unfocused term input.
func NewTermInput(s *styles.Styles) *TermInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = "word or phrase..."
	ti.CharLimit = 256
	ti.Width = 40

	return &TermInput{
		textinput: ti,
		styles:    s,
		width:     40,
	}
}

// Update handles input messages.
func (t *TermInput) Update(msg tea.Msg) (*TermInput, tea.Cmd) {
	var cmd tea.Cmd
	t.textinput, cmd = t.textinput.Update(msg)
	return t, cmd
}

// View renders the prompt.
func (t *TermInput) View() string {
	label := t.styles.Title.Render("Find: ")
	field := t.styles.InputField.Render(t.textinput.View())
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center, label, field)
}

// Value returns the typed term.
func (t *TermInput) Value() string {
	return t.textinput.Value()
}

// SetValue sets the typed term.
func (t *TermInput) SetValue(value string) {
	t.textinput.SetValue(value)
}

// Focus starts accepting keystrokes.
func (t *TermInput) Focus() tea.Cmd {
	t.textinput.Focus()
	return textinput.Blink
}

// Blur stops accepting keystrokes.
func (t *TermInput) Blur() {
	t.textinput.Blur()
}

// Focused returns whether the input accepts keystrokes.
func (t *TermInput) Focused() bool {
	return t.textinput.Focused()
}

// SetWidth sets the width of the prompt including its label.
func (t *TermInput) SetWidth(width int) {
	t.width = width
	t.textinput.Width = max(width-10, 20)
}

// Width returns the current width.
func (t *TermInput) Width() int {
	return t.width
}

// Reset clears the term.
func (t *TermInput) Reset() {
	t.textinput.Reset()
}
