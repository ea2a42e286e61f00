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

	// Up scrolls the file up.
	Up key.Binding

	// Down scrolls the file down.
	Down key.Binding

	// NextFile selects the next file.
	NextFile key.Binding

	// PrevFile selects the previous file.
	PrevFile key.Binding

	// Search opens the live search input.
	Search key.Binding

	// Submit runs the typed search.
	Submit key.Binding

	// Save turns the previewed search into a saved search.
	Save key.Binding

	// Cancel closes the input or clears the preview.
	Cancel key.Binding

	// CycleFilter steps through all, tags and searches.
	CycleFilter key.Binding

	// CycleHighlight steps through all marks, then each mark alone.
	CycleHighlight key.Binding
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
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		NextFile: key.NewBinding(
			key.WithKeys("tab", "]"),
			key.WithHelp("tab", "next file"),
		),
		PrevFile: key.NewBinding(
			key.WithKeys("shift+tab", "["),
			key.WithHelp("shift+tab", "prev file"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "preview"),
		),
		Save: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "save search"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		CycleFilter: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "filter"),
		),
		CycleHighlight: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "highlight"),
		),
	}
}

// ShortHelp returns a short list of keybindings for the status bar.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.CycleFilter, k.CycleHighlight, k.Help, k.Quit}
}

// PreviewHelp returns keybindings shown while a live search is previewed.
func (k *KeyMap) PreviewHelp() []key.Binding {
	return []key.Binding{k.Save, k.Cancel, k.Search}
}

// InputHelp returns keybindings shown while typing a search.
func (k *KeyMap) InputHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Cancel}
}

// FullHelp returns the full list of keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextFile, k.PrevFile},
		{k.Search, k.Submit, k.Save, k.Cancel},
		{k.CycleFilter, k.CycleHighlight},
		{k.Help, k.Quit},
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
