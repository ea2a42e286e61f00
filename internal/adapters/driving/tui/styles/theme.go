// Package styles provides colour themes, styling and segment highlighting
// for the TUI and the render command.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme is the palette shared by the viewer chrome and the highlighter.
type Theme struct {
	Accent lipgloss.Color
	Info   lipgloss.Color
	Text   lipgloss.Color
	Muted  lipgloss.Color
	Error  lipgloss.Color
	Border lipgloss.Color

	// Background is what dimmed highlights fade towards. It should match
	// the terminal background for the blend to look right.
	Background lipgloss.Color

	// OnHighlight is the text colour drawn over a mark colour.
	OnHighlight lipgloss.Color

	// Bar is the status bar fill.
	Bar lipgloss.Color
}

// DefaultTheme is a dark palette.
func DefaultTheme() *Theme {
	return &Theme{
		Accent:      "#7C3AED",
		Info:        "#06B6D4",
		Text:        "#CDD6F4",
		Muted:       "#6C7086",
		Error:       "#F38BA8",
		Border:      "#45475A",
		Background:  "#1E1E2E",
		OnHighlight: "#11111B",
		Bar:         "#181825",
	}
}

// Styles are the lipgloss styles derived from a theme.
type Styles struct {
	theme *Theme

	Title      lipgloss.Style
	Subtitle   lipgloss.Style
	Normal     lipgloss.Style
	Muted      lipgloss.Style
	Selected   lipgloss.Style
	Error      lipgloss.Style
	InputField lipgloss.Style
	StatusBar  lipgloss.Style
	Help       lipgloss.Style

	// Pane frames the file list and the viewer. Its border and padding
	// take two columns on each side.
	Pane lipgloss.Style
}

// NewStyles derives styles from theme. A nil theme means DefaultTheme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}
	framed := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1)

	return &Styles{
		theme:      theme,
		Title:      lipgloss.NewStyle().Bold(true).Foreground(theme.Accent),
		Subtitle:   lipgloss.NewStyle().Bold(true).Foreground(theme.Info),
		Normal:     lipgloss.NewStyle().Foreground(theme.Text),
		Muted:      lipgloss.NewStyle().Foreground(theme.Muted),
		Selected:   lipgloss.NewStyle().Bold(true).Foreground(theme.Text).Background(theme.Accent),
		Error:      lipgloss.NewStyle().Foreground(theme.Error),
		InputField: framed,
		StatusBar:  lipgloss.NewStyle().Foreground(theme.Muted).Background(theme.Bar).Padding(0, 1),
		Help:       lipgloss.NewStyle().Foreground(theme.Muted),
		Pane:       framed,
	}
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the theme used by these styles.
func (s *Styles) Theme() *Theme {
	return s.theme
}
