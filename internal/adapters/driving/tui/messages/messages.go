// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/quala-cli/internal/core/domain"
	"github.com/custodia-labs/quala-cli/internal/core/ports/driving"
)

// FilesLoaded carries the files of the active project.
type FilesLoaded struct {
	Files []*domain.TextFile
	// Selected is the active file, "" when the project has none.
	Selected string
	Err      error
}

// FileSelected is sent when another file becomes active.
type FileSelected struct {
	Name string
	Err  error
}

// RenderLoaded carries the highlighted segments of the active file.
type RenderLoaded struct {
	Rendering *driving.Rendering
	Err       error
}

// MarksLoaded carries the marks available to the highlight cycle.
type MarksLoaded struct {
	Marks []driving.MarkSummary
	Err   error
}

// PreviewCompleted reports a live search in the active file.
type PreviewCompleted struct {
	Term  string
	Count int
	Err   error
}

// SearchSaved reports that a previewed term became a saved search.
type SearchSaved struct {
	Term    string
	ID      string
	Created bool
	Err     error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// Mode identifies what the keyboard currently drives.
type Mode int

const (
	// ModeBrowse scrolls the file and switches files.
	ModeBrowse Mode = iota
	// ModeInput types a live search term.
	ModeInput
	// ModePreview shows an unsaved live search.
	ModePreview
	// ModeHelp shows the keybindings.
	ModeHelp
)

// String returns the string representation of the mode.
func (m Mode) String() string {
	switch m {
	case ModeBrowse:
		return "browse"
	case ModeInput:
		return "input"
	case ModePreview:
		return "preview"
	case ModeHelp:
		return "help"
	default:
		return "unknown"
	}
}
