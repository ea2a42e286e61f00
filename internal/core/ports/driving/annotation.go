package driving

import (
	"context"

	"github.com/custodia-labs/quala-cli/internal/core/domain"
)

// MarkSummary is a mark with its occurrence count across the project.
type MarkSummary struct {
	domain.Mark
	Count int
}

// FileMatches lists the spans of a term in one file.
type FileMatches struct {
	File  string
	Spans []domain.Span
}

// AnnotationService tags selections and manages searches and marks.
// Marks are addressed by id or, when no id matches, by name.
type AnnotationService interface {
	// AddTag labels span in file. An empty file means the active file.
	// Returns the id of the tag, or "" when the label or span was empty.
	AddTag(ctx context.Context, file string, span domain.Span, label string) (string, error)

	// RemoveOccurrence deletes the occurrences of mark at exactly span.
	RemoveOccurrence(ctx context.Context, file, mark string, span domain.Span) (int, error)

	// Preview runs a live search in the active file and returns its pending occurrences.
	// An empty term clears the live search.
	Preview(ctx context.Context, term string) ([]domain.Occurrence, error)

	// SaveSearch makes term a permanent Search mark across all files.
	// created is false when the search already existed.
	SaveSearch(ctx context.Context, term string) (id string, created bool, err error)

	// Refresh re-derives all Search occurrences from current contents.
	Refresh(ctx context.Context) error

	// Find scans every file of the active project for term without changing state.
	Find(ctx context.Context, term string) ([]FileMatches, error)

	// Marks lists the marks of the active project that pass filter.
	Marks(filter domain.Filter) ([]MarkSummary, error)

	// RemoveMark deletes a mark with all its occurrences and group memberships.
	RemoveMark(ctx context.Context, mark string) error

	// RenameMark renames a mark. Renaming a Search re-indexes it.
	RenameMark(ctx context.Context, mark, name string) error

	// RecolorMark sets a mark's colour.
	RecolorMark(ctx context.Context, mark, color string) error

	// ResolveMark finds a mark of the active project by id or name.
	ResolveMark(mark string) (domain.Mark, error)
}
