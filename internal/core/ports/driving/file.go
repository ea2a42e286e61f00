package driving

import (
	"context"

	"github.com/custodia-labs/quala-cli/internal/core/domain"
)

// FileService manages the text files of the active project.
type FileService interface {
	// List returns the files of the active project in document order.
	List() ([]*domain.TextFile, error)

	// Get returns a file of the active project. An empty name means the active file.
	Get(name string) (*domain.TextFile, error)

	// Add creates a file from plain text and makes it active.
	// Returns the stored (validated, possibly suffixed) name.
	Add(ctx context.Context, name, content string) (string, error)

	// Import normalises raw bytes by file extension and adds the result.
	Import(ctx context.Context, name string, raw []byte) (string, error)

	// Reload normalises raw bytes like Import and replaces an existing
	// file's content with the result, re-deriving search occurrences.
	Reload(ctx context.Context, name string, raw []byte) error

	// Remove deletes a file and its occurrences.
	Remove(ctx context.Context, name string) error

	// Rename renames a file and returns the stored name.
	Rename(ctx context.Context, from, to string) (string, error)

	// Use makes a file active.
	Use(ctx context.Context, name string) error

	// Edit replaces a file's content. Search occurrences are re-derived when
	// refresh is true; tag offsets are kept as they are.
	Edit(ctx context.Context, name, content string, refresh bool) error
}
