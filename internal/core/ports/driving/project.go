package driving

import (
	"context"

	"github.com/custodia-labs/quala-cli/internal/core/domain"
)

// Selection is the active project and file.
type Selection struct {
	Project string
	File    string
}

// ProjectService manages projects and the active selection.
type ProjectService interface {
	// List returns project names in document order.
	List() []string

	// Current returns the active project.
	Current() (*domain.Project, error)

	// Selection returns the active project and file names.
	Selection() Selection

	// Create adds an empty project and makes it active.
	Create(ctx context.Context, name string) error

	// Rename renames a project, keeping it active if it was.
	Rename(ctx context.Context, from, to string) error

	// Delete removes a project. The selection moves to the first remaining project.
	Delete(ctx context.Context, name string) error

	// Use makes a project active together with its first file.
	Use(ctx context.Context, name string) error
}
