package driving

import (
	"context"

	"github.com/custodia-labs/quala-cli/internal/core/domain"
)

// GroupService manages mark groups. Groups and marks are addressed by id or name.
type GroupService interface {
	// List returns the groups of the active project.
	List() ([]domain.Group, error)

	// Create adds a group with the given members and returns its id.
	Create(ctx context.Context, name string, marks []string) (string, error)

	// SetMarks replaces a group's members.
	SetMarks(ctx context.Context, group string, marks []string) error

	// Rename renames a group.
	Rename(ctx context.Context, group, name string) error

	// Recolor sets a group's colour.
	Recolor(ctx context.Context, group, color string) error

	// Remove deletes a group. Member marks are kept.
	Remove(ctx context.Context, group string) error

	// Materialize saves a group as a new Tag and returns the tag id.
	Materialize(ctx context.Context, group, tag string) (string, error)
}
