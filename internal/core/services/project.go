package services

import (
	"context"

	"github.com/custodia-labs/quala-cli/internal/core/domain"
	"github.com/custodia-labs/quala-cli/internal/core/mutations"
	"github.com/custodia-labs/quala-cli/internal/core/ports/driving"
)

// Ensure ProjectService implements the interface.
var _ driving.ProjectService = (*ProjectService)(nil)

// ProjectService manages projects and the active selection.
type ProjectService struct {
	ws *Workspace
}

// NewProjectService creates a new project service.
func NewProjectService(ws *Workspace) *ProjectService {
	return &ProjectService{ws: ws}
}

// List returns project names in document order.
func (s *ProjectService) List() []string {
	return s.ws.State().Projects.Keys()
}

// Current returns the active project.
func (s *ProjectService) Current() (*domain.Project, error) {
	return s.ws.Current()
}

// Selection returns the active project and file names.
func (s *ProjectService) Selection() driving.Selection {
	return s.ws.Selection()
}

// Create adds an empty project and makes it active.
func (s *ProjectService) Create(ctx context.Context, name string) error {
	return s.ws.Update(ctx, func(tx *Tx) error {
		m := &mutations.CreateProject{Project: name}
		if err := tx.Apply(m); err != nil {
			return err
		}
		tx.Select(m.Project, "")
		return nil
	})
}

// Rename renames a project, keeping it active if it was.
func (s *ProjectService) Rename(ctx context.Context, from, to string) error {
	return s.ws.Update(ctx, func(tx *Tx) error {
		m := &mutations.RenameProject{From: from, To: to}
		if err := tx.Apply(m); err != nil {
			return err
		}
		if sel := tx.Selection(); sel.Project == from {
			tx.Select(m.To, sel.File)
		}
		return nil
	})
}

// Delete removes a project. The selection moves to the first remaining project.
func (s *ProjectService) Delete(ctx context.Context, name string) error {
	return s.ws.Update(ctx, func(tx *Tx) error {
		if err := tx.Apply(&mutations.DeleteProject{Project: name}); err != nil {
			return err
		}
		if tx.Selection().Project == name {
			tx.live = liveSearch{}
		}
		return nil
	})
}

// Use makes a project active together with its first file.
func (s *ProjectService) Use(ctx context.Context, name string) error {
	return s.ws.Update(ctx, func(tx *Tx) error {
		p, err := tx.State().Project(name)
		if err != nil {
			return err
		}
		tx.Select(p.Name, p.Files.First())
		return nil
	})
}
