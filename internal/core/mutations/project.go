package mutations

import (
	"fmt"

	"github.com/custodia-labs/quala-cli/internal/core/domain"
)

// CreateProject adds an empty project. Names are keys, so a taken name is rejected.
type CreateProject struct {
	Project string
}

// Name implements Mutation.
func (m *CreateProject) Name() string { return "create project" }

// Apply implements Mutation.
func (m *CreateProject) Apply(st *domain.AppState) error {
	name, err := domain.NormalizeName(m.Project)
	if err != nil {
		return err
	}
	if st.Projects.Has(name) {
		return fmt.Errorf("project %q: %w", name, domain.ErrAlreadyExists)
	}
	st.Projects.Set(name, domain.NewProject(name))
	m.Project = name
	return nil
}

// RenameProject rewrites a project's key.
type RenameProject struct {
	From string
	To   string
}

// Name implements Mutation.
func (m *RenameProject) Name() string { return "rename project" }

// Apply implements Mutation.
func (m *RenameProject) Apply(st *domain.AppState) error {
	to, err := domain.NormalizeName(m.To)
	if err != nil {
		return err
	}
	p, err := lookupProject(st, m.From)
	if err != nil {
		return err
	}
	if to != m.From && st.Projects.Has(to) {
		return fmt.Errorf("project %q: %w", to, domain.ErrAlreadyExists)
	}
	st.Projects.Rename(m.From, to)
	p.Name = to
	m.To = to
	return nil
}

// DeleteProject removes a project and everything in it.
type DeleteProject struct {
	Project string
}

// Name implements Mutation.
func (m *DeleteProject) Name() string { return "delete project" }

// Apply implements Mutation.
func (m *DeleteProject) Apply(st *domain.AppState) error {
	if _, err := lookupProject(st, m.Project); err != nil {
		return err
	}
	st.Projects.Delete(m.Project)
	return nil
}

// ReplaceState swaps in an imported snapshot wholesale. No merge is attempted.
type ReplaceState struct {
	State *domain.AppState
}

// Name implements Mutation.
func (m *ReplaceState) Name() string { return "replace state" }

// Apply implements Mutation.
func (m *ReplaceState) Apply(st *domain.AppState) error {
	if m.State == nil {
		return domain.ErrInvalidInput
	}
	st.Projects = m.State.Clone().Projects
	return nil
}
