// Package mutations implements every state transition of the annotation model.
//
// A Mutation is a value describing one user action. Commit applies it to a
// deep copy of the current state, runs the dedupe pass on every file, checks
// that no occurrence or group references a missing mark, and only then
// returns the new state. A failed mutation returns the original state
// untouched, so callers never observe a partially applied change.
//
// Mutations that create entities report the created id in an exported
// result field, which is why Apply uses pointer receivers throughout.
package mutations

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/custodia-labs/quala-cli/internal/core/domain"
)

// Mutation is one atomic state transition.
type Mutation interface {
	// Name identifies the mutation in logs and errors.
	Name() string

	// Apply mutates st in place. It is only ever called on a private copy.
	Apply(st *domain.AppState) error
}

// newID generates mark and group identifiers.
var newID = uuid.NewString

// Commit applies m to a copy of st and returns the new state.
// On error the returned state is st itself.
func Commit(st *domain.AppState, m Mutation) (*domain.AppState, error) {
	next := st.Clone()
	if err := m.Apply(next); err != nil {
		return st, fmt.Errorf("%s: %w", m.Name(), err)
	}
	for _, p := range next.Projects.Values() {
		for _, f := range p.Files.Values() {
			f.Dedupe()
		}
		if err := p.CheckReferences(); err != nil {
			return st, fmt.Errorf("%s: project %q: %w", m.Name(), p.Name, err)
		}
	}
	return next, nil
}

// Batch applies several mutations as one transition.
type Batch struct {
	Label string
	Steps []Mutation
}

// Name implements Mutation.
func (b *Batch) Name() string {
	if b.Label != "" {
		return b.Label
	}
	return "batch"
}

// Apply implements Mutation.
func (b *Batch) Apply(st *domain.AppState) error {
	for _, step := range b.Steps {
		if err := step.Apply(st); err != nil {
			return fmt.Errorf("%s: %w", step.Name(), err)
		}
	}
	return nil
}

func lookupProject(st *domain.AppState, name string) (*domain.Project, error) {
	return st.Project(name)
}

func lookupFile(st *domain.AppState, project, file string) (*domain.Project, *domain.TextFile, error) {
	p, err := st.Project(project)
	if err != nil {
		return nil, nil, err
	}
	f, err := p.File(file)
	if err != nil {
		return nil, nil, err
	}
	return p, f, nil
}

// resolveMark returns the mark of typ named name, creating it if needed.
func resolveMark(p *domain.Project, typ domain.MarkType, name string) (domain.Mark, bool) {
	if m, ok := p.FindMark(typ, name); ok {
		return m, false
	}
	m := domain.Mark{
		ID:    newID(),
		Type:  typ,
		Name:  name,
		Color: domain.ColorFor(p.Marks.Len()),
	}
	p.Marks.Set(m.ID, m)
	return m, true
}
