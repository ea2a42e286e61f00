package mutations

import (
	"fmt"

	"github.com/custodia-labs/quala-cli/internal/core/domain"
)

// CreateGroup adds a named set of marks. Members must exist.
type CreateGroup struct {
	Project string
	Group   string
	Marks   []string

	// GroupID is set to the created group.
	GroupID string
}

// Name implements Mutation.
func (m *CreateGroup) Name() string { return "create group" }

// Apply implements Mutation.
func (m *CreateGroup) Apply(st *domain.AppState) error {
	p, err := lookupProject(st, m.Project)
	if err != nil {
		return err
	}
	name, err := domain.NormalizeName(m.Group)
	if err != nil {
		return err
	}
	if _, ok := p.FindGroupByName(name); ok {
		return fmt.Errorf("group %q: %w", name, domain.ErrDuplicateName)
	}
	members, err := checkMembers(p, m.Marks)
	if err != nil {
		return err
	}
	g := domain.Group{
		ID:    newID(),
		Name:  name,
		Color: domain.ColorFor(p.Groups.Len()),
		Marks: members,
	}
	p.Groups.Set(g.ID, g)
	m.GroupID = g.ID
	return nil
}

// UpdateGroup edits a group. Empty Name and Color keep the current values;
// SetMarks replaces the member set with Marks.
type UpdateGroup struct {
	Project  string
	GroupID  string
	Group    string
	Color    string
	SetMarks bool
	Marks    []string
}

// Name implements Mutation.
func (m *UpdateGroup) Name() string { return "update group" }

// Apply implements Mutation.
func (m *UpdateGroup) Apply(st *domain.AppState) error {
	p, err := lookupProject(st, m.Project)
	if err != nil {
		return err
	}
	g, err := p.Group(m.GroupID)
	if err != nil {
		return err
	}
	g = g.Clone()
	if m.Group != "" {
		name, err := domain.NormalizeName(m.Group)
		if err != nil {
			return err
		}
		if other, ok := p.FindGroupByName(name); ok && other.ID != g.ID {
			return fmt.Errorf("group %q: %w", name, domain.ErrDuplicateName)
		}
		g.Name = name
	}
	if m.Color != "" {
		color, err := domain.NormalizeColor(m.Color)
		if err != nil {
			return err
		}
		g.Color = color
	}
	if m.SetMarks {
		members, err := checkMembers(p, m.Marks)
		if err != nil {
			return err
		}
		g.Marks = members
	}
	p.Groups.Set(g.ID, g)
	return nil
}

// RemoveGroup deletes a group. Its member marks are kept.
type RemoveGroup struct {
	Project string
	GroupID string
}

// Name implements Mutation.
func (m *RemoveGroup) Name() string { return "remove group" }

// Apply implements Mutation.
func (m *RemoveGroup) Apply(st *domain.AppState) error {
	p, err := lookupProject(st, m.Project)
	if err != nil {
		return err
	}
	if _, err := p.Group(m.GroupID); err != nil {
		return err
	}
	p.Groups.Delete(m.GroupID)
	return nil
}

// MaterializeGroup saves a group as a new Tag mark. Every occurrence of
// every member mark is copied under the new tag, keeping its span.
type MaterializeGroup struct {
	Project string
	GroupID string
	Tag     string

	// MarkID is set to the created tag.
	MarkID string
}

// Name implements Mutation.
func (m *MaterializeGroup) Name() string { return "materialize group" }

// Apply implements Mutation.
func (m *MaterializeGroup) Apply(st *domain.AppState) error {
	p, err := lookupProject(st, m.Project)
	if err != nil {
		return err
	}
	g, err := p.Group(m.GroupID)
	if err != nil {
		return err
	}
	name, err := domain.NormalizeName(m.Tag)
	if err != nil {
		return err
	}
	if _, ok := p.FindMark(domain.MarkTypeTag, name); ok {
		return fmt.Errorf("tag %q: %w", name, domain.ErrDuplicateName)
	}
	mark, _ := resolveMark(p, domain.MarkTypeTag, name)
	for _, f := range p.Files.Values() {
		var copies []domain.Occurrence
		for _, o := range f.Occurrences {
			if o.Mark.IsPending() || !g.Has(o.Mark.ID()) {
				continue
			}
			o.Mark = mark.Ref()
			copies = append(copies, o)
		}
		f.Add(copies...)
	}
	m.MarkID = mark.ID
	return nil
}

func checkMembers(p *domain.Project, ids []string) ([]string, error) {
	members := domain.UniqueIDs(ids)
	for _, id := range members {
		if _, err := p.Mark(id); err != nil {
			return nil, err
		}
	}
	return members, nil
}
