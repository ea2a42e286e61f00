package domain

import (
	"fmt"
	"strings"
)

// Project is one named analysis: its files, marks and groups.
type Project struct {
	Name   string
	Files  Index[*TextFile]
	Marks  Index[Mark]
	Groups Index[Group]
}

// NewProject creates an empty project.
func NewProject(name string) *Project {
	return &Project{Name: name}
}

// Clone returns a deep copy.
func (p *Project) Clone() *Project {
	if p == nil {
		return nil
	}
	return &Project{
		Name:   p.Name,
		Files:  p.Files.Clone((*TextFile).Clone),
		Marks:  p.Marks.Clone(nil),
		Groups: p.Groups.Clone(Group.Clone),
	}
}

// File returns the named file.
func (p *Project) File(name string) (*TextFile, error) {
	f, ok := p.Files.Get(name)
	if !ok {
		return nil, fmt.Errorf("file %q: %w", name, ErrNotFound)
	}
	return f, nil
}

// Mark returns the mark with id.
func (p *Project) Mark(id string) (Mark, error) {
	m, ok := p.Marks.Get(id)
	if !ok {
		return Mark{}, fmt.Errorf("mark %q: %w", id, ErrNotFound)
	}
	return m, nil
}

// Group returns the group with id.
func (p *Project) Group(id string) (Group, error) {
	g, ok := p.Groups.Get(id)
	if !ok {
		return Group{}, fmt.Errorf("group %q: %w", id, ErrNotFound)
	}
	return g, nil
}

// FindMark looks a mark up by type and case-insensitive name.
func (p *Project) FindMark(typ MarkType, name string) (Mark, bool) {
	for _, m := range p.Marks.Values() {
		if m.Type == typ && strings.EqualFold(m.Name, name) {
			return m, true
		}
	}
	return Mark{}, false
}

// FindMarkByName looks a mark up by case-insensitive name, preferring Tags.
func (p *Project) FindMarkByName(name string) (Mark, bool) {
	if m, ok := p.FindMark(MarkTypeTag, name); ok {
		return m, true
	}
	return p.FindMark(MarkTypeSearch, name)
}

// FindGroupByName looks a group up by case-insensitive name.
func (p *Project) FindGroupByName(name string) (Group, bool) {
	for _, g := range p.Groups.Values() {
		if strings.EqualFold(g.Name, name) {
			return g, true
		}
	}
	return Group{}, false
}

// MarksOfType returns marks of typ in insertion order.
func (p *Project) MarksOfType(typ MarkType) []Mark {
	var out []Mark
	for _, m := range p.Marks.Values() {
		if m.Type == typ {
			out = append(out, m)
		}
	}
	return out
}

// TypeOf resolves the mark type behind ref. Pending refs are searches.
func (p *Project) TypeOf(ref MarkRef) (MarkType, bool) {
	if ref.IsPending() {
		return MarkTypeSearch, true
	}
	m, ok := p.Marks.Get(ref.ID())
	return m.Type, ok
}

// ColorOf resolves the display colour behind ref.
func (p *Project) ColorOf(ref MarkRef) string {
	if ref.IsPending() {
		return PendingColor
	}
	if m, ok := p.Marks.Get(ref.ID()); ok {
		return m.Color
	}
	return ""
}

// CheckReferences verifies that every occurrence and group membership
// points at an existing mark. Pending occurrences are always allowed.
func (p *Project) CheckReferences() error {
	for _, f := range p.Files.Values() {
		for _, o := range f.Occurrences {
			if o.Mark.IsPending() {
				continue
			}
			if !p.Marks.Has(o.Mark.ID()) {
				return fmt.Errorf("file %q references mark %q: %w", f.Name, o.Mark.ID(), ErrDanglingReference)
			}
		}
	}
	for _, g := range p.Groups.Values() {
		for _, id := range g.Marks {
			if !p.Marks.Has(id) {
				return fmt.Errorf("group %q references mark %q: %w", g.Name, id, ErrDanglingReference)
			}
		}
	}
	return nil
}

// AppState is the whole persisted snapshot: every project keyed by name.
type AppState struct {
	Projects Index[*Project]
}

// NewAppState creates an empty state.
func NewAppState() *AppState {
	return &AppState{}
}

// Clone returns a deep copy.
func (s *AppState) Clone() *AppState {
	if s == nil {
		return NewAppState()
	}
	return &AppState{Projects: s.Projects.Clone((*Project).Clone)}
}

// Project returns the named project.
func (s *AppState) Project(name string) (*Project, error) {
	p, ok := s.Projects.Get(name)
	if !ok {
		return nil, fmt.Errorf("project %q: %w", name, ErrNotFound)
	}
	return p, nil
}
