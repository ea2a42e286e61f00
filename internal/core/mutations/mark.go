package mutations

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/quala-cli/internal/core/domain"
	"github.com/custodia-labs/quala-cli/internal/core/indexer"
)

// AddTag labels a selection in one file. The Tag mark is resolved by
// case-insensitive name and created on first use. An empty selection or an
// empty label leaves the state unchanged.
type AddTag struct {
	Project string
	File    string
	Span    domain.Span
	Label   string

	// MarkID is set to the resolved or created mark.
	MarkID string
}

// Name implements Mutation.
func (m *AddTag) Name() string { return "add tag" }

// Apply implements Mutation.
func (m *AddTag) Apply(st *domain.AppState) error {
	label := strings.TrimSpace(m.Label)
	if label == "" || m.Span.IsEmpty() {
		return nil
	}
	p, f, err := lookupFile(st, m.Project, m.File)
	if err != nil {
		return err
	}
	if !m.Span.Within(len(f.Content)) {
		return fmt.Errorf("selection %d-%d outside %q: %w", m.Span.Start, m.Span.End, f.Name, domain.ErrInvalidInput)
	}
	mark, _ := resolveMark(p, domain.MarkTypeTag, label)
	f.Add(domain.NewOccurrence(mark.Ref(), m.Span, f.Content))
	m.MarkID = mark.ID
	return nil
}

// RemoveMark deletes a mark together with every occurrence referencing it
// and its membership in every group.
type RemoveMark struct {
	Project string
	MarkID  string
}

// Name implements Mutation.
func (m *RemoveMark) Name() string { return "remove mark" }

// Apply implements Mutation.
func (m *RemoveMark) Apply(st *domain.AppState) error {
	p, err := lookupProject(st, m.Project)
	if err != nil {
		return err
	}
	mark, err := p.Mark(m.MarkID)
	if err != nil {
		return err
	}
	ref := mark.Ref()
	for _, f := range p.Files.Values() {
		f.RemoveWhere(func(o domain.Occurrence) bool { return o.Mark == ref })
	}
	for _, g := range p.Groups.Values() {
		if g.Has(mark.ID) {
			p.Groups.Set(g.ID, g.Without(mark.ID))
		}
	}
	p.Marks.Delete(mark.ID)
	return nil
}

// RemoveOccurrence deletes the occurrences of Mark at exactly Span in one
// file. The mark itself is kept even when no occurrences remain.
type RemoveOccurrence struct {
	Project string
	File    string
	Mark    domain.MarkRef
	Span    domain.Span

	// Removed is the number of occurrences dropped.
	Removed int
}

// Name implements Mutation.
func (m *RemoveOccurrence) Name() string { return "remove occurrence" }

// Apply implements Mutation.
func (m *RemoveOccurrence) Apply(st *domain.AppState) error {
	_, f, err := lookupFile(st, m.Project, m.File)
	if err != nil {
		return err
	}
	m.Removed = f.RemoveWhere(func(o domain.Occurrence) bool {
		return o.Mark == m.Mark && o.Span == m.Span
	})
	return nil
}

// RenameMark changes a mark's display name. Names are unique per type.
// Renaming a Search mark re-derives its occurrences from the new term.
type RenameMark struct {
	Project string
	MarkID  string
	NewName string
	Options indexer.Options
}

// Name implements Mutation.
func (m *RenameMark) Name() string { return "rename mark" }

// Apply implements Mutation.
func (m *RenameMark) Apply(st *domain.AppState) error {
	p, err := lookupProject(st, m.Project)
	if err != nil {
		return err
	}
	mark, err := p.Mark(m.MarkID)
	if err != nil {
		return err
	}
	name, err := domain.NormalizeName(m.NewName)
	if err != nil {
		return err
	}
	if other, ok := p.FindMark(mark.Type, name); ok && other.ID != mark.ID {
		return fmt.Errorf("%s %q: %w", mark.Type, name, domain.ErrDuplicateName)
	}
	mark.Name = name
	p.Marks.Set(mark.ID, mark)
	if mark.Type != domain.MarkTypeSearch {
		return nil
	}
	ref := mark.Ref()
	for _, f := range p.Files.Values() {
		f.RemoveWhere(func(o domain.Occurrence) bool { return o.Mark == ref })
		if err := indexInto(f, ref, name, m.Options); err != nil {
			return err
		}
	}
	return nil
}

// RecolorMark sets a mark's display color.
type RecolorMark struct {
	Project string
	MarkID  string
	Color   string
}

// Name implements Mutation.
func (m *RecolorMark) Name() string { return "recolor mark" }

// Apply implements Mutation.
func (m *RecolorMark) Apply(st *domain.AppState) error {
	p, err := lookupProject(st, m.Project)
	if err != nil {
		return err
	}
	mark, err := p.Mark(m.MarkID)
	if err != nil {
		return err
	}
	color, err := domain.NormalizeColor(m.Color)
	if err != nil {
		return err
	}
	mark.Color = color
	p.Marks.Set(mark.ID, mark)
	return nil
}

// indexInto scans f for term and appends one occurrence per span under ref.
func indexInto(f *domain.TextFile, ref domain.MarkRef, term string, opts indexer.Options) error {
	spans, err := indexer.Index(term, f.Content, opts)
	if err != nil {
		return err
	}
	occs := make([]domain.Occurrence, 0, len(spans))
	for _, s := range spans {
		occs = append(occs, domain.NewOccurrence(ref, s, f.Content))
	}
	f.Add(occs...)
	return nil
}
