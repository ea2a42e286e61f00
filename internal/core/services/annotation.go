package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/quala-cli/internal/core/domain"
	"github.com/custodia-labs/quala-cli/internal/core/mutations"
	"github.com/custodia-labs/quala-cli/internal/core/ports/driving"
	"github.com/custodia-labs/quala-cli/internal/logger"
)

// Ensure AnnotationService implements the interface.
var _ driving.AnnotationService = (*AnnotationService)(nil)

// AnnotationService tags selections and manages searches and marks.
type AnnotationService struct {
	ws *Workspace
}

// NewAnnotationService creates a new annotation service.
func NewAnnotationService(ws *Workspace) *AnnotationService {
	return &AnnotationService{ws: ws}
}

// AddTag labels span in file.
func (s *AnnotationService) AddTag(ctx context.Context, file string, span domain.Span, label string) (string, error) {
	var id string
	err := s.ws.Update(ctx, func(tx *Tx) error {
		sel := tx.Selection()
		if sel.Project == "" {
			return errNoProject
		}
		if file == "" {
			file = sel.File
		}
		m := &mutations.AddTag{Project: sel.Project, File: file, Span: span, Label: label}
		if err := tx.Apply(m); err != nil {
			return err
		}
		id = m.MarkID
		return nil
	})
	return id, err
}

// RemoveOccurrence deletes the occurrences of mark at exactly span.
func (s *AnnotationService) RemoveOccurrence(ctx context.Context, file, mark string, span domain.Span) (int, error) {
	var removed int
	err := s.ws.Update(ctx, func(tx *Tx) error {
		p, err := tx.Project()
		if err != nil {
			return err
		}
		if file == "" {
			file = tx.Selection().File
		}
		ref, err := resolveRef(p, mark)
		if err != nil {
			return err
		}
		m := &mutations.RemoveOccurrence{Project: p.Name, File: file, Mark: ref, Span: span}
		if err := tx.Apply(m); err != nil {
			return err
		}
		removed = m.Removed
		return nil
	})
	return removed, err
}

// Preview runs a live search in the active file.
func (s *AnnotationService) Preview(ctx context.Context, term string) ([]domain.Occurrence, error) {
	term = strings.TrimSpace(term)
	var found []domain.Occurrence
	err := s.ws.Update(ctx, func(tx *Tx) error {
		sel := tx.Selection()
		if sel.Project == "" {
			return errNoProject
		}
		if term == "" {
			tx.live = liveSearch{}
			return tx.Apply(&mutations.ClearLiveSearch{Project: sel.Project})
		}
		m := &mutations.SetLiveSearch{Project: sel.Project, File: sel.File, Term: term, Options: tx.Options()}
		if err := tx.Apply(m); err != nil {
			return err
		}
		tx.live = liveSearch{term: term, file: sel.File}
		p, err := tx.Project()
		if err != nil {
			return err
		}
		f, err := p.File(sel.File)
		if err != nil {
			return err
		}
		found = f.OccurrencesOf(domain.PendingRef(term))
		return nil
	})
	if err != nil {
		return nil, err
	}
	logger.Debug("Live search %q: %d matches", term, len(found))
	return found, nil
}

// SaveSearch makes term a permanent Search mark across all files.
func (s *AnnotationService) SaveSearch(ctx context.Context, term string) (string, bool, error) {
	var m *mutations.SaveSearch
	err := s.ws.Update(ctx, func(tx *Tx) error {
		sel := tx.Selection()
		if sel.Project == "" {
			return errNoProject
		}
		m = &mutations.SaveSearch{Project: sel.Project, Term: term, Options: tx.Options()}
		if err := tx.Apply(m); err != nil {
			return err
		}
		if strings.EqualFold(tx.live.term, strings.TrimSpace(term)) {
			tx.live = liveSearch{}
		}
		return nil
	})
	if err != nil {
		return "", false, err
	}
	return m.MarkID, m.Created, nil
}

// Refresh re-derives all Search occurrences from current contents.
func (s *AnnotationService) Refresh(ctx context.Context) error {
	return s.ws.Update(ctx, func(tx *Tx) error {
		if tx.Selection().Project == "" {
			return errNoProject
		}
		return tx.Apply(refreshMutation(tx))
	})
}

// Find scans every file of the active project for term without changing state.
func (s *AnnotationService) Find(_ context.Context, term string) ([]driving.FileMatches, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, domain.ErrEmptyTerm
	}
	p, err := s.ws.Current()
	if err != nil {
		return nil, err
	}
	opts := indexerOptions(s.ws.Analysis())
	var out []driving.FileMatches
	for _, f := range p.Files.Values() {
		spans, err := s.ws.Scan(term, f.Content, opts)
		if err != nil {
			return nil, err
		}
		if len(spans) > 0 {
			out = append(out, driving.FileMatches{File: f.Name, Spans: spans})
		}
	}
	return out, nil
}

// Marks lists the marks of the active project that pass filter.
func (s *AnnotationService) Marks(filter domain.Filter) ([]driving.MarkSummary, error) {
	p, err := s.ws.Current()
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int, p.Marks.Len())
	for _, f := range p.Files.Values() {
		for _, o := range f.Occurrences {
			if !o.Mark.IsPending() {
				counts[o.Mark.ID()]++
			}
		}
	}
	var out []driving.MarkSummary
	for _, m := range p.Marks.Values() {
		if filter.Matches(m.Ref(), m.Type) {
			out = append(out, driving.MarkSummary{Mark: m, Count: counts[m.ID]})
		}
	}
	return out, nil
}

// RemoveMark deletes a mark with all its occurrences and group memberships.
func (s *AnnotationService) RemoveMark(ctx context.Context, mark string) error {
	return s.ws.Update(ctx, func(tx *Tx) error {
		p, err := tx.Project()
		if err != nil {
			return err
		}
		m, err := resolveMark(p, mark)
		if err != nil {
			return err
		}
		return tx.Apply(&mutations.RemoveMark{Project: p.Name, MarkID: m.ID})
	})
}

// RenameMark renames a mark.
func (s *AnnotationService) RenameMark(ctx context.Context, mark, name string) error {
	return s.ws.Update(ctx, func(tx *Tx) error {
		p, err := tx.Project()
		if err != nil {
			return err
		}
		m, err := resolveMark(p, mark)
		if err != nil {
			return err
		}
		return tx.Apply(&mutations.RenameMark{Project: p.Name, MarkID: m.ID, NewName: name, Options: tx.Options()})
	})
}

// RecolorMark sets a mark's colour.
func (s *AnnotationService) RecolorMark(ctx context.Context, mark, color string) error {
	return s.ws.Update(ctx, func(tx *Tx) error {
		p, err := tx.Project()
		if err != nil {
			return err
		}
		m, err := resolveMark(p, mark)
		if err != nil {
			return err
		}
		return tx.Apply(&mutations.RecolorMark{Project: p.Name, MarkID: m.ID, Color: color})
	})
}

// ResolveMark finds a mark of the active project by id or name.
func (s *AnnotationService) ResolveMark(mark string) (domain.Mark, error) {
	p, err := s.ws.Current()
	if err != nil {
		return domain.Mark{}, err
	}
	return resolveMark(p, mark)
}

// resolveMark looks mark up as an id first, then as a name.
func resolveMark(p *domain.Project, mark string) (domain.Mark, error) {
	if m, err := p.Mark(mark); err == nil {
		return m, nil
	}
	if m, ok := p.FindMarkByName(mark); ok {
		return m, nil
	}
	return domain.Mark{}, fmt.Errorf("mark %q: %w", mark, domain.ErrNotFound)
}

// resolveRef also accepts "pending:<term>" for live search occurrences.
func resolveRef(p *domain.Project, mark string) (domain.MarkRef, error) {
	if term, ok := strings.CutPrefix(mark, "pending:"); ok {
		return domain.PendingRef(term), nil
	}
	m, err := resolveMark(p, mark)
	if err != nil {
		return domain.MarkRef{}, err
	}
	return m.Ref(), nil
}
