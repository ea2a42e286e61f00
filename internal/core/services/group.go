package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/quala-cli/internal/core/domain"
	"github.com/custodia-labs/quala-cli/internal/core/mutations"
	"github.com/custodia-labs/quala-cli/internal/core/ports/driving"
)

// Ensure GroupService implements the interface.
var _ driving.GroupService = (*GroupService)(nil)

// GroupService manages mark groups of the active project.
type GroupService struct {
	ws *Workspace
}

// NewGroupService creates a new group service.
func NewGroupService(ws *Workspace) *GroupService {
	return &GroupService{ws: ws}
}

// List returns the groups of the active project.
func (s *GroupService) List() ([]domain.Group, error) {
	p, err := s.ws.Current()
	if err != nil {
		return nil, err
	}
	return p.Groups.Values(), nil
}

// Create adds a group with the given members and returns its id.
func (s *GroupService) Create(ctx context.Context, name string, marks []string) (string, error) {
	var id string
	err := s.ws.Update(ctx, func(tx *Tx) error {
		p, err := tx.Project()
		if err != nil {
			return err
		}
		ids, err := markIDs(p, marks)
		if err != nil {
			return err
		}
		m := &mutations.CreateGroup{Project: p.Name, Group: name, Marks: ids}
		if err := tx.Apply(m); err != nil {
			return err
		}
		id = m.GroupID
		return nil
	})
	return id, err
}

// SetMarks replaces a group's members.
func (s *GroupService) SetMarks(ctx context.Context, group string, marks []string) error {
	return s.update(ctx, group, func(p *domain.Project, m *mutations.UpdateGroup) error {
		ids, err := markIDs(p, marks)
		if err != nil {
			return err
		}
		m.SetMarks, m.Marks = true, ids
		return nil
	})
}

// Rename renames a group.
func (s *GroupService) Rename(ctx context.Context, group, name string) error {
	if _, err := domain.NormalizeName(name); err != nil {
		return err
	}
	return s.update(ctx, group, func(_ *domain.Project, m *mutations.UpdateGroup) error {
		m.Group = name
		return nil
	})
}

// Recolor sets a group's colour.
func (s *GroupService) Recolor(ctx context.Context, group, color string) error {
	if _, err := domain.NormalizeColor(color); err != nil {
		return err
	}
	return s.update(ctx, group, func(_ *domain.Project, m *mutations.UpdateGroup) error {
		m.Color = color
		return nil
	})
}

// Remove deletes a group. Member marks are kept.
func (s *GroupService) Remove(ctx context.Context, group string) error {
	return s.ws.Update(ctx, func(tx *Tx) error {
		p, err := tx.Project()
		if err != nil {
			return err
		}
		g, err := resolveGroup(p, group)
		if err != nil {
			return err
		}
		return tx.Apply(&mutations.RemoveGroup{Project: p.Name, GroupID: g.ID})
	})
}

// Materialize saves a group as a new Tag and returns the tag id.
func (s *GroupService) Materialize(ctx context.Context, group, tag string) (string, error) {
	var id string
	err := s.ws.Update(ctx, func(tx *Tx) error {
		p, err := tx.Project()
		if err != nil {
			return err
		}
		g, err := resolveGroup(p, group)
		if err != nil {
			return err
		}
		m := &mutations.MaterializeGroup{Project: p.Name, GroupID: g.ID, Tag: tag}
		if err := tx.Apply(m); err != nil {
			return err
		}
		id = m.MarkID
		return nil
	})
	return id, err
}

func (s *GroupService) update(ctx context.Context, group string, edit func(*domain.Project, *mutations.UpdateGroup) error) error {
	return s.ws.Update(ctx, func(tx *Tx) error {
		p, err := tx.Project()
		if err != nil {
			return err
		}
		g, err := resolveGroup(p, group)
		if err != nil {
			return err
		}
		m := &mutations.UpdateGroup{Project: p.Name, GroupID: g.ID}
		if err := edit(p, m); err != nil {
			return err
		}
		return tx.Apply(m)
	})
}

func resolveGroup(p *domain.Project, group string) (domain.Group, error) {
	if g, err := p.Group(group); err == nil {
		return g, nil
	}
	if g, ok := p.FindGroupByName(group); ok {
		return g, nil
	}
	return domain.Group{}, fmt.Errorf("group %q: %w", group, domain.ErrNotFound)
}

func markIDs(p *domain.Project, marks []string) ([]string, error) {
	ids := make([]string, 0, len(marks))
	for _, name := range marks {
		m, err := resolveMark(p, name)
		if err != nil {
			return nil, err
		}
		ids = append(ids, m.ID)
	}
	return ids, nil
}
