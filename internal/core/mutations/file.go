package mutations

import (
	"fmt"

	"github.com/custodia-labs/quala-cli/internal/core/domain"
)

// AddFile creates a file with no occurrences. The name is validated and
// receives a .txt suffix when it has no extension.
type AddFile struct {
	Project string
	File    string
	Content string
}

// Name implements Mutation.
func (m *AddFile) Name() string { return "add file" }

// Apply implements Mutation.
func (m *AddFile) Apply(st *domain.AppState) error {
	p, err := lookupProject(st, m.Project)
	if err != nil {
		return err
	}
	name, err := domain.NormalizeFileName(m.File)
	if err != nil {
		return err
	}
	if p.Files.Has(name) {
		return fmt.Errorf("file %q: %w", name, domain.ErrAlreadyExists)
	}
	p.Files.Set(name, domain.NewTextFile(name, m.Content))
	m.File = name
	return nil
}

// RemoveFile deletes a file; its occurrences vanish with it.
type RemoveFile struct {
	Project string
	File    string
}

// Name implements Mutation.
func (m *RemoveFile) Name() string { return "remove file" }

// Apply implements Mutation.
func (m *RemoveFile) Apply(st *domain.AppState) error {
	p, _, err := lookupFile(st, m.Project, m.File)
	if err != nil {
		return err
	}
	p.Files.Delete(m.File)
	return nil
}

// RenameFile rewrites a file's key, keeping its position and occurrences.
type RenameFile struct {
	Project string
	From    string
	To      string
}

// Name implements Mutation.
func (m *RenameFile) Name() string { return "rename file" }

// Apply implements Mutation.
func (m *RenameFile) Apply(st *domain.AppState) error {
	p, f, err := lookupFile(st, m.Project, m.From)
	if err != nil {
		return err
	}
	to, err := domain.NormalizeFileName(m.To)
	if err != nil {
		return err
	}
	if to != m.From && p.Files.Has(to) {
		return fmt.Errorf("file %q: %w", to, domain.ErrAlreadyExists)
	}
	p.Files.Rename(m.From, to)
	f.Name = to
	m.To = to
	return nil
}

// EditContent replaces a file's content and marks it dirty.
// Stored occurrence offsets are not repaired; RefreshAllSearches re-derives
// search occurrences, tag offsets stay as they were.
type EditContent struct {
	Project string
	File    string
	Content string
}

// Name implements Mutation.
func (m *EditContent) Name() string { return "edit content" }

// Apply implements Mutation.
func (m *EditContent) Apply(st *domain.AppState) error {
	_, f, err := lookupFile(st, m.Project, m.File)
	if err != nil {
		return err
	}
	if f.Content == m.Content {
		return nil
	}
	f.Content = m.Content
	f.Dirty = true
	return nil
}
