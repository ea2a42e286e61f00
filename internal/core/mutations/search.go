package mutations

import (
	"strings"

	"github.com/custodia-labs/quala-cli/internal/core/domain"
	"github.com/custodia-labs/quala-cli/internal/core/indexer"
)

// SaveSearch turns a term into a permanent Search mark indexed against
// every file of the project. The term's pending occurrences are replaced by
// permanent ones. An existing Search of the same name is never overwritten,
// but the term's pending occurrences are dropped either way.
type SaveSearch struct {
	Project string
	Term    string
	Options indexer.Options

	// MarkID is set to the saved or already existing mark.
	MarkID string
	// Created is false when the search already existed.
	Created bool
}

// Name implements Mutation.
func (m *SaveSearch) Name() string { return "save search" }

// Apply implements Mutation.
func (m *SaveSearch) Apply(st *domain.AppState) error {
	term := strings.TrimSpace(m.Term)
	if term == "" {
		return domain.ErrEmptyTerm
	}
	p, err := lookupProject(st, m.Project)
	if err != nil {
		return err
	}
	mark, created := resolveMark(p, domain.MarkTypeSearch, term)
	m.MarkID, m.Created = mark.ID, created
	pending := domain.PendingRef(term)
	for _, f := range p.Files.Values() {
		f.RemoveWhere(func(o domain.Occurrence) bool { return o.Mark == pending })
	}
	if !created {
		return nil
	}
	for _, f := range p.Files.Values() {
		if err := indexInto(f, mark.Ref(), term, m.Options); err != nil {
			return err
		}
	}
	return nil
}

// ApplySynonyms saves every accepted synonym candidate as a Search mark in
// one transition. Blank candidates are skipped.
type ApplySynonyms struct {
	Project string
	Terms   []string
	Options indexer.Options

	// MarkIDs lists the mark behind each non-blank term, in order.
	MarkIDs []string
}

// Name implements Mutation.
func (m *ApplySynonyms) Name() string { return "apply synonyms" }

// Apply implements Mutation.
func (m *ApplySynonyms) Apply(st *domain.AppState) error {
	m.MarkIDs = m.MarkIDs[:0]
	for _, term := range m.Terms {
		if strings.TrimSpace(term) == "" {
			continue
		}
		save := &SaveSearch{Project: m.Project, Term: term, Options: m.Options}
		if err := save.Apply(st); err != nil {
			return err
		}
		m.MarkIDs = append(m.MarkIDs, save.MarkID)
	}
	return nil
}

// SetLiveSearch replaces the temporary search results. Pending occurrences
// of any previous live term are dropped from every file and the new term is
// scanned in the active file only. An empty term only clears.
type SetLiveSearch struct {
	Project string
	File    string
	Term    string
	Options indexer.Options

	// Found is the number of pending occurrences added.
	Found int
}

// Name implements Mutation.
func (m *SetLiveSearch) Name() string { return "live search" }

// Apply implements Mutation.
func (m *SetLiveSearch) Apply(st *domain.AppState) error {
	p, f, err := lookupFile(st, m.Project, m.File)
	if err != nil {
		return err
	}
	clearPending(p)
	term := strings.TrimSpace(m.Term)
	if term == "" {
		m.Found = 0
		return nil
	}
	before := len(f.Occurrences)
	if err := indexInto(f, domain.PendingRef(term), term, m.Options); err != nil {
		return err
	}
	m.Found = len(f.Occurrences) - before
	return nil
}

// ClearLiveSearch drops all pending occurrences of the project.
type ClearLiveSearch struct {
	Project string
}

// Name implements Mutation.
func (m *ClearLiveSearch) Name() string { return "clear live search" }

// Apply implements Mutation.
func (m *ClearLiveSearch) Apply(st *domain.AppState) error {
	p, err := lookupProject(st, m.Project)
	if err != nil {
		return err
	}
	clearPending(p)
	return nil
}

// RefreshAllSearches re-derives every Search occurrence from current file
// contents and the configured expansion. Tag occurrences are untouched.
// When LiveTerm is set it is re-scanned in LiveFile as a pending search.
type RefreshAllSearches struct {
	Project  string
	Options  indexer.Options
	LiveTerm string
	LiveFile string
}

// Name implements Mutation.
func (m *RefreshAllSearches) Name() string { return "refresh searches" }

// Apply implements Mutation.
func (m *RefreshAllSearches) Apply(st *domain.AppState) error {
	p, err := lookupProject(st, m.Project)
	if err != nil {
		return err
	}
	searches := p.MarksOfType(domain.MarkTypeSearch)
	for _, f := range p.Files.Values() {
		f.RemoveWhere(func(o domain.Occurrence) bool {
			typ, _ := p.TypeOf(o.Mark)
			return typ == domain.MarkTypeSearch
		})
		for _, mark := range searches {
			if err := indexInto(f, mark.Ref(), mark.Name, m.Options); err != nil {
				return err
			}
		}
	}
	term := strings.TrimSpace(m.LiveTerm)
	if term == "" || m.LiveFile == "" {
		return nil
	}
	f, err := p.File(m.LiveFile)
	if err != nil {
		// the live file may have been removed since the search started
		return nil
	}
	return indexInto(f, domain.PendingRef(term), term, m.Options)
}

func clearPending(p *domain.Project) {
	for _, f := range p.Files.Values() {
		f.RemoveWhere(func(o domain.Occurrence) bool { return o.Mark.IsPending() })
	}
}
