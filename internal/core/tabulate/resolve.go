package tabulate

import (
	"github.com/custodia-labs/quala-cli/internal/core/domain"
	"github.com/custodia-labs/quala-cli/internal/core/indexer"
)

// spansByFile maps a file name to spans, deduped by (start, end).
type spansByFile map[string][]domain.Span

func (s spansByFile) add(file string, spans ...domain.Span) {
	for _, sp := range spans {
		dup := false
		for _, have := range s[file] {
			if have == sp {
				dup = true
				break
			}
		}
		if !dup {
			s[file] = append(s[file], sp)
		}
	}
}

type resolver struct {
	project *domain.Project
	opts    Options
	memo    map[string]spansByFile
}

// resolve turns a row or column name into spans.
// Ids are tried before names and marks win over groups. Anything else is
// scanned as a search term.
func (r *resolver) resolve(name string) (spansByFile, error) {
	if s, ok := r.memo[name]; ok {
		return s, nil
	}
	var (
		out spansByFile
		err error
	)
	mark, isMark := r.lookupMark(name)
	g, isGroup := r.lookupGroup(name)
	switch {
	case isMark:
		out, err = r.mark(mark)
	case isGroup:
		out, err = r.group(g)
	default:
		out, err = r.scan(name)
	}
	if err != nil {
		return nil, err
	}
	r.memo[name] = out
	return out, nil
}

func (r *resolver) lookupMark(name string) (domain.Mark, bool) {
	if m, err := r.project.Mark(name); err == nil {
		return m, true
	}
	return r.project.FindMarkByName(name)
}

func (r *resolver) lookupGroup(name string) (domain.Group, bool) {
	if g, err := r.project.Group(name); err == nil {
		return g, true
	}
	return r.project.FindGroupByName(name)
}

func (r *resolver) mark(m domain.Mark) (spansByFile, error) {
	if m.Type == domain.MarkTypeSearch {
		return r.scan(m.Name)
	}
	out := make(spansByFile)
	for _, f := range r.project.Files.Values() {
		for _, o := range f.OccurrencesOf(m.Ref()) {
			out.add(f.Name, indexer.Expand(o.Span, f.Content, r.opts.Expansion))
		}
	}
	return out, nil
}

func (r *resolver) group(g domain.Group) (spansByFile, error) {
	out := make(spansByFile)
	for _, id := range g.Marks {
		m, err := r.project.Mark(id)
		if err != nil {
			return nil, err
		}
		member, err := r.mark(m)
		if err != nil {
			return nil, err
		}
		for _, file := range r.project.Files.Keys() {
			out.add(file, member[file]...)
		}
	}
	return out, nil
}

func (r *resolver) scan(term string) (spansByFile, error) {
	out := make(spansByFile)
	for _, f := range r.project.Files.Values() {
		spans, err := r.opts.scan(term, f.Content)
		if err != nil {
			return nil, err
		}
		out.add(f.Name, spans...)
	}
	return out, nil
}
