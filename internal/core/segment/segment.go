// Package segment partitions a file's content into minimal highlight segments.
//
// Boundaries come from occurrence edges, so no segment ever straddles an
// occurrence boundary. Each segment lists the marks whose occurrences fully
// contain it. The result is a pure function of content and occurrences and
// is cheap enough to rebuild on every render.
package segment

import (
	"sort"

	"github.com/custodia-labs/quala-cli/internal/core/domain"
)

// Opacity levels for highlighted segments.
const (
	FullOpacity = 1.0
	DimOpacity  = 0.5
)

// Segment is a contiguous run of content covered by the same set of marks.
type Segment struct {
	domain.Span

	// Text is content[Start:End].
	Text string

	// Marks are the covering marks in occurrence order, without repeats.
	Marks []domain.MarkRef
}

// Build splits content at every occurrence boundary. Occurrence spans are
// clamped to the content; the segments always tile [0, len(content)).
func Build(content string, occs []domain.Occurrence) []Segment {
	n := len(content)
	clamped := make([]domain.Span, len(occs))
	cuts := make([]int, 0, 2*len(occs)+2)
	cuts = append(cuts, 0, n)
	for i, o := range occs {
		clamped[i] = o.Span.Clamp(n)
		cuts = append(cuts, clamped[i].Start, clamped[i].End)
	}
	sort.Ints(cuts)

	segments := make([]Segment, 0, len(cuts))
	for i := 0; i+1 < len(cuts); i++ {
		s, e := cuts[i], cuts[i+1]
		if s >= e {
			continue
		}
		seg := Segment{Span: domain.Span{Start: s, End: e}, Text: content[s:e]}
		for j, o := range occs {
			if clamped[j].Start <= s && clamped[j].End >= e && !hasRef(seg.Marks, o.Mark) {
				seg.Marks = append(seg.Marks, o.Mark)
			}
		}
		segments = append(segments, seg)
	}
	return segments
}

func hasRef(refs []domain.MarkRef, ref domain.MarkRef) bool {
	for _, r := range refs {
		if r == ref {
			return true
		}
	}
	return false
}

// Visible keeps the occurrences whose mark passes filter.
func Visible(p *domain.Project, occs []domain.Occurrence, filter domain.Filter) []domain.Occurrence {
	out := make([]domain.Occurrence, 0, len(occs))
	for _, o := range occs {
		typ, ok := p.TypeOf(o.Mark)
		if !ok {
			continue
		}
		if filter.Matches(o.Mark, typ) {
			out = append(out, o)
		}
	}
	return out
}

// Style describes how a segment is painted.
type Style struct {
	// Colors has one entry for a single mark and several for a gradient.
	// Empty means plain text.
	Colors []string

	// Opacity is FullOpacity when a covering mark matches the highlight
	// filter and DimOpacity otherwise. Zero for plain text.
	Opacity float64
}

// IsPlain reports whether the segment renders without highlight.
func (s Style) IsPlain() bool {
	return len(s.Colors) == 0
}

// IsGradient reports whether several colours are combined.
func (s Style) IsGradient() bool {
	return len(s.Colors) > 1
}

// StyleOf resolves colours and opacity for seg within project p.
func StyleOf(p *domain.Project, seg Segment, highlight domain.Filter) Style {
	if len(seg.Marks) == 0 {
		return Style{}
	}
	st := Style{Colors: make([]string, 0, len(seg.Marks)), Opacity: DimOpacity}
	for _, ref := range seg.Marks {
		st.Colors = append(st.Colors, p.ColorOf(ref))
		if typ, ok := p.TypeOf(ref); ok && highlight.Matches(ref, typ) {
			st.Opacity = FullOpacity
		}
	}
	return st
}
