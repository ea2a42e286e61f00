package domain

// Span is a half-open byte interval [Start, End) into a file's content.
type Span struct {
	Start int
	End   int
}

// Len returns the span length, or 0 for inverted spans.
func (s Span) Len() int {
	if s.End < s.Start {
		return 0
	}
	return s.End - s.Start
}

// IsEmpty reports whether the span covers no bytes.
func (s Span) IsEmpty() bool {
	return s.End <= s.Start
}

// Within reports whether 0 <= Start <= End <= n.
func (s Span) Within(n int) bool {
	return s.Start >= 0 && s.Start <= s.End && s.End <= n
}

// Overlaps reports half-open interval overlap: max(starts) < min(ends).
func (s Span) Overlaps(o Span) bool {
	return max(s.Start, o.Start) < min(s.End, o.End)
}

// Covers reports whether s fully contains o.
func (s Span) Covers(o Span) bool {
	return s.Start <= o.Start && s.End >= o.End
}

// Clamp restricts the span to [0, n].
func (s Span) Clamp(n int) Span {
	s.Start = min(max(s.Start, 0), n)
	s.End = min(max(s.End, s.Start), n)
	return s
}

// Occurrence is one concrete span of one file bound to a mark.
type Occurrence struct {
	// Mark is the owning mark (a back-reference, not ownership).
	Mark MarkRef

	// Span is the location in the file's content at creation time.
	Span

	// Text caches content[Start:End] as it was when the occurrence was created.
	Text string
}

// NewOccurrence builds an occurrence and caches its text from content.
// Out-of-range spans are clamped before slicing.
func NewOccurrence(ref MarkRef, span Span, content string) Occurrence {
	c := span.Clamp(len(content))
	return Occurrence{Mark: ref, Span: span, Text: content[c.Start:c.End]}
}

// OccurrenceKey is the uniqueness key of an occurrence within a file.
type OccurrenceKey struct {
	Mark  MarkRef
	Start int
	End   int
}

// Key returns the (mark, start, end) triple.
func (o Occurrence) Key() OccurrenceKey {
	return OccurrenceKey{Mark: o.Mark, Start: o.Start, End: o.End}
}

// DedupeOccurrences drops later occurrences sharing a key with an earlier one.
// Insertion order of the survivors is preserved.
func DedupeOccurrences(occs []Occurrence) []Occurrence {
	if len(occs) < 2 {
		return occs
	}
	seen := make(map[OccurrenceKey]struct{}, len(occs))
	out := occs[:0:0]
	for _, o := range occs {
		k := o.Key()
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, o)
	}
	return out
}
