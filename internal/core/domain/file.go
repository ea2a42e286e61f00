package domain

// TextFile holds raw content plus the occurrences recorded against it.
type TextFile struct {
	// Name is the file's key within its project.
	Name string

	// Content is the raw UTF-8 text.
	Content string

	// Occurrences are kept in insertion order; position order is derived on demand.
	Occurrences []Occurrence

	// Dirty is true once the content was edited away from its initial load.
	Dirty bool
}

// NewTextFile creates a file with no occurrences.
func NewTextFile(name, content string) *TextFile {
	return &TextFile{Name: name, Content: content}
}

// Clone returns a deep copy.
func (f *TextFile) Clone() *TextFile {
	if f == nil {
		return nil
	}
	cp := *f
	if f.Occurrences != nil {
		cp.Occurrences = make([]Occurrence, len(f.Occurrences))
		copy(cp.Occurrences, f.Occurrences)
	}
	return &cp
}

// Add appends occurrences and dedupes.
func (f *TextFile) Add(occs ...Occurrence) {
	f.Occurrences = DedupeOccurrences(append(f.Occurrences, occs...))
}

// RemoveWhere drops every occurrence for which drop returns true and
// reports how many were removed.
func (f *TextFile) RemoveWhere(drop func(Occurrence) bool) int {
	kept := f.Occurrences[:0:0]
	for _, o := range f.Occurrences {
		if !drop(o) {
			kept = append(kept, o)
		}
	}
	removed := len(f.Occurrences) - len(kept)
	f.Occurrences = kept
	return removed
}

// OccurrencesOf returns the occurrences bound to ref, in insertion order.
func (f *TextFile) OccurrencesOf(ref MarkRef) []Occurrence {
	var out []Occurrence
	for _, o := range f.Occurrences {
		if o.Mark == ref {
			out = append(out, o)
		}
	}
	return out
}

// Dedupe enforces the (mark, start, end) uniqueness invariant.
func (f *TextFile) Dedupe() {
	f.Occurrences = DedupeOccurrences(f.Occurrences)
}
