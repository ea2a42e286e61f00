package domain

// Group is a named, user-curated set of marks.
type Group struct {
	ID    string
	Name  string
	Color string

	// Marks is an ordered set of mark ids. Membership only, never positions.
	Marks []string
}

// Clone returns a deep copy.
func (g Group) Clone() Group {
	if g.Marks != nil {
		marks := make([]string, len(g.Marks))
		copy(marks, g.Marks)
		g.Marks = marks
	}
	return g
}

// Has reports membership of markID.
func (g Group) Has(markID string) bool {
	for _, id := range g.Marks {
		if id == markID {
			return true
		}
	}
	return false
}

// Without returns a copy of the group with markID removed.
func (g Group) Without(markID string) Group {
	out := g.Clone()
	kept := out.Marks[:0]
	for _, id := range out.Marks {
		if id != markID {
			kept = append(kept, id)
		}
	}
	out.Marks = kept
	return out
}

// UniqueIDs returns ids with duplicates and blanks removed, first occurrence wins.
func UniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
