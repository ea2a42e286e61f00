package domain

import "strings"

// MarkType distinguishes manual annotations from saved searches.
type MarkType string

// Available mark types. The string values are part of the snapshot format.
const (
	// MarkTypeTag is a user-applied label on a selected span.
	MarkTypeTag MarkType = "Tag"

	// MarkTypeSearch is a saved substring query re-indexed across all files.
	MarkTypeSearch MarkType = "Search"
)

// IsValid returns true if the mark type is recognised.
func (t MarkType) IsValid() bool {
	return t == MarkTypeTag || t == MarkTypeSearch
}

// String returns the string representation.
func (t MarkType) String() string {
	return string(t)
}

// ParseMarkType accepts "tag" or "search" in any case.
func ParseMarkType(s string) (MarkType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "tag":
		return MarkTypeTag, true
	case "search":
		return MarkTypeSearch, true
	default:
		return "", false
	}
}

// Mark is a named, coloured annotation definition, independent of any text location.
type Mark struct {
	// ID is the durable identifier used by occurrences and groups.
	ID string

	// Type is Tag or Search.
	Type MarkType

	// Name is the display label. Unique within its type, ignoring case.
	// For searches it is also the query term.
	Name string

	// Color is a #rrggbb string.
	Color string
}

// Ref returns the permanent reference to this mark.
func (m Mark) Ref() MarkRef {
	return PermanentRef(m.ID)
}

// MarkRef identifies the mark an occurrence belongs to. It is either a
// permanent reference to a saved Mark or a pending reference to the live,
// unsaved search. Pending occurrences are never persisted.
//
// MarkRef is comparable and may be used as a map key.
type MarkRef struct {
	key     string
	pending bool
}

// PermanentRef references a saved mark by id.
func PermanentRef(id string) MarkRef {
	return MarkRef{key: id}
}

// PendingRef references the live search for term. Terms are compared
// case-insensitively, so the key is folded to lower case.
func PendingRef(term string) MarkRef {
	return MarkRef{key: strings.ToLower(term), pending: true}
}

// ID returns the mark id for permanent refs and the folded term for pending refs.
func (r MarkRef) ID() string {
	return r.key
}

// IsPending reports whether the ref belongs to an unsaved search.
func (r MarkRef) IsPending() bool {
	return r.pending
}

// IsZero reports whether the ref is unset.
func (r MarkRef) IsZero() bool {
	return r.key == "" && !r.pending
}

// String returns a display form; pending refs are prefixed with "pending:".
func (r MarkRef) String() string {
	if r.pending {
		return "pending:" + r.key
	}
	return r.key
}
