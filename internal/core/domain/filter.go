package domain

import "strings"

// FilterKind selects which marks a Filter accepts.
type FilterKind string

// Available filter kinds.
const (
	FilterAll      FilterKind = "all"
	FilterTags     FilterKind = "tags"
	FilterSearches FilterKind = "searches"
	FilterMark     FilterKind = "mark"
)

// Filter decides which marks are shown, or highlighted at full opacity.
// The zero value accepts everything.
type Filter struct {
	Kind FilterKind

	// Mark is the single accepted mark when Kind is FilterMark.
	Mark MarkRef
}

// MarkFilter accepts only ref.
func MarkFilter(ref MarkRef) Filter {
	return Filter{Kind: FilterMark, Mark: ref}
}

// Matches reports whether an occurrence of ref with type typ passes the filter.
func (f Filter) Matches(ref MarkRef, typ MarkType) bool {
	switch f.Kind {
	case "", FilterAll:
		return true
	case FilterTags:
		return typ == MarkTypeTag
	case FilterSearches:
		return typ == MarkTypeSearch
	case FilterMark:
		return ref == f.Mark
	default:
		return false
	}
}

// String returns the filter in the form accepted by ParseFilter.
func (f Filter) String() string {
	if f.Kind == FilterMark {
		return f.Mark.ID()
	}
	if f.Kind == "" {
		return string(FilterAll)
	}
	return string(f.Kind)
}

// ParseFilter accepts "all", "tags", "searches" or a mark id.
func ParseFilter(s string) Filter {
	switch FilterKind(strings.ToLower(strings.TrimSpace(s))) {
	case "", FilterAll:
		return Filter{Kind: FilterAll}
	case FilterTags:
		return Filter{Kind: FilterTags}
	case FilterSearches:
		return Filter{Kind: FilterSearches}
	default:
		return MarkFilter(PermanentRef(strings.TrimSpace(s)))
	}
}
