package domain

import (
	"fmt"
	"strings"
)

// Expansion is the rule for growing a raw match to its enclosing unit.
type Expansion string

// Available expansion policies.
const (
	// ExpansionNone keeps the raw match span.
	ExpansionNone Expansion = "none"

	// ExpansionSentence grows the span to the enclosing '.'-delimited sentence.
	ExpansionSentence Expansion = "sentence"

	// ExpansionParagraph grows the span to the enclosing blank-line-delimited paragraph.
	ExpansionParagraph Expansion = "paragraph"
)

// IsValid returns true if the expansion is recognised.
func (e Expansion) IsValid() bool {
	switch e {
	case ExpansionNone, ExpansionSentence, ExpansionParagraph:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (e Expansion) String() string {
	return string(e)
}

// Description returns a human-readable description.
func (e Expansion) Description() string {
	switch e {
	case ExpansionNone:
		return "None (exact match)"
	case ExpansionSentence:
		return "Sentence"
	case ExpansionParagraph:
		return "Paragraph"
	default:
		return unknownDescription
	}
}

// ParseExpansion parses a policy name. The empty string means none.
func ParseExpansion(s string) (Expansion, error) {
	e := Expansion(strings.ToLower(strings.TrimSpace(s)))
	if e == "" {
		return ExpansionNone, nil
	}
	if !e.IsValid() {
		return "", fmt.Errorf("expansion %q: %w", s, ErrInvalidInput)
	}
	return e, nil
}
