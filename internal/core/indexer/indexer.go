// Package indexer finds the occurrences of a search term in a file's content.
//
// The scan is a plain case-insensitive substring search. Every match start
// is reported, including matches that overlap a previous match, and each
// raw match may be grown to its enclosing sentence or paragraph.
package indexer

import (
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/quala-cli/internal/core/domain"
)

// Options configures a scan.
type Options struct {
	// Expansion grows each raw match. Empty means none.
	Expansion domain.Expansion

	// MaxMatches caps the number of matches collected. Zero or negative
	// means domain.DefaultMaxMatches. Hitting the cap truncates silently.
	MaxMatches int
}

func (o Options) limit() int {
	if o.MaxMatches <= 0 {
		return domain.DefaultMaxMatches
	}
	return o.MaxMatches
}

// Index returns the span of every case-insensitive occurrence of term in
// content, expanded according to opts. Spans are in ascending start order
// and are not deduplicated: two raw matches in one sentence yield the same
// sentence span twice.
func Index(term, content string, opts Options) ([]domain.Span, error) {
	if term == "" {
		return nil, domain.ErrEmptyTerm
	}
	raw := Matches(term, content, opts.limit())
	if opts.Expansion == "" || opts.Expansion == domain.ExpansionNone {
		return raw, nil
	}
	for i, s := range raw {
		raw[i] = Expand(s, content, opts.Expansion)
	}
	return raw, nil
}

// Matches returns raw match spans of term in content, at most limit of them.
func Matches(term, content string, limit int) []domain.Span {
	if term == "" || len(term) > len(content) || limit <= 0 {
		return nil
	}
	if isASCII(term) && isASCII(content) {
		return asciiMatches(strings.ToLower(term), strings.ToLower(content), limit)
	}
	return foldMatches(term, content, limit)
}

// asciiMatches scans lower-cased copies; lower-casing ASCII keeps byte offsets.
func asciiMatches(term, content string, limit int) []domain.Span {
	var spans []domain.Span
	for from := 0; from <= len(content)-len(term); {
		i := strings.Index(content[from:], term)
		if i < 0 {
			break
		}
		start := from + i
		spans = append(spans, domain.Span{Start: start, End: start + len(term)})
		if len(spans) >= limit {
			break
		}
		from = start + 1
	}
	return spans
}

// foldMatches compares a term-sized window at every rune boundary using
// Unicode case folding. Windows are measured in bytes, so folds that change
// the encoded length are not matched.
func foldMatches(term, content string, limit int) []domain.Span {
	var spans []domain.Span
	for i := 0; i+len(term) <= len(content); {
		if strings.EqualFold(content[i:i+len(term)], term) {
			spans = append(spans, domain.Span{Start: i, End: i + len(term)})
			if len(spans) >= limit {
				break
			}
		}
		_, size := utf8.DecodeRuneInString(content[i:])
		i += size
	}
	return spans
}

// Expand grows span to the unit selected by e. The span is clamped to the
// content first, so stale offsets from before an edit never panic.
func Expand(span domain.Span, content string, e domain.Expansion) domain.Span {
	span = span.Clamp(len(content))
	switch e {
	case domain.ExpansionSentence:
		return sentence(span, content)
	case domain.ExpansionParagraph:
		return paragraph(span, content)
	default:
		return span
	}
}

// sentence extends to one past the previous '.' and through the next '.',
// then trims one space from each end.
func sentence(span domain.Span, content string) domain.Span {
	start := strings.LastIndexByte(content[:span.Start], '.') + 1
	end := len(content)
	if i := strings.IndexByte(content[span.End:], '.'); i >= 0 {
		end = span.End + i + 1
	}
	if start < end && content[start] == ' ' {
		start++
	}
	if end > start && content[end-1] == ' ' {
		end--
	}
	return domain.Span{Start: start, End: end}
}

// paragraph extends to just after the previous blank line and up to the next one.
func paragraph(span domain.Span, content string) domain.Span {
	start := 0
	if i := strings.LastIndex(content[:span.Start], "\n\n"); i >= 0 {
		start = i + 2
	}
	end := len(content)
	if i := strings.Index(content[span.End:], "\n\n"); i >= 0 {
		end = span.End + i
	}
	return domain.Span{Start: start, End: end}
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
