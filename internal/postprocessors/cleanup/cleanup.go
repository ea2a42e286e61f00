// Package cleanup provides small text post-processors for imported files.
package cleanup

import (
	"context"
	"strings"

	"github.com/custodia-labs/quala-cli/internal/core/ports/driven"
)

// Processor names as used in import.postprocessors.
const (
	NameBOM           = "bom"
	NameNewlines      = "newlines"
	NameTrailingSpace = "trailing-space"
)

var (
	_ driven.PostProcessor = (*BOM)(nil)
	_ driven.PostProcessor = (*Newlines)(nil)
	_ driven.PostProcessor = (*TrailingSpace)(nil)
)

// BOM strips a leading UTF-8 byte order mark.
type BOM struct{}

// NewBOM creates a BOM stripper.
func NewBOM() *BOM { return &BOM{} }

// Name returns the processor name.
func (p *BOM) Name() string { return NameBOM }

// Process removes the byte order mark.
func (p *BOM) Process(_ context.Context, text string) (string, error) {
	return strings.TrimPrefix(text, "\ufeff"), nil
}

// Newlines folds CRLF and lone CR into LF, so offsets and paragraph
// breaks mean the same on every platform.
type Newlines struct {
	maxBlank int
}

// Option configures the Newlines processor.
type Option func(*Newlines)

// WithMaxBlankLines caps runs of empty lines at n.
func WithMaxBlankLines(n int) Option {
	return func(p *Newlines) {
		if n > 0 {
			p.maxBlank = n
		}
	}
}

// NewNewlines creates a newline folding processor.
func NewNewlines(opts ...Option) *Newlines {
	p := &Newlines{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name returns the processor name.
func (p *Newlines) Name() string { return NameNewlines }

// Process folds line endings.
func (p *Newlines) Process(_ context.Context, text string) (string, error) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	if p.maxBlank == 0 {
		return text, nil
	}

	limit := strings.Repeat("\n", p.maxBlank+2)
	keep := limit[:p.maxBlank+1]
	for strings.Contains(text, limit) {
		text = strings.ReplaceAll(text, limit, keep)
	}
	return text, nil
}

// TrailingSpace removes spaces and tabs at the end of every line.
type TrailingSpace struct{}

// NewTrailingSpace creates a trailing whitespace trimmer.
func NewTrailingSpace() *TrailingSpace { return &TrailingSpace{} }

// Name returns the processor name.
func (p *TrailingSpace) Name() string { return NameTrailingSpace }

// Process trims each line's right edge.
func (p *TrailingSpace) Process(_ context.Context, text string) (string, error) {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n"), nil
}
