// Package markdown provides a Normaliser for Markdown documents. Formatting
// is dropped while headings, paragraphs and code blocks stay separate
// paragraphs of the imported text.
package markdown

import (
	"bytes"
	"context"
	"regexp"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/ast"
	"github.com/gomarkdown/markdown/parser"
	"github.com/microcosm-cc/bluemonday"

	"github.com/custodia-labs/quala-cli/internal/core/ports/driven"
	"github.com/custodia-labs/quala-cli/internal/normalisers/html"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles Markdown documents.
type Normaliser struct {
	policy *bluemonday.Policy
}

// New creates a new Markdown normaliser.
func New() *Normaliser {
	return &Normaliser{policy: bluemonday.StrictPolicy()}
}

// Extensions returns the extensions this normaliser handles.
func (n *Normaliser) Extensions() []string {
	return []string{".md", ".markdown"}
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 50
}

// Normalise converts Markdown to plain text.
func (n *Normaliser) Normalise(_ context.Context, _ string, raw []byte) (string, error) {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	doc := markdown.Parse(raw, p)

	var b strings.Builder
	ast.WalkFunc(doc, func(node ast.Node, entering bool) ast.WalkStatus {
		switch node := node.(type) {
		case *ast.Text:
			b.Write(node.Literal)
		case *ast.Code:
			b.Write(node.Literal)
		case *ast.Softbreak, *ast.Hardbreak:
			b.WriteByte('\n')
		case *ast.Image:
			return ast.SkipChildren
		case *ast.HTMLSpan:
			b.WriteString(html.StripHTML(n.policy, string(node.Literal)))
		case *ast.HTMLBlock:
			b.WriteString(html.StripHTML(n.policy, string(node.Literal)))
			b.WriteString("\n\n")
		case *ast.CodeBlock:
			b.Write(bytes.TrimRight(node.Literal, "\n"))
			b.WriteString("\n\n")
		case *ast.HorizontalRule:
			b.WriteString("\n\n")
		case *ast.TableCell:
			if !entering {
				b.WriteByte('\t')
			}
		case *ast.TableRow, *ast.List:
			if !entering {
				b.WriteByte('\n')
			}
		case *ast.Paragraph, *ast.Heading, *ast.BlockQuote:
			if entering {
				break
			}
			if _, inItem := node.GetParent().(*ast.ListItem); inItem {
				b.WriteByte('\n')
			} else {
				b.WriteString("\n\n")
			}
		}
		return ast.GoToNext
	})
	return tidy(b.String()), nil
}

var (
	trailingSpace = regexp.MustCompile(`(?m)[ \t]+$`)
	blankRuns     = regexp.MustCompile(`\n{3,}`)
)

func tidy(s string) string {
	s = trailingSpace.ReplaceAllString(s, "")
	s = blankRuns.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
