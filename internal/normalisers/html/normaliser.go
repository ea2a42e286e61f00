package html

import (
	"context"
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/custodia-labs/quala-cli/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles HTML documents.
type Normaliser struct {
	policy *bluemonday.Policy
}

// New creates a new HTML normaliser.
func New() *Normaliser {
	return &Normaliser{policy: bluemonday.StrictPolicy()}
}

// Extensions returns the extensions this normaliser handles.
func (n *Normaliser) Extensions() []string {
	return []string{".html", ".htm", ".xhtml"}
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 50
}

// Normalise converts an HTML document to plain text.
func (n *Normaliser) Normalise(_ context.Context, _ string, raw []byte) (string, error) {
	return StripHTML(n.policy, string(raw)), nil
}

var (
	headTag       = regexp.MustCompile(`(?is)<head[^>]*>.*?</head>`)
	svgTag        = regexp.MustCompile(`(?is)<svg[^>]*>.*?</svg>`)
	noscriptTag   = regexp.MustCompile(`(?is)<noscript[^>]*>.*?</noscript>`)
	htmlComments  = regexp.MustCompile(`(?s)<!--.*?-->`)
	blockElements = regexp.MustCompile(`(?i)</(p|div|h[1-6]|blockquote|pre|table|section|article|ul|ol)>`)
	lineElements  = regexp.MustCompile(`(?i)</(li|tr)>|<br\s*/?>`)
	hrTags        = regexp.MustCompile(`(?i)<hr\s*/?>`)
	multiSpaces   = regexp.MustCompile(`[ \t]+`)
)

// StripHTML removes markup with policy and returns the readable text.
// Block elements end paragraphs; list items and <br> end lines.
func StripHTML(policy *bluemonday.Policy, content string) string {
	content = headTag.ReplaceAllString(content, "")
	content = svgTag.ReplaceAllString(content, "")
	content = noscriptTag.ReplaceAllString(content, "")
	content = htmlComments.ReplaceAllString(content, "")

	content = blockElements.ReplaceAllString(content, "\n\n")
	content = lineElements.ReplaceAllString(content, "\n")
	content = hrTags.ReplaceAllString(content, "\n\n")

	content = html.UnescapeString(policy.Sanitize(content))
	content = multiSpaces.ReplaceAllString(content, " ")
	return collapseBlankLines(content)
}

// collapseBlankLines trims every line and keeps at most one empty line
// between paragraphs.
func collapseBlankLines(content string) string {
	lines := strings.Split(content, "\n")
	out := make([]string, 0, len(lines))
	blank := true
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			if !blank {
				out = append(out, "")
			}
			blank = true
			continue
		}
		out = append(out, line)
		blank = false
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}
