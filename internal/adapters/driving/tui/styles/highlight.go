package styles

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/quala-cli/internal/core/ports/driving"
	"github.com/custodia-labs/quala-cli/internal/core/segment"
)

// Highlighter paints rendered segments for a terminal.
type Highlighter struct {
	theme *Theme
	plain bool
}

// NewHighlighter paints highlights as background colours. Dimmed segments
// are blended towards the theme background.
func NewHighlighter(theme *Theme) *Highlighter {
	if theme == nil {
		theme = DefaultTheme()
	}
	return &Highlighter{theme: theme}
}

// NewPlainHighlighter marks full-opacity segments with square brackets and
// leaves everything else as is. Used when output is not a terminal.
func NewPlainHighlighter() *Highlighter {
	return &Highlighter{theme: DefaultTheme(), plain: true}
}

// Render paints a whole rendering.
func (h *Highlighter) Render(r *driving.Rendering) string {
	if r == nil {
		return ""
	}
	var b strings.Builder
	for _, seg := range r.Segments {
		b.WriteString(h.Segment(seg))
	}
	return b.String()
}

// Segment paints one segment. A gradient splits the text into one band per colour.
func (h *Highlighter) Segment(seg driving.StyledSegment) string {
	if seg.Style.IsPlain() {
		return seg.Text
	}
	if h.plain {
		if seg.Style.Opacity >= segment.FullOpacity {
			return "[" + seg.Text + "]"
		}
		return seg.Text
	}

	bg := string(h.theme.Background)
	fg := h.theme.OnHighlight
	if seg.Style.Opacity < segment.FullOpacity {
		fg = h.theme.Muted
	}

	bands := splitRunes(seg.Text, len(seg.Style.Colors))
	var b strings.Builder
	for i, text := range bands {
		color := Blend(seg.Style.Colors[i], bg, seg.Style.Opacity)
		style := lipgloss.NewStyle().Background(lipgloss.Color(color)).Foreground(fg)
		b.WriteString(paintLines(style, text))
	}
	return b.String()
}

// paintLines styles each line separately so lipgloss does not pad
// multi-line text into a block.
func paintLines(style lipgloss.Style, text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = style.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}

// splitRunes cuts text into n runs of nearly equal rune count. Runs may
// be empty when text is shorter than n.
func splitRunes(text string, n int) []string {
	if n <= 1 {
		return []string{text}
	}
	runes := []rune(text)
	out := make([]string, n)
	for i := range out {
		start := i * len(runes) / n
		end := (i + 1) * len(runes) / n
		out[i] = string(runes[start:end])
	}
	return out
}

// Blend mixes two #rrggbb colours: alpha*fg + (1-alpha)*bg.
// An unparsable colour is returned unchanged.
func Blend(fg, bg string, alpha float64) string {
	f, ok := parseHex(fg)
	if !ok {
		return fg
	}
	g, ok := parseHex(bg)
	if !ok || alpha >= 1 {
		return fg
	}
	alpha = math.Max(alpha, 0)

	var out [3]uint8
	for i := range out {
		v := alpha*float64(f[i]) + (1-alpha)*float64(g[i])
		out[i] = uint8(math.Round(v))
	}
	return fmt.Sprintf("#%02x%02x%02x", out[0], out[1], out[2])
}

func parseHex(s string) ([3]uint8, bool) {
	var rgb [3]uint8
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return rgb, false
	}
	for i := range rgb {
		v, err := strconv.ParseUint(s[2*i:2*i+2], 16, 8)
		if err != nil {
			return rgb, false
		}
		rgb[i] = uint8(v)
	}
	return rgb, true
}
