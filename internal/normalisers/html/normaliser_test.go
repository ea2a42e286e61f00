package html

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormaliser(t *testing.T) {
	n := New()
	assert.Equal(t, []string{".html", ".htm", ".xhtml"}, n.Extensions())
	assert.Equal(t, 50, n.Priority())

	raw := `<!DOCTYPE html>
<html><head><title>Ignored</title><style>p { color: red }</style></head>
<body>
  <h1>Field   notes</h1>
  <!-- draft -->
  <p>Hello <b>world</b> &amp; friends.</p>
  <script>alert("x")</script>
  <ul><li>one</li><li>two</li></ul>
  <p>Line one<br>line two</p>
</body></html>`

	text, err := n.Normalise(context.Background(), "notes.html", []byte(raw))
	require.NoError(t, err)
	assert.Equal(t, "Field notes\n\nHello world & friends.\n\none\ntwo\n\nLine one\nline two", text)
}

func TestCollapseBlankLines(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"trims lines", "  a  \n b ", "a\nb"},
		{"collapses runs", "a\n\n\n\nb", "a\n\nb"},
		{"leading blanks", "\n\n a", "a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, collapseBlankLines(tt.in))
		})
	}
}
