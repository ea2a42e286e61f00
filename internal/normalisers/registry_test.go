package normalisers

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/quala-cli/internal/core/domain"
)

type stubNormaliser struct {
	exts     []string
	priority int
	prefix   string
}

func (s stubNormaliser) Extensions() []string { return s.exts }
func (s stubNormaliser) Priority() int        { return s.priority }
func (s stubNormaliser) Normalise(_ context.Context, _ string, raw []byte) (string, error) {
	return s.prefix + string(raw), nil
}

func TestRegistry_Dispatch(t *testing.T) {
	r := NewRegistry()
	r.Register(stubNormaliser{priority: 5, prefix: "plain:"})
	r.Register(stubNormaliser{exts: []string{".md"}, priority: 50, prefix: "md:"})
	r.Register(stubNormaliser{exts: []string{".md"}, priority: 80, prefix: "better-md:"})

	ctx := context.Background()
	tests := []struct {
		name string
		want string
	}{
		{"notes.md", "better-md:x"},
		{"NOTES.MD", "better-md:x"},
		{"notes.txt", "plain:x"},
		{"notes", "plain:x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Normalise(ctx, tt.name, []byte("x"))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRegistry_NoFallback(t *testing.T) {
	r := NewRegistry()
	r.Register(stubNormaliser{exts: []string{".md"}, priority: 50})

	_, err := r.Normalise(context.Background(), "a.txt", []byte("x"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNewDefaultRegistry(t *testing.T) {
	r := NewDefaultRegistry()
	assert.Equal(t, []string{".docx", ".htm", ".html", ".markdown", ".md", ".xhtml"}, r.SupportedExtensions())

	ctx := context.Background()
	text, err := r.Normalise(ctx, "a.md", []byte("# Title\n\nBody"))
	require.NoError(t, err)
	assert.Equal(t, "Title\n\nBody", text)

	text, err = r.Normalise(ctx, "a.html", []byte("<p>Body</p>"))
	require.NoError(t, err)
	assert.Equal(t, "Body", text)

	text, err = r.Normalise(ctx, "a.txt", []byte("  raw  "))
	require.NoError(t, err)
	assert.Equal(t, "  raw  ", text)

	_, err = r.Normalise(ctx, "a.bin", []byte{0xff})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.True(t, strings.Contains(err.Error(), "UTF-8"))
}
