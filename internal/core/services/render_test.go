package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/quala-cli/internal/core/domain"
	"github.com/custodia-labs/quala-cli/internal/core/segment"
)

func TestRenderService(t *testing.T) {
	f := seeded(t, catContent)
	annotations := NewAnnotationService(f.ws)
	_, err := annotations.AddTag(f.ctx, "", domain.Span{Start: 0, End: 3}, "Animal")
	require.NoError(t, err)
	_, _, err = annotations.SaveSearch(f.ctx, "cat")
	require.NoError(t, err)

	svc := NewRenderService(f.ws)

	t.Run("all marks", func(t *testing.T) {
		r, err := svc.Render("", domain.Filter{}, domain.Filter{})
		require.NoError(t, err)
		require.Len(t, r.Segments, 3)
		assert.Equal(t, "notes.txt", r.File)
		assert.True(t, r.Segments[0].Style.IsGradient())
		assert.True(t, r.Segments[1].Style.IsPlain())
		assert.InDelta(t, segment.FullOpacity, r.Segments[2].Style.Opacity, 1e-9)
	})

	t.Run("tags only, searches dimmed", func(t *testing.T) {
		r, err := svc.Render("notes.txt", domain.Filter{Kind: domain.FilterTags}, domain.Filter{Kind: domain.FilterSearches})
		require.NoError(t, err)
		require.Len(t, r.Segments, 2)
		assert.InDelta(t, segment.DimOpacity, r.Segments[0].Style.Opacity, 1e-9)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := svc.Render("nope.txt", domain.Filter{}, domain.Filter{})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
