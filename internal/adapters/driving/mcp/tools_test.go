package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/quala-cli/internal/core/domain"
)

func TestServer_handleListMarks(t *testing.T) {
	ctx := context.Background()

	t.Run("lists saved searches with counts", func(t *testing.T) {
		server := newTestServer(t, newPorts(t))

		_, output, err := server.handleListMarks(ctx, nil, ListMarksInput{})

		require.NoError(t, err)
		require.Equal(t, 1, output.Count)
		assert.Equal(t, "cat", output.Marks[0].Name)
		assert.Equal(t, "Search", output.Marks[0].Type)
		assert.Equal(t, 2, output.Marks[0].Occurrences)
		assert.NotEmpty(t, output.Marks[0].Color)
	})

	t.Run("tags filter excludes searches", func(t *testing.T) {
		server := newTestServer(t, newPorts(t))

		_, output, err := server.handleListMarks(ctx, nil, ListMarksInput{Filter: "tags"})

		require.NoError(t, err)
		assert.Equal(t, 0, output.Count)
	})

	t.Run("returns error on failure", func(t *testing.T) {
		server := newTestServer(t, &Ports{Annotation: failingAnnotations{err: errors.New("boom")}})

		_, _, err := server.handleListMarks(ctx, nil, ListMarksInput{})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "boom")
	})
}

func TestServer_handleFind(t *testing.T) {
	ctx := context.Background()

	t.Run("returns spans with text", func(t *testing.T) {
		server := newTestServer(t, newPorts(t))

		_, output, err := server.handleFind(ctx, nil, FindInput{Term: "CAT"})

		require.NoError(t, err)
		assert.Equal(t, 2, output.Total)
		require.Len(t, output.Files, 1)
		assert.Equal(t, "interview.txt", output.Files[0].File)
		assert.Equal(t, MatchOutput{Start: 10, End: 13, Text: "cat"}, output.Files[0].Matches[0])
	})

	t.Run("omits text without file service", func(t *testing.T) {
		ports := newPorts(t)
		ports.File = nil
		server := newTestServer(t, ports)

		_, output, err := server.handleFind(ctx, nil, FindInput{Term: "dog"})

		require.NoError(t, err)
		require.Equal(t, 1, output.Total)
		assert.Empty(t, output.Files[0].Matches[0].Text)
	})

	t.Run("no matches", func(t *testing.T) {
		server := newTestServer(t, newPorts(t))

		_, output, err := server.handleFind(ctx, nil, FindInput{Term: "zebra"})

		require.NoError(t, err)
		assert.Equal(t, 0, output.Total)
		assert.Empty(t, output.Files)
	})

	t.Run("empty term", func(t *testing.T) {
		server := newTestServer(t, newPorts(t))

		_, _, err := server.handleFind(ctx, nil, FindInput{Term: "  "})

		assert.ErrorIs(t, err, domain.ErrEmptyTerm)
	})
}

func TestServer_handleTabulate(t *testing.T) {
	ctx := context.Background()

	t.Run("returns counts in row order", func(t *testing.T) {
		server := newTestServer(t, newPorts(t))

		_, output, err := server.handleTabulate(ctx, nil, TabulateInput{
			Rows: []string{"cat", "dog"},
			Cols: []string{"barks"},
		})

		require.NoError(t, err)
		assert.Equal(t, []string{"cat", "dog"}, output.Rows)
		assert.Equal(t, []string{"barks"}, output.Cols)
		assert.Equal(t, "none", output.Expansion)
		require.Len(t, output.Counts, 2)
		assert.Len(t, output.Counts[0], 1)
		assert.Contains(t, output.CSV, "barks")
	})

	t.Run("nothing to tabulate", func(t *testing.T) {
		server := newTestServer(t, newPorts(t))

		_, _, err := server.handleTabulate(ctx, nil, TabulateInput{Rows: []string{"cat"}})

		assert.ErrorIs(t, err, domain.ErrNothingToTabulate)
	})
}
