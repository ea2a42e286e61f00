package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/quala-cli/internal/core/domain"
)

func TestTagAdd_Match(t *testing.T) {
	ts := setupTestServices(t)
	ts.seedStudy(t)

	out, err := execute(t, "tag", "add", "feline", "--match", "CAT")
	require.NoError(t, err)
	assert.Contains(t, out, `Tagged [12:15] as "feline"`)

	f, err := ts.files.Get("b.txt")
	require.NoError(t, err)
	require.Len(t, f.Occurrences, 1)
	assert.Equal(t, domain.Span{Start: 12, End: 15}, f.Occurrences[0].Span)
}

func TestTagAdd_OffsetsInOtherFile(t *testing.T) {
	ts := setupTestServices(t)
	ts.seedStudy(t)

	out, err := execute(t, "tag", "add", "pets", "--file", "a.txt", "--start", "10", "--end", "13")
	require.NoError(t, err)
	assert.Contains(t, out, `Tagged [10:13] as "pets"`)

	marks, err := ts.annotations.Marks(domain.Filter{Kind: domain.FilterTags})
	require.NoError(t, err)
	require.Len(t, marks, 1)
	assert.Equal(t, 1, marks[0].Count)
}

func TestTagAdd_ReusesExistingTag(t *testing.T) {
	ts := setupTestServices(t)
	ts.seedStudy(t)

	_, err := execute(t, "tag", "add", "animal", "--match", "dog")
	require.NoError(t, err)
	_, err = execute(t, "tag", "add", "animal", "--match", "cat")
	require.NoError(t, err)

	marks, err := ts.annotations.Marks(domain.Filter{Kind: domain.FilterTags})
	require.NoError(t, err)
	require.Len(t, marks, 1)
	assert.Equal(t, 2, marks[0].Count)
}

func TestTagAdd_NeedsSpan(t *testing.T) {
	ts := setupTestServices(t)
	ts.seedStudy(t)

	_, err := execute(t, "tag", "add", "feline")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTagAdd_MatchNotFound(t *testing.T) {
	ts := setupTestServices(t)
	ts.seedStudy(t)

	_, err := execute(t, "tag", "add", "bird", "--match", "parrot")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTagRemove(t *testing.T) {
	ts := setupTestServices(t)
	ts.seedStudy(t)
	_, err := execute(t, "tag", "add", "feline", "--match", "cat")
	require.NoError(t, err)

	out, err := execute(t, "tag", "remove", "feline", "--match", "cat")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed 1 occurrence(s)")

	f, err := ts.files.Get("")
	require.NoError(t, err)
	assert.Empty(t, f.Occurrences)
}

func TestSearchPreview(t *testing.T) {
	ts := setupTestServices(t)
	ts.seedStudy(t)

	out, err := execute(t, "search", "preview", "cat")

	require.NoError(t, err)
	assert.Contains(t, out, "1 match(es)")
	assert.Contains(t, out, "[12:15] cat")

	marks, err := ts.annotations.Marks(domain.Filter{Kind: domain.FilterAll})
	require.NoError(t, err)
	assert.Empty(t, marks)
}

func TestSearchPreview_Limit(t *testing.T) {
	ts := setupTestServices(t)
	ts.seedStudy(t)
	_, err := execute(t, "file", "use", "a.txt")
	require.NoError(t, err)

	out, err := execute(t, "search", "preview", "the", "-n", "1")

	require.NoError(t, err)
	assert.Contains(t, out, "2 match(es)")
	assert.Contains(t, out, "... 1 more")
}

func TestSearchPreview_AllFiles(t *testing.T) {
	ts := setupTestServices(t)
	ts.seedStudy(t)

	out, err := execute(t, "search", "preview", "cat", "--all-files")

	require.NoError(t, err)
	assert.Contains(t, out, "a.txt: 2 match(es)")
	assert.Contains(t, out, "b.txt: 1 match(es)")
	assert.Contains(t, out, "Total: 3")
}

func TestSearchPreview_EmptyTerm(t *testing.T) {
	ts := setupTestServices(t)
	ts.seedStudy(t)

	out, err := execute(t, "search", "preview", "  ")

	require.NoError(t, err)
	assert.Contains(t, out, "0 match(es)")
}

func TestSearchSave(t *testing.T) {
	ts := setupTestServices(t)
	ts.seedStudy(t)

	out, err := execute(t, "search", "save", "cat")
	require.NoError(t, err)
	assert.Contains(t, out, `Saved search "cat"`)

	out, err = execute(t, "search", "save", "cat")
	require.NoError(t, err)
	assert.Contains(t, out, `Search "cat" already saved`)

	marks, err := ts.annotations.Marks(domain.Filter{Kind: domain.FilterSearches})
	require.NoError(t, err)
	require.Len(t, marks, 1)
	assert.Equal(t, 3, marks[0].Count)
}

func TestSearchSave_EmptyTerm(t *testing.T) {
	ts := setupTestServices(t)
	ts.seedStudy(t)

	_, err := execute(t, "search", "save", " ")

	assert.ErrorIs(t, err, domain.ErrEmptyTerm)
}

func TestSearchRefresh(t *testing.T) {
	ts := setupTestServices(t)
	ts.seedStudy(t)
	_, err := execute(t, "search", "save", "cat")
	require.NoError(t, err)
	_, err = executeWithInput(t, "cat cat", "file", "edit", "b.txt", "--no-refresh")
	require.NoError(t, err)

	out, err := execute(t, "search", "refresh")
	require.NoError(t, err)
	assert.Contains(t, out, "Searches refreshed.")

	f, err := ts.files.Get("b.txt")
	require.NoError(t, err)
	assert.Len(t, f.Occurrences, 2)
}

func TestMarkList(t *testing.T) {
	ts := setupTestServices(t)
	ts.seedStudy(t)

	out, err := execute(t, "mark")
	require.NoError(t, err)
	assert.Contains(t, out, "No marks.")

	_, err = execute(t, "search", "save", "cat")
	require.NoError(t, err)
	_, err = execute(t, "tag", "add", "animal", "--match", "dog")
	require.NoError(t, err)

	out, err = execute(t, "mark", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "search")
	assert.Contains(t, out, "cat")
	assert.Contains(t, out, "animal")

	out, err = execute(t, "mark", "list", "--filter", "tags")
	require.NoError(t, err)
	assert.Contains(t, out, "animal")
	assert.NotContains(t, out, "cat")
}

func TestMarkRenameColorRemove(t *testing.T) {
	ts := setupTestServices(t)
	ts.seedStudy(t)
	_, err := execute(t, "search", "save", "cat")
	require.NoError(t, err)

	out, err := execute(t, "mark", "rename", "cat", "dog")
	require.NoError(t, err)
	assert.Contains(t, out, `Renamed mark "cat" to "dog"`)

	marks, err := ts.annotations.Marks(domain.Filter{Kind: domain.FilterSearches})
	require.NoError(t, err)
	require.Len(t, marks, 1)
	assert.Equal(t, "dog", marks[0].Name)
	assert.Equal(t, 2, marks[0].Count)

	out, err = execute(t, "mark", "color", "dog", "#00ff00")
	require.NoError(t, err)
	assert.Contains(t, out, `Mark "dog" is now #00ff00`)

	out, err = execute(t, "mark", "remove", "dog")
	require.NoError(t, err)
	assert.Contains(t, out, `Removed mark "dog"`)

	_, err = execute(t, "mark", "remove", "dog")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSnippet(t *testing.T) {
	assert.Equal(t, "one two", snippet("one\ttwo"))
	assert.Equal(t, "a b", snippet("a\nb"))

	long := ""
	for range 70 {
		long += "x"
	}
	got := snippet(long)
	assert.Len(t, got, 63)
	assert.Equal(t, "...", got[60:])
}
