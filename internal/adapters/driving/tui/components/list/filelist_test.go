package list

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/quala-cli/internal/core/domain"
)

func files(names ...string) []*domain.TextFile {
	out := make([]*domain.TextFile, len(names))
	for i, n := range names {
		out[i] = domain.NewTextFile(n, "text")
	}
	return out
}

func TestFileList_Empty(t *testing.T) {
	l := NewFileList(nil)

	assert.Equal(t, "", l.Selected())
	assert.Equal(t, "", l.Next())
	assert.Equal(t, "", l.Prev())
	assert.Contains(t, l.View(), "No files")
}

func TestFileList_SetFilesSelectsNamed(t *testing.T) {
	l := NewFileList(nil)

	l.SetFiles(files("a.txt", "b.txt", "c.txt"), "b.txt")
	assert.Equal(t, "b.txt", l.Selected())
	assert.Equal(t, 3, l.Count())

	l.SetFiles(files("a.txt"), "gone.txt")
	assert.Equal(t, "a.txt", l.Selected())
}

func TestFileList_NextPrevWrap(t *testing.T) {
	l := NewFileList(nil)
	l.SetFiles(files("a.txt", "b.txt", "c.txt"), "a.txt")

	assert.Equal(t, "b.txt", l.Next())
	assert.Equal(t, "c.txt", l.Prev())

	l.Select("c.txt")
	assert.Equal(t, "a.txt", l.Next())
	assert.Equal(t, "b.txt", l.Prev())

	l.Select("unknown.txt")
	assert.Equal(t, "c.txt", l.Selected())
}

func TestFileList_View(t *testing.T) {
	fs := files("interview one.txt", "notes.md")
	fs[1].Dirty = true
	fs[1].Occurrences = []domain.Occurrence{{}, {}}

	l := NewFileList(nil)
	l.SetDimensions(30, 10)
	l.SetFiles(fs, "interview one.txt")

	view := l.View()
	assert.Contains(t, view, "Files (2)")
	assert.Contains(t, view, "> interview one.txt")
	assert.Contains(t, view, "notes.md*")
}

func TestFileList_ViewTruncatesLongNames(t *testing.T) {
	l := NewFileList(nil)
	l.SetDimensions(12, 10)
	l.SetFiles(files("a-very-long-transcript-name.txt"), "")

	assert.Contains(t, l.View(), "…")
}
