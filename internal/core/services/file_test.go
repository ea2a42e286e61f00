package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/quala-cli/internal/core/domain"
	"github.com/custodia-labs/quala-cli/internal/core/ports/driven"
)

type upperNormaliser struct{}

func (upperNormaliser) Normalise(_ context.Context, _ string, raw []byte) (string, error) {
	return strings.ToUpper(string(raw)), nil
}
func (upperNormaliser) Register(driven.Normaliser)     {}
func (upperNormaliser) SupportedExtensions() []string { return nil }

type trimPipeline struct{}

func (trimPipeline) Process(_ context.Context, text string) (string, error) {
	return strings.TrimSpace(text), nil
}

func TestFileService_AddSelectsAndSuffixes(t *testing.T) {
	f := seeded(t, catContent)
	svc := NewFileService(f.ws, nil, nil)

	name, err := svc.Add(f.ctx, "chapter-one", "text")
	require.NoError(t, err)

	assert.Equal(t, "chapter-one.txt", name)
	assert.Equal(t, name, f.ws.Selection().File)
	files, err := svc.List()
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "notes.txt", files[0].Name)

	_, err = svc.Add(f.ctx, "chapter-one.txt", "again")
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
	_, err = svc.Add(f.ctx, "bad:name", "x")
	assert.ErrorIs(t, err, domain.ErrInvalidFileName)
}

func TestFileService_AddWithoutProject(t *testing.T) {
	f := newFixture(t)
	_, err := NewFileService(f.ws, nil, nil).Add(f.ctx, "a", "b")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFileService_ImportRunsNormaliserAndPipeline(t *testing.T) {
	f := seeded(t, catContent)
	svc := NewFileService(f.ws, upperNormaliser{}, trimPipeline{})

	name, err := svc.Import(f.ctx, "page.html", []byte("  hello  "))
	require.NoError(t, err)

	file, err := svc.Get(name)
	require.NoError(t, err)
	assert.Equal(t, "HELLO", file.Content)
}

func TestFileService_RenameAndRemove(t *testing.T) {
	f := seeded(t, catContent)
	svc := NewFileService(f.ws, nil, nil)

	name, err := svc.Rename(f.ctx, "notes.txt", "interview.md")
	require.NoError(t, err)
	assert.Equal(t, "interview.md", name)
	assert.Equal(t, "interview.md", f.ws.Selection().File)

	require.NoError(t, svc.Remove(f.ctx, "interview.md"))
	_, err = svc.Get("")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFileService_EditRefreshesSearches(t *testing.T) {
	f := seeded(t, "x marks x")
	files := NewFileService(f.ws, nil, nil)
	annotations := NewAnnotationService(f.ws)
	_, _, err := annotations.SaveSearch(f.ctx, "x")
	require.NoError(t, err)

	require.NoError(t, files.Edit(f.ctx, "", "x marks x and x", false))
	file, err := files.Get("")
	require.NoError(t, err)
	assert.True(t, file.Dirty)
	assert.Len(t, file.Occurrences, 2)

	require.NoError(t, files.Edit(f.ctx, "notes.txt", "x marks x and x again x", true))
	file, err = files.Get("")
	require.NoError(t, err)
	assert.Len(t, file.Occurrences, 4)
}

func TestFileService_Use(t *testing.T) {
	f := seeded(t, catContent)
	svc := NewFileService(f.ws, nil, nil)
	_, err := svc.Add(f.ctx, "b", "b")
	require.NoError(t, err)

	require.NoError(t, svc.Use(f.ctx, "notes.txt"))
	assert.Equal(t, "notes.txt", f.ws.Selection().File)
	assert.ErrorIs(t, svc.Use(f.ctx, "zzz.txt"), domain.ErrNotFound)
}

func TestFileService_ReloadNormalisesAndRefreshes(t *testing.T) {
	f := seeded(t, catContent)
	svc := NewFileService(f.ws, upperNormaliser{}, trimPipeline{})
	_, _, err := NewAnnotationService(f.ws).SaveSearch(f.ctx, "CAT")
	require.NoError(t, err)

	require.NoError(t, svc.Reload(f.ctx, "notes.txt", []byte("  cat and cat and cat  ")))

	file, err := svc.Get("notes.txt")
	require.NoError(t, err)
	assert.Equal(t, "CAT AND CAT AND CAT", file.Content)
	assert.True(t, file.Dirty)
	assert.Len(t, file.Occurrences, 3)

	assert.ErrorIs(t, svc.Reload(f.ctx, "missing.txt", []byte("x")), domain.ErrNotFound)
}
