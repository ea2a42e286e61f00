package file

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConfigStore(t *testing.T) (*ConfigStore, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	return store, dir
}

func TestNewConfigStore(t *testing.T) {
	store, dir := newTestConfigStore(t)
	assert.Equal(t, filepath.Join(dir, "config.toml"), store.Path())

	_, ok := store.Get("analysis.expansion")
	assert.False(t, ok)
}

func TestNewConfigStore_NestedDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	_, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.DirExists(t, dir)
}

func TestNewConfigStore_CorruptedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("not = [valid"), 0600))

	_, err := NewConfigStore(dir)
	assert.Error(t, err)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store, _ := newTestConfigStore(t)
	require.NoError(t, store.Set("analysis.expansion", "sentence"))
	require.NoError(t, store.Set("analysis.max_matches", 500))
	require.NoError(t, store.Set("synonyms.requests_per_second", 1.5))
	require.NoError(t, store.Set("watch.recursive", true))
	require.NoError(t, store.Set("import.postprocessors", []string{"bom", "newlines"}))

	assert.Equal(t, "sentence", store.GetString("analysis.expansion"))
	assert.Equal(t, 500, store.GetInt("analysis.max_matches"))
	assert.InDelta(t, 1.5, store.GetFloat("synonyms.requests_per_second"), 1e-9)
	assert.InDelta(t, 500.0, store.GetFloat("analysis.max_matches"), 1e-9)
	assert.True(t, store.GetBool("watch.recursive"))
	assert.Equal(t, []string{"bom", "newlines"}, store.GetStringSlice("import.postprocessors"))

	// Wrong types read as zero values.
	assert.Empty(t, store.GetString("analysis.max_matches"))
	assert.Zero(t, store.GetInt("analysis.expansion"))
	assert.Zero(t, store.GetFloat("analysis.expansion"))
	assert.False(t, store.GetBool("analysis.expansion"))
	assert.Nil(t, store.GetStringSlice("analysis.expansion"))
}

func TestConfigStore_PersistenceFlattensTables(t *testing.T) {
	store, dir := newTestConfigStore(t)
	require.NoError(t, store.Set("workspace.project", "study"))
	require.NoError(t, store.Set("analysis.max_matches", 42))
	require.NoError(t, store.Set("synonyms.requests_per_second", 2.0))
	require.NoError(t, store.Set("import.postprocessors", []string{"bom"}))

	reloaded, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Equal(t, "study", reloaded.GetString("workspace.project"))
	assert.Equal(t, 42, reloaded.GetInt("analysis.max_matches"))
	assert.InDelta(t, 2.0, reloaded.GetFloat("synonyms.requests_per_second"), 1e-9)
	assert.Equal(t, []string{"bom"}, reloaded.GetStringSlice("import.postprocessors"))
}

func TestConfigStore_WritesSections(t *testing.T) {
	store, dir := newTestConfigStore(t)
	require.NoError(t, store.Set("analysis.expansion", "sentence"))
	require.NoError(t, store.Set("workspace.project", "study"))

	raw, err := os.ReadFile(filepath.Join(dir, ConfigFile))
	require.NoError(t, err)
	text := string(raw)

	assert.True(t, strings.HasPrefix(text, "# quala settings"))
	assert.Contains(t, text, "[analysis]")
	assert.Contains(t, text, "[workspace]")
	assert.NotContains(t, text, "analysis.expansion")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files are cleaned up")
}

func TestNestFlatten(t *testing.T) {
	flat := map[string]any{
		"analysis.expansion":   "none",
		"analysis.max_matches": int64(10),
		"storage.backend":      "file",
		"top":                  true,
		"synonyms":             "legacy",
		"synonyms.model":       "gpt-4o-mini",
	}

	nested := nest(flat)

	analysis, ok := nested["analysis"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "none", analysis["expansion"])
	assert.Equal(t, "legacy", nested["synonyms"])
	assert.Equal(t, "gpt-4o-mini", nested["synonyms.model"])
	assert.Equal(t, flat, flatten(nested, ""))
}

func TestConfigStore_LoadHandWrittenTables(t *testing.T) {
	dir := t.TempDir()
	content := `
[analysis]
expansion = "paragraph"
max_matches = 100

[synonyms]
provider = "none"
requests_per_second = 3
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Equal(t, "paragraph", store.GetString("analysis.expansion"))
	assert.Equal(t, 100, store.GetInt("analysis.max_matches"))
	assert.Equal(t, "none", store.GetString("synonyms.provider"))
	assert.InDelta(t, 3.0, store.GetFloat("synonyms.requests_per_second"), 1e-9)
}

func TestConfigStore_Delete(t *testing.T) {
	store, dir := newTestConfigStore(t)
	require.NoError(t, store.Set("synonyms.api_key", "sk-1"))
	require.NoError(t, store.Delete("synonyms.api_key"))
	require.NoError(t, store.Delete("synonyms.api_key"))

	reloaded, err := NewConfigStore(dir)
	require.NoError(t, err)
	_, ok := reloaded.Get("synonyms.api_key")
	assert.False(t, ok)
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store, _ := newTestConfigStore(t)
	require.NoError(t, store.Set("storage.backend", "file"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), nil, 0600))

	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Save())
}

func TestConfigStore_Concurrency(t *testing.T) {
	store, _ := newTestConfigStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_ = store.Set("analysis.max_matches", n)
			_ = store.GetInt("analysis.max_matches")
		}(i)
	}
	wg.Wait()

	assert.GreaterOrEqual(t, store.GetInt("analysis.max_matches"), 0)
}
