package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/quala-cli/internal/core/domain"
)

func TestProjectCmd_NotConfigured(t *testing.T) {
	SetServices(nil)
	resetFlags()

	_, err := execute(t, "project", "list")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "project service not configured")
}

func TestProjectList_Empty(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "project")

	require.NoError(t, err)
	assert.Contains(t, out, "No projects")
}

func TestProjectCreate_ListMarksActive(t *testing.T) {
	ts := setupTestServices(t)

	out, err := execute(t, "project", "create", "pilot")
	require.NoError(t, err)
	assert.Contains(t, out, `Created project "pilot"`)

	_, err = execute(t, "project", "create", "study")
	require.NoError(t, err)
	assert.Equal(t, "study", ts.projects.Selection().Project)

	out, err = execute(t, "project", "list")
	require.NoError(t, err)
	assert.Equal(t, "  pilot\n* study\n", out)
}

func TestProjectCreate_Duplicate(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "project", "create", "study")
	require.NoError(t, err)
	_, err = execute(t, "project", "create", "study")

	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestProjectRenameDeleteUse(t *testing.T) {
	ts := setupTestServices(t)
	ts.seedStudy(t)
	_, err := execute(t, "project", "create", "pilot")
	require.NoError(t, err)

	out, err := execute(t, "project", "rename", "study", "main")
	require.NoError(t, err)
	assert.Contains(t, out, `Renamed project "study" to "main"`)

	out, err = execute(t, "project", "use", "main")
	require.NoError(t, err)
	assert.Contains(t, out, "Active: main /")

	out, err = execute(t, "project", "delete", "pilot")
	require.NoError(t, err)
	assert.Contains(t, out, `Deleted project "pilot"`)
	assert.Equal(t, []string{"main"}, ts.projects.List())

	_, err = execute(t, "project", "use", "pilot")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProjectExportImport(t *testing.T) {
	ts := setupTestServices(t)
	ts.seedStudy(t)
	path := filepath.Join(t.TempDir(), "backup.json")

	out, err := execute(t, "project", "export", "--output", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported to "+path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "study")

	_, err = execute(t, "project", "delete", "study")
	require.NoError(t, err)
	require.Empty(t, ts.projects.List())

	out, err = execute(t, "project", "import", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported "+path)
	assert.Equal(t, []string{"study"}, ts.projects.List())
}

func TestProjectExport_Stdout(t *testing.T) {
	ts := setupTestServices(t)
	ts.seedStudy(t)

	out, err := execute(t, "project", "export", "-o", "-")

	require.NoError(t, err)
	assert.Contains(t, out, `"study"`)
	assert.NotContains(t, out, "Exported")
}

func TestProjectImport_BadFileLeavesState(t *testing.T) {
	ts := setupTestServices(t)
	ts.seedStudy(t)
	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := execute(t, "project", "import", path)

	require.Error(t, err)
	assert.Equal(t, []string{"study"}, ts.projects.List())
}

func TestProjectImport_MissingFile(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "project", "import", filepath.Join(t.TempDir(), "nope.json"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read")
}

func TestProjectLoadURL(t *testing.T) {
	source := setupTestServices(t)
	source.seedStudy(t)
	data, _, err := transferService.Export(t.Context())
	require.NoError(t, err)

	ts := setupTestServicesWithFetcher(t, &fakeFetcher{data: data})
	out, err := execute(t, "project", "load-url", "https://example.com/study.json")

	require.NoError(t, err)
	assert.Contains(t, out, "Loaded https://example.com/study.json")
	assert.Equal(t, []string{"study"}, ts.projects.List())
}

func TestProjectLoadURL_FetchError(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "project", "load-url", "https://example.com/missing.json")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
