package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/quala-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/quala-cli/internal/adapters/driving/watch"
	"github.com/custodia-labs/quala-cli/internal/core/domain"
	"github.com/custodia-labs/quala-cli/internal/core/services"
	"github.com/custodia-labs/quala-cli/internal/normalisers"
)

// testServices exposes the concrete services behind the CLI for assertions.
type testServices struct {
	ws          *services.Workspace
	config      *memory.ConfigStore
	projects    *services.ProjectService
	files       *services.FileService
	annotations *services.AnnotationService
	groups      *services.GroupService
	settings    *services.SettingsService
}

// fakeFetcher serves one snapshot for every URL.
type fakeFetcher struct {
	data []byte
	err  error
}

func (f *fakeFetcher) Fetch(_ context.Context, _ string) ([]byte, error) {
	return f.data, f.err
}

// setupTestServices installs in-memory services and resets every flag.
func setupTestServices(t *testing.T) *testServices {
	t.Helper()
	return setupTestServicesWithFetcher(t, &fakeFetcher{err: domain.ErrNotFound})
}

func setupTestServicesWithFetcher(t *testing.T, fetcher *fakeFetcher) *testServices {
	t.Helper()
	ctx := context.Background()

	config := memory.NewConfigStore()
	ws := services.NewWorkspace(memory.NewBlobStore(), config)
	require.NoError(t, ws.Load(ctx))

	ts := &testServices{
		ws:          ws,
		config:      config,
		projects:    services.NewProjectService(ws),
		files:       services.NewFileService(ws, normalisers.NewDefaultRegistry(), nil),
		annotations: services.NewAnnotationService(ws),
		groups:      services.NewGroupService(ws),
		settings:    services.NewSettingsService(config, ws),
	}

	SetServices(&Services{
		Project:    ts.projects,
		File:       ts.files,
		Annotation: ts.annotations,
		Group:      ts.groups,
		Render:     services.NewRenderService(ws),
		Tabulation: services.NewTabulationService(ws),
		Synonyms:   services.NewSynonymService(ws, nil),
		Transfer:   services.NewTransferService(ws, fetcher),
		Settings:   ts.settings,
	})
	resetFlags()
	t.Cleanup(func() {
		SetServices(nil)
		resetFlags()
	})
	return ts
}

// seedStudy creates project "study" with two files; b.txt is active.
func (ts *testServices) seedStudy(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, ts.projects.Create(ctx, "study"))
	_, err := ts.files.Add(ctx, "a", "I like my cat. The cat sleeps.\n\nThe dog barks.")
	require.NoError(t, err)
	_, err = ts.files.Add(ctx, "b", "A dog and a cat.")
	require.NoError(t, err)
}

// resetFlags restores flag variables that cobra keeps between executions.
func resetFlags() {
	verbose = false
	configDir = ""

	projectExportOutput = ""
	fileAddName = ""
	fileEditFrom = "-"
	fileEditNoFresh = false

	tagFile = ""
	tagStart = -1
	tagEnd = -1
	tagMatch = ""

	searchPreviewLimit = 20
	searchFindAll = false
	markFilter = "all"

	renderVisible = "all"
	renderHighlight = "all"
	renderPlain = false

	tabulateRows = nil
	tabulateCols = nil
	tabulateOutput = DefaultTabulationFile
	tabulateQuiet = false

	settingsStorageDir = ""
	settingsSynModel = ""
	settingsSynAPIKey = ""
	settingsSynValidate = false

	synonymsAccept = false
	synonymsPick = nil

	watchPattern = watch.DefaultPattern
	watchExisting = false
}

// execute runs the root command with args and returns everything it printed.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return executeWithInput(t, "", args...)
}

func executeWithInput(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	}()

	err := rootCmd.ExecuteContext(context.Background())
	return buf.String(), err
}
