package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/quala-cli/internal/adapters/driven/storage/memory"
)

const catContent = "cat sat on the mat cat"

type fixture struct {
	ctx    context.Context
	ws     *Workspace
	blobs  *memory.BlobStore
	config *memory.ConfigStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		ctx:    context.Background(),
		blobs:  memory.NewBlobStore(),
		config: memory.NewConfigStore(),
	}
	f.ws = NewWorkspace(f.blobs, f.config)
	require.NoError(t, f.ws.Load(f.ctx))
	return f
}

// seeded creates project "study" holding notes.txt.
func seeded(t *testing.T, content string) *fixture {
	t.Helper()
	f := newFixture(t)
	require.NoError(t, NewProjectService(f.ws).Create(f.ctx, "study"))
	_, err := NewFileService(f.ws, nil, nil).Add(f.ctx, "notes", content)
	require.NoError(t, err)
	return f
}

// failingBlobStore rejects every write.
type failingBlobStore struct {
	*memory.BlobStore
}

var errDiskFull = errors.New("disk full")

func (s failingBlobStore) Put(context.Context, string, []byte) error {
	return errDiskFull
}

type mockSynonymProvider struct {
	words []string
	err   error
	calls int
}

func (m *mockSynonymProvider) Synonyms(context.Context, string) ([]string, error) {
	m.calls++
	return m.words, m.err
}

func (m *mockSynonymProvider) Name() string { return "mock" }

type mockFetcher struct {
	body []byte
	err  error
	url  string
}

func (m *mockFetcher) Fetch(_ context.Context, url string) ([]byte, error) {
	m.url = url
	return m.body, m.err
}
