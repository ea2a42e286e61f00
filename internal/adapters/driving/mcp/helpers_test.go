package mcp

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/quala-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/quala-cli/internal/core/domain"
	"github.com/custodia-labs/quala-cli/internal/core/ports/driving"
	"github.com/custodia-labs/quala-cli/internal/core/services"
)

const interview = "I like my cat. The cat sleeps.\n\nThe dog barks."

// newPorts builds real services over memory stores holding project "study"
// with a single file, interview.txt, and a saved search for "cat".
func newPorts(t *testing.T) *Ports {
	t.Helper()
	ctx := context.Background()
	ws := services.NewWorkspace(memory.NewBlobStore(), memory.NewConfigStore())
	require.NoError(t, ws.Load(ctx))

	projects := services.NewProjectService(ws)
	require.NoError(t, projects.Create(ctx, "pilot"))
	require.NoError(t, projects.Create(ctx, "study"))

	files := services.NewFileService(ws, nil, nil)
	_, err := files.Add(ctx, "interview", interview)
	require.NoError(t, err)

	annotations := services.NewAnnotationService(ws)
	_, _, err = annotations.SaveSearch(ctx, "cat")
	require.NoError(t, err)

	return &Ports{
		Annotation: annotations,
		Project:    projects,
		File:       files,
		Tabulation: services.NewTabulationService(ws),
	}
}

func newTestServer(t *testing.T, ports *Ports) *Server {
	t.Helper()
	server, err := NewServer(ports)
	require.NoError(t, err)
	return server
}

// failingAnnotations fails every call it overrides.
type failingAnnotations struct {
	driving.AnnotationService
	err error
}

func (f failingAnnotations) Marks(domain.Filter) ([]driving.MarkSummary, error) {
	return nil, f.err
}

func (f failingAnnotations) Find(context.Context, string) ([]driving.FileMatches, error) {
	return nil, f.err
}

// Helper to create a ReadResourceRequest with the given URI.
func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}
