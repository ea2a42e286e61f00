package mcp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractFileName(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		expected string
		wantErr  bool
	}{
		{name: "plain name", uri: "quala://files/interview.txt", expected: "interview.txt"},
		{name: "escaped space", uri: "quala://files/first%20interview.txt", expected: "first interview.txt"},
		{name: "invalid prefix", uri: "file://files/interview.txt", wantErr: true},
		{name: "missing name", uri: "quala://files/", wantErr: true},
		{name: "bad escape", uri: "quala://files/%zz", wantErr: true},
		{name: "empty URI", uri: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := extractFileName(tt.uri)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestFileURI_RoundTrip(t *testing.T) {
	name, err := extractFileName(fileURI("notes from 3/4.txt"))
	require.NoError(t, err)
	assert.Equal(t, "notes from 3/4.txt", name)
}

func TestServer_handleProjectsResource(t *testing.T) {
	ctx := context.Background()

	t.Run("nil project service returns empty list", func(t *testing.T) {
		ports := newPorts(t)
		ports.Project = nil
		server := newTestServer(t, ports)

		result, err := server.handleProjectsResource(ctx, makeReadResourceRequest("quala://projects"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "[]", result.Contents[0].Text)
	})

	t.Run("marks the active project", func(t *testing.T) {
		server := newTestServer(t, newPorts(t))

		result, err := server.handleProjectsResource(ctx, makeReadResourceRequest("quala://projects"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "application/json", result.Contents[0].MIMEType)
		assert.JSONEq(t, `[{"name":"pilot","active":false},{"name":"study","active":true}]`, result.Contents[0].Text)
	})
}

func TestServer_handleFilesResource(t *testing.T) {
	ctx := context.Background()

	t.Run("nil file service returns empty list", func(t *testing.T) {
		ports := newPorts(t)
		ports.File = nil
		server := newTestServer(t, ports)

		result, err := server.handleFilesResource(ctx, makeReadResourceRequest("quala://files"))

		require.NoError(t, err)
		assert.Equal(t, "[]", result.Contents[0].Text)
	})

	t.Run("lists files of the active project", func(t *testing.T) {
		server := newTestServer(t, newPorts(t))

		result, err := server.handleFilesResource(ctx, makeReadResourceRequest("quala://files"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Contains(t, result.Contents[0].Text, `"name": "interview.txt"`)
		assert.Contains(t, result.Contents[0].Text, `"uri": "quala://files/interview.txt"`)
		assert.Contains(t, result.Contents[0].Text, `"occurrences": 2`)
	})
}

func TestServer_handleFileContentResource(t *testing.T) {
	ctx := context.Background()

	t.Run("nil file service returns not found", func(t *testing.T) {
		ports := newPorts(t)
		ports.File = nil
		server := newTestServer(t, ports)

		_, err := server.handleFileContentResource(ctx, makeReadResourceRequest("quala://files/interview.txt"))

		require.Error(t, err)
	})

	t.Run("unknown file returns not found", func(t *testing.T) {
		server := newTestServer(t, newPorts(t))

		_, err := server.handleFileContentResource(ctx, makeReadResourceRequest("quala://files/missing.txt"))

		require.Error(t, err)
	})

	t.Run("returns content", func(t *testing.T) {
		server := newTestServer(t, newPorts(t))

		result, err := server.handleFileContentResource(ctx, makeReadResourceRequest("quala://files/interview.txt"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, interview, result.Contents[0].Text)
		assert.Equal(t, "text/plain", result.Contents[0].MIMEType)
	})
}
