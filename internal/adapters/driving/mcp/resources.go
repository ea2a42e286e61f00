package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for quala resources.
	uriScheme = "quala://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "projects",
		Name:        "projects",
		Description: "Projects in the workspace and which one is active",
		MIMEType:    "application/json",
	}, s.handleProjectsResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "files",
		Name:        "files",
		Description: "Files of the active project with their occurrence counts",
		MIMEType:    "application/json",
	}, s.handleFilesResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "files/{file}",
		Name:        "file-content",
		Description: "Text of a file in the active project",
		MIMEType:    "text/plain",
	}, s.handleFileContentResource)
}

func (s *Server) handleProjectsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Project == nil {
		return jsonResult(req.Params.URI, "[]"), nil
	}

	type projectInfo struct {
		Name   string `json:"name"`
		Active bool   `json:"active"`
	}

	active := s.ports.Project.Selection().Project
	names := s.ports.Project.List()
	infos := make([]projectInfo, len(names))
	for i, name := range names {
		infos[i] = projectInfo{Name: name, Active: name == active}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling projects: %w", err)
	}
	return jsonResult(req.Params.URI, string(data)), nil
}

func (s *Server) handleFilesResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.File == nil {
		return jsonResult(req.Params.URI, "[]"), nil
	}

	files, err := s.ports.File.List()
	if err != nil {
		return nil, fmt.Errorf("listing files: %w", err)
	}

	type fileInfo struct {
		Name        string `json:"name"`
		URI         string `json:"uri"`
		Length      int    `json:"length"`
		Occurrences int    `json:"occurrences"`
	}

	infos := make([]fileInfo, len(files))
	for i, f := range files {
		infos[i] = fileInfo{
			Name:        f.Name,
			URI:         fileURI(f.Name),
			Length:      len(f.Content),
			Occurrences: len(f.Occurrences),
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling files: %w", err)
	}
	return jsonResult(req.Params.URI, string(data)), nil
}

func (s *Server) handleFileContentResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.File == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	name, err := extractFileName(req.Params.URI)
	if err != nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	f, err := s.ports.File.Get(name)
	if err != nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/plain",
			Text:     f.Content,
		}},
	}, nil
}

func jsonResult(uri, text string) *mcp.ReadResourceResult {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     text,
		}},
	}
}

// fileURI builds the resource URI of a file. Names may contain spaces.
func fileURI(name string) string {
	return uriScheme + "files/" + url.PathEscape(name)
}

// extractFileName extracts the file name from a URI like quala://files/{file}.
func extractFileName(uri string) (string, error) {
	const prefix = uriScheme + "files/"

	if !strings.HasPrefix(uri, prefix) {
		return "", ErrMissingFileName
	}
	name, err := url.PathUnescape(strings.TrimPrefix(uri, prefix))
	if err != nil {
		return "", fmt.Errorf("file name in %s: %w", uri, err)
	}
	if name == "" {
		return "", ErrMissingFileName
	}
	return name, nil
}
