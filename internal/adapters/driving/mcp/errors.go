// Package mcp exposes the active quala project to AI assistants over the
// Model Context Protocol: marks, occurrences and cross-tabulations as tools,
// projects and file contents as resources.
package mcp

import "errors"

// ErrMissingAnnotationService is returned when the annotation service is not provided.
var ErrMissingAnnotationService = errors.New("mcp: annotation service is required")

// ErrMissingFileName is returned when a file resource URI names no file.
var ErrMissingFileName = errors.New("mcp: file name is required")
