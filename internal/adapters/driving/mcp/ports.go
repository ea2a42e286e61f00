package mcp

import (
	"github.com/custodia-labs/quala-cli/internal/core/ports/driving"
)

// Ports aggregates the driving ports used by the MCP server.
type Ports struct {
	// Annotation lists marks and finds occurrences.
	Annotation driving.AnnotationService

	// Project lists projects. Optional.
	Project driving.ProjectService

	// File serves file contents. Optional.
	File driving.FileService

	// Tabulation cross-tabulates marks. Optional; the tabulate tool is
	// only registered when set.
	Tabulation driving.TabulationService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Annotation == nil {
		return ErrMissingAnnotationService
	}
	return nil
}
