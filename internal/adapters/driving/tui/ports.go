// Package tui provides an interactive viewer for the active quala project.
// Files are listed on the left and the selected file is shown with its
// marks highlighted on the right. Live searches can be previewed and saved.
package tui

import (
	"github.com/custodia-labs/quala-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
type Ports struct {
	// File lists and selects files.
	File driving.FileService

	// Annotation lists marks and runs live searches.
	Annotation driving.AnnotationService

	// Render segments and styles the selected file.
	Render driving.RenderService

	// Project names the active project in the header. Optional.
	Project driving.ProjectService
}

// NewPorts creates a new Ports aggregate with the required services.
func NewPorts(
	file driving.FileService,
	annotation driving.AnnotationService,
	render driving.RenderService,
) *Ports {
	return &Ports{
		File:       file,
		Annotation: annotation,
		Render:     render,
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.File == nil {
		return ErrMissingFileService
	}
	if p.Annotation == nil {
		return ErrMissingAnnotationService
	}
	if p.Render == nil {
		return ErrMissingRenderService
	}
	return nil
}
