package services

import (
	"github.com/custodia-labs/quala-cli/internal/core/domain"
	"github.com/custodia-labs/quala-cli/internal/core/ports/driving"
	"github.com/custodia-labs/quala-cli/internal/core/segment"
)

// Ensure RenderService implements the interface.
var _ driving.RenderService = (*RenderService)(nil)

// RenderService produces highlighted views of files.
type RenderService struct {
	ws *Workspace
}

// NewRenderService creates a new render service.
func NewRenderService(ws *Workspace) *RenderService {
	return &RenderService{ws: ws}
}

// Render segments a file of the active project.
func (s *RenderService) Render(file string, visible, highlight domain.Filter) (*driving.Rendering, error) {
	p, err := s.ws.Current()
	if err != nil {
		return nil, err
	}
	if file == "" {
		file = s.ws.Selection().File
	}
	f, err := p.File(file)
	if err != nil {
		return nil, err
	}

	occs := segment.Visible(p, f.Occurrences, visible)
	segs := s.ws.Segments(f.Content, occs)
	out := &driving.Rendering{File: f.Name, Segments: make([]driving.StyledSegment, 0, len(segs))}
	for _, seg := range segs {
		out.Segments = append(out.Segments, driving.StyledSegment{
			Segment: seg,
			Style:   segment.StyleOf(p, seg, highlight),
		})
	}
	return out, nil
}
