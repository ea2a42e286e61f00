package driving

import (
	"github.com/custodia-labs/quala-cli/internal/core/domain"
	"github.com/custodia-labs/quala-cli/internal/core/segment"
)

// StyledSegment is a segment with its display style.
type StyledSegment struct {
	segment.Segment
	Style segment.Style
}

// Rendering is a file cut into styled segments.
type Rendering struct {
	File     string
	Segments []StyledSegment
}

// RenderService produces highlighted views of files.
type RenderService interface {
	// Render segments a file. Only occurrences passing visible are drawn;
	// segments whose marks miss highlight are dimmed. An empty file means the active file.
	Render(file string, visible, highlight domain.Filter) (*Rendering, error)
}
