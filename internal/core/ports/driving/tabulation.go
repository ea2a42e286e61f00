package driving

import (
	"context"

	"github.com/custodia-labs/quala-cli/internal/core/tabulate"
)

// TabulationService cross-tabulates marks of the active project.
type TabulationService interface {
	// Tabulate counts intersections of rows against cols using the configured expansion.
	Tabulate(ctx context.Context, rows, cols []string) (*tabulate.Matrix, error)
}
