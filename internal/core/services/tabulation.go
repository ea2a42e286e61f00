package services

import (
	"context"

	"github.com/custodia-labs/quala-cli/internal/core/ports/driving"
	"github.com/custodia-labs/quala-cli/internal/core/tabulate"
	"github.com/custodia-labs/quala-cli/internal/logger"
)

// Ensure TabulationService implements the interface.
var _ driving.TabulationService = (*TabulationService)(nil)

// TabulationService cross-tabulates marks of the active project.
type TabulationService struct {
	ws *Workspace
}

// NewTabulationService creates a new tabulation service.
func NewTabulationService(ws *Workspace) *TabulationService {
	return &TabulationService{ws: ws}
}

// Tabulate counts intersections of rows against cols using the configured expansion.
func (s *TabulationService) Tabulate(_ context.Context, rows, cols []string) (*tabulate.Matrix, error) {
	logger.Section("Tabulation")
	defer logger.Timed("tabulate")()

	p, err := s.ws.Current()
	if err != nil {
		return nil, err
	}
	a := s.ws.Analysis()
	logger.Debug("Rows: %v, cols: %v, expansion: %s", rows, cols, a.Expansion)

	m, err := tabulate.Run(p, rows, cols, tabulate.Options{
		Expansion:  a.Expansion,
		MaxMatches: a.MaxMatches,
		Scan:       s.ws.Scan,
	})
	if err != nil {
		return nil, err
	}
	logger.Info("Grand total: %d", m.Grand().Count)
	return m, nil
}
