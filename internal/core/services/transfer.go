package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/quala-cli/internal/core/mutations"
	"github.com/custodia-labs/quala-cli/internal/core/ports/driven"
	"github.com/custodia-labs/quala-cli/internal/core/ports/driving"
	"github.com/custodia-labs/quala-cli/internal/logger"
	"github.com/custodia-labs/quala-cli/internal/snapshot"
)

// Ensure TransferService implements the interface.
var _ driving.TransferService = (*TransferService)(nil)

// TransferService moves whole snapshots in and out.
type TransferService struct {
	ws      *Workspace
	fetcher driven.SnapshotFetcher
}

// NewTransferService creates a new transfer service.
// The fetcher is optional (can be nil); LoadURL then fails.
func NewTransferService(ws *Workspace, fetcher driven.SnapshotFetcher) *TransferService {
	return &TransferService{ws: ws, fetcher: fetcher}
}

// Export returns the pretty-printed snapshot and the suggested file name.
func (s *TransferService) Export(_ context.Context) ([]byte, string, error) {
	data, err := snapshot.EncodePretty(s.ws.State())
	if err != nil {
		return nil, "", err
	}
	project := s.ws.Selection().Project
	if project == "" {
		project = "quala"
	}
	return data, snapshot.ExportFileName(project), nil
}

// Import replaces the whole state with a snapshot.
func (s *TransferService) Import(ctx context.Context, data []byte) error {
	st, err := snapshot.Decode(data)
	if err != nil {
		return err
	}
	err = s.ws.Update(ctx, func(tx *Tx) error {
		if err := tx.Apply(&mutations.ReplaceState{State: st}); err != nil {
			return err
		}
		tx.live = liveSearch{}
		tx.Select("", "")
		return nil
	})
	if err != nil {
		return err
	}
	logger.Info("Imported %d projects", st.Projects.Len())
	return nil
}

// LoadURL fetches a snapshot and imports it.
func (s *TransferService) LoadURL(ctx context.Context, url string) error {
	if s.fetcher == nil {
		return fmt.Errorf("snapshot fetcher not configured")
	}
	logger.Debug("Fetching snapshot from %s", url)
	data, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		return fmt.Errorf("fetch snapshot: %w", err)
	}
	return s.Import(ctx, data)
}
