package driven

import "context"

// SnapshotFetcher downloads a snapshot document from a URL.
type SnapshotFetcher interface {
	// Fetch returns the raw body behind url. Non-success responses are errors.
	Fetch(ctx context.Context, url string) ([]byte, error)
}
