// Package fetch downloads snapshot documents over HTTP.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/custodia-labs/quala-cli/internal/core/ports/driven"
)

// Ensure HTTPFetcher implements the interface.
var _ driven.SnapshotFetcher = (*HTTPFetcher)(nil)

// Default limits.
const (
	DefaultTimeout = 30 * time.Second
	MaxBodyBytes   = 64 << 20
)

// HTTPFetcher is a plain GET client. It never retries.
type HTTPFetcher struct {
	client  *http.Client
	maxBody int64
}

// NewHTTPFetcher creates a fetcher with the given timeout (DefaultTimeout when zero).
func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPFetcher{
		client:  &http.Client{Timeout: timeout},
		maxBody: MaxBodyBytes,
	}
}

// Fetch returns the body behind url.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBody+1))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if int64(len(body)) > f.maxBody {
		return nil, fmt.Errorf("GET %s: body exceeds %d bytes", url, f.maxBody)
	}
	return body, nil
}
