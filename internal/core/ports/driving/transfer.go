package driving

import "context"

// TransferService moves whole snapshots in and out.
type TransferService interface {
	// Export returns the pretty-printed snapshot and the suggested file name.
	Export(ctx context.Context) (data []byte, fileName string, err error)

	// Import replaces the whole state with a snapshot and selects its first
	// project and file. On parse failure the state is untouched.
	Import(ctx context.Context, data []byte) error

	// LoadURL fetches a snapshot and imports it.
	LoadURL(ctx context.Context, url string) error
}
