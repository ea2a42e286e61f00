package driven

import "context"

// Normaliser turns the raw bytes of an imported file into plain text.
// Each normaliser handles a set of file extensions (e.g. ".md", ".html").
type Normaliser interface {
	// Extensions returns the lower-case extensions, with leading dot, this normaliser handles.
	// An empty slice marks a fallback normaliser.
	Extensions() []string

	// Priority returns the selection priority (higher = preferred).
	// Format-specific normalisers should return 50-89.
	// Fallback normalisers should return 1-9.
	Priority() int

	// Normalise converts raw into the text that annotations will index.
	Normalise(ctx context.Context, name string, raw []byte) (string, error)
}
