package driven

import "context"

// NormaliserRegistry selects the appropriate normaliser for a file.
// It maintains a priority-ordered list of normalisers and dispatches
// on the file extension.
type NormaliserRegistry interface {
	// Normalise converts raw using the best matching normaliser.
	// Selection priority: extension-specific > fallback.
	Normalise(ctx context.Context, name string, raw []byte) (string, error)

	// Register adds a normaliser to the registry.
	Register(normaliser Normaliser)

	// SupportedExtensions returns every extension with a specific normaliser.
	SupportedExtensions() []string
}
