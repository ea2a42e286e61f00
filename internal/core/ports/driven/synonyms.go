package driven

import "context"

// SynonymProvider suggests alternative search terms for a word.
// This is an optional service - when nil or failing, the synonym service
// falls back to local suggestions.
type SynonymProvider interface {
	// Synonyms returns candidate terms for word, best first.
	Synonyms(ctx context.Context, word string) ([]string, error)

	// Name identifies the provider in logs.
	Name() string
}
