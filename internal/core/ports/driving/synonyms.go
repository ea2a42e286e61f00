package driving

import "context"

// SynonymService suggests and accepts alternative search terms.
type SynonymService interface {
	// Suggest returns candidates for word. The list is never empty for a non-empty word.
	Suggest(ctx context.Context, word string) ([]string, error)

	// Accept saves every term as a Search mark in one transition and returns their ids.
	Accept(ctx context.Context, terms []string) ([]string, error)
}
