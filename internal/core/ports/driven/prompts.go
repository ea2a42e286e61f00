package driven

// Prompt names understood by a PromptStore.
const (
	// PromptSynonyms asks for related search terms. It takes the word (%s)
	// and the maximum number of suggestions (%d).
	PromptSynonyms = "synonyms"
)

// PromptStore provides prompt templates for remote language-model calls.
type PromptStore interface {
	// Load returns the template registered under name.
	Load(name string) (string, error)
}
