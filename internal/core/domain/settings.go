package domain

const unknownDescription = "Unknown"

// StorageBackend selects where the snapshot blob is kept.
type StorageBackend string

// Available storage backends.
const (
	// StorageFile keeps the snapshot as a JSON file in the data directory.
	StorageFile StorageBackend = "file"

	// StorageSQLite keeps the snapshot in a key-value table of a SQLite database.
	StorageSQLite StorageBackend = "sqlite"

	// StorageMemory keeps the snapshot in process memory only.
	StorageMemory StorageBackend = "memory"
)

// IsValid returns true if the backend is recognised.
func (b StorageBackend) IsValid() bool {
	switch b {
	case StorageFile, StorageSQLite, StorageMemory:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (b StorageBackend) String() string {
	return string(b)
}

// Description returns a human-readable description of the backend.
func (b StorageBackend) Description() string {
	switch b {
	case StorageFile:
		return "JSON file"
	case StorageSQLite:
		return "SQLite database"
	case StorageMemory:
		return "In-memory (not persisted)"
	default:
		return unknownDescription
	}
}

// SynonymProviderKind identifies the remote word-suggestion service.
type SynonymProviderKind string

// Available synonym providers.
const (
	// SynonymProviderOpenAI asks an OpenAI-compatible chat endpoint.
	SynonymProviderOpenAI SynonymProviderKind = "openai"

	// SynonymProviderNone disables remote lookup; only the local fallback is used.
	SynonymProviderNone SynonymProviderKind = "none"
)

// IsValid returns true if the provider is recognised.
func (p SynonymProviderKind) IsValid() bool {
	return p == SynonymProviderOpenAI || p == SynonymProviderNone
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p SynonymProviderKind) RequiresAPIKey() bool {
	return p == SynonymProviderOpenAI
}

// String returns the string representation.
func (p SynonymProviderKind) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p SynonymProviderKind) Description() string {
	switch p {
	case SynonymProviderOpenAI:
		return "OpenAI (cloud)"
	case SynonymProviderNone:
		return "None (local vocabulary only)"
	default:
		return unknownDescription
	}
}

// AnalysisSettings controls the indexer.
type AnalysisSettings struct {
	// Expansion is the global expansion policy for searches and refreshes.
	Expansion Expansion

	// MaxMatches caps the matches collected per scan.
	MaxMatches int
}

// StorageSettings controls snapshot persistence.
type StorageSettings struct {
	// Backend is the blob store implementation.
	Backend StorageBackend

	// Dir is the data directory. Empty means ~/.quala/data.
	Dir string
}

// SynonymSettings configures the remote synonym provider.
type SynonymSettings struct {
	Provider SynonymProviderKind
	Model    string
	BaseURL  string
	APIKey   string

	// TimeoutSeconds bounds a single lookup.
	TimeoutSeconds int

	// RequestsPerSecond is the sustained lookup rate.
	RequestsPerSecond float64
}

// IsConfigured returns true if remote lookups can be attempted.
func (s SynonymSettings) IsConfigured() bool {
	if !s.Provider.IsValid() || s.Provider == SynonymProviderNone {
		return false
	}
	return !s.Provider.RequiresAPIKey() || s.APIKey != ""
}

// WorkspaceSettings remembers the active selection between invocations.
type WorkspaceSettings struct {
	Project string
	File    string
}

// AppSettings aggregates all user-configurable settings.
type AppSettings struct {
	Analysis  AnalysisSettings
	Storage   StorageSettings
	Synonyms  SynonymSettings
	Workspace WorkspaceSettings
}

// Default values.
const (
	DefaultMaxMatches        = 10000
	DefaultSynonymModel      = "gpt-4o-mini"
	DefaultSynonymBaseURL    = "https://api.openai.com/v1"
	DefaultSynonymTimeout    = 15
	DefaultSynonymRatePerSec = 2.0
)

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Analysis: AnalysisSettings{
			Expansion:  ExpansionNone,
			MaxMatches: DefaultMaxMatches,
		},
		Storage: StorageSettings{
			Backend: StorageFile,
		},
		Synonyms: SynonymSettings{
			Provider:          SynonymProviderOpenAI,
			Model:             DefaultSynonymModel,
			BaseURL:           DefaultSynonymBaseURL,
			TimeoutSeconds:    DefaultSynonymTimeout,
			RequestsPerSecond: DefaultSynonymRatePerSec,
		},
	}
}
