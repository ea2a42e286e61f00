package driving

import "github.com/custodia-labs/quala-cli/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// SetExpansion updates the span expansion used by searches and tabulation.
	SetExpansion(e domain.Expansion) error

	// SetMaxMatches updates the indexer safety cap.
	SetMaxMatches(n int) error

	// SetStorage selects the snapshot backend and its directory.
	SetStorage(backend domain.StorageBackend, dir string) error

	// SetSynonymProvider configures the remote synonym provider.
	SetSynonymProvider(provider domain.SynonymProviderKind, model, apiKey string) error

	// Validate checks that the current settings are usable.
	Validate() error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
