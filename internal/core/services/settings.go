package services

import (
	"fmt"
	"os"

	"github.com/custodia-labs/quala-cli/internal/core/domain"
	"github.com/custodia-labs/quala-cli/internal/core/ports/driven"
	"github.com/custodia-labs/quala-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyExpansion       = "analysis.expansion"
	keyMaxMatches      = "analysis.max_matches"
	keyStorageBackend  = "storage.backend"
	keyStorageDir      = "storage.dir"
	keySynonymProvider = "synonyms.provider"
	keySynonymModel    = "synonyms.model"
	keySynonymBaseURL  = "synonyms.base_url"
	keySynonymAPIKey   = "synonyms.api_key"
	keySynonymTimeout  = "synonyms.timeout_seconds"
	keySynonymRate     = "synonyms.requests_per_second"
)

// EnvOpenAIKey is consulted when no synonym API key is configured.
//
//nolint:gosec // G101: environment variable name, not a credential.
const EnvOpenAIKey = "OPENAI_API_KEY"

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	ws          *Workspace
}

// NewSettingsService creates a new settings service.
// The workspace is optional (can be nil); when set, analysis changes apply to it immediately.
func NewSettingsService(configStore driven.ConfigStore, ws *Workspace) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		ws:          ws,
	}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Analysis: domain.AnalysisSettings{
			Expansion:  s.getExpansion(defaults.Analysis.Expansion),
			MaxMatches: s.getInt(keyMaxMatches, defaults.Analysis.MaxMatches),
		},
		Storage: domain.StorageSettings{
			Backend: s.getBackend(defaults.Storage.Backend),
			Dir:     s.configStore.GetString(keyStorageDir), // No default - resolved against the config dir
		},
		Synonyms: domain.SynonymSettings{
			Provider:          s.getProvider(defaults.Synonyms.Provider),
			Model:             s.getString(keySynonymModel, defaults.Synonyms.Model),
			BaseURL:           s.getString(keySynonymBaseURL, defaults.Synonyms.BaseURL),
			APIKey:            s.getString(keySynonymAPIKey, os.Getenv(EnvOpenAIKey)),
			TimeoutSeconds:    s.getInt(keySynonymTimeout, defaults.Synonyms.TimeoutSeconds),
			RequestsPerSecond: s.getFloat(keySynonymRate, defaults.Synonyms.RequestsPerSecond),
		},
		Workspace: domain.WorkspaceSettings{
			Project: s.configStore.GetString(keyWorkspaceProject),
			File:    s.configStore.GetString(keyWorkspaceFile),
		},
	}

	return settings, nil
}

// Save persists application settings. The workspace selection is owned by
// the workspace and not written here.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if err := s.configStore.Set(keyExpansion, settings.Analysis.Expansion.String()); err != nil {
		return fmt.Errorf("save expansion: %w", err)
	}
	if err := s.configStore.Set(keyMaxMatches, settings.Analysis.MaxMatches); err != nil {
		return fmt.Errorf("save max_matches: %w", err)
	}

	if err := s.configStore.Set(keyStorageBackend, settings.Storage.Backend.String()); err != nil {
		return fmt.Errorf("save storage backend: %w", err)
	}
	if err := s.configStore.Set(keyStorageDir, settings.Storage.Dir); err != nil {
		return fmt.Errorf("save storage dir: %w", err)
	}

	if err := s.configStore.Set(keySynonymProvider, settings.Synonyms.Provider.String()); err != nil {
		return fmt.Errorf("save synonym provider: %w", err)
	}
	if err := s.configStore.Set(keySynonymModel, settings.Synonyms.Model); err != nil {
		return fmt.Errorf("save synonym model: %w", err)
	}
	if err := s.configStore.Set(keySynonymBaseURL, settings.Synonyms.BaseURL); err != nil {
		return fmt.Errorf("save synonym base_url: %w", err)
	}
	if settings.Synonyms.APIKey != "" && settings.Synonyms.APIKey != os.Getenv(EnvOpenAIKey) {
		if err := s.configStore.Set(keySynonymAPIKey, settings.Synonyms.APIKey); err != nil {
			return fmt.Errorf("save synonym api_key: %w", err)
		}
	}
	if err := s.configStore.Set(keySynonymTimeout, settings.Synonyms.TimeoutSeconds); err != nil {
		return fmt.Errorf("save synonym timeout: %w", err)
	}
	if err := s.configStore.Set(keySynonymRate, settings.Synonyms.RequestsPerSecond); err != nil {
		return fmt.Errorf("save synonym rate: %w", err)
	}

	if s.ws != nil {
		s.ws.SetAnalysis(settings.Analysis)
	}
	return nil
}

// SetExpansion updates the span expansion used by searches and tabulation.
func (s *SettingsService) SetExpansion(e domain.Expansion) error {
	if !e.IsValid() {
		return fmt.Errorf("invalid expansion: %s", e)
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.Analysis.Expansion = e
	return s.Save(settings)
}

// SetMaxMatches updates the indexer safety cap.
func (s *SettingsService) SetMaxMatches(n int) error {
	if n <= 0 {
		return fmt.Errorf("max matches must be positive, got %d", n)
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.Analysis.MaxMatches = n
	return s.Save(settings)
}

// SetStorage selects the snapshot backend and its directory.
func (s *SettingsService) SetStorage(backend domain.StorageBackend, dir string) error {
	if !backend.IsValid() {
		return fmt.Errorf("invalid storage backend: %s", backend)
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.Storage.Backend = backend
	settings.Storage.Dir = dir
	return s.Save(settings)
}

// SetSynonymProvider configures the remote synonym provider.
func (s *SettingsService) SetSynonymProvider(provider domain.SynonymProviderKind, model, apiKey string) error {
	if !provider.IsValid() {
		return fmt.Errorf("invalid synonym provider: %s", provider)
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	if apiKey != "" {
		settings.Synonyms.APIKey = apiKey
	}
	if provider.RequiresAPIKey() && settings.Synonyms.APIKey == "" {
		return fmt.Errorf("API key required for %s (or set %s)", provider, EnvOpenAIKey)
	}

	settings.Synonyms.Provider = provider
	if model != "" {
		settings.Synonyms.Model = model
	} else {
		settings.Synonyms.Model = domain.DefaultSynonymModel
	}
	return s.Save(settings)
}

// Validate checks that the current settings are usable.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	if !settings.Analysis.Expansion.IsValid() {
		return fmt.Errorf("invalid expansion: %s", settings.Analysis.Expansion)
	}
	if settings.Analysis.MaxMatches <= 0 {
		return fmt.Errorf("max matches must be positive, got %d", settings.Analysis.MaxMatches)
	}
	if settings.Synonyms.Provider != domain.SynonymProviderNone && settings.Synonyms.TimeoutSeconds <= 0 {
		return fmt.Errorf("synonym timeout must be positive, got %d", settings.Synonyms.TimeoutSeconds)
	}
	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	val := s.configStore.GetFloat(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getExpansion(defaultVal domain.Expansion) domain.Expansion {
	e := domain.Expansion(s.configStore.GetString(keyExpansion))
	if !e.IsValid() {
		return defaultVal
	}
	return e
}

func (s *SettingsService) getBackend(defaultVal domain.StorageBackend) domain.StorageBackend {
	b := domain.StorageBackend(s.configStore.GetString(keyStorageBackend))
	if !b.IsValid() {
		return defaultVal
	}
	return b
}

func (s *SettingsService) getProvider(defaultVal domain.SynonymProviderKind) domain.SynonymProviderKind {
	p := domain.SynonymProviderKind(s.configStore.GetString(keySynonymProvider))
	if !p.IsValid() {
		return defaultVal
	}
	return p
}
