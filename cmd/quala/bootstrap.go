package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	configfile "github.com/custodia-labs/quala-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/quala-cli/internal/adapters/driven/fetch"
	filestore "github.com/custodia-labs/quala-cli/internal/adapters/driven/storage/file"
	"github.com/custodia-labs/quala-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/quala-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/quala-cli/internal/adapters/driven/synonym"
	"github.com/custodia-labs/quala-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/quala-cli/internal/core/domain"
	"github.com/custodia-labs/quala-cli/internal/core/ports/driven"
	"github.com/custodia-labs/quala-cli/internal/core/services"
	"github.com/custodia-labs/quala-cli/internal/logger"
	"github.com/custodia-labs/quala-cli/internal/normalisers"
	"github.com/custodia-labs/quala-cli/internal/postprocessors"
)

// InMemory as the config directory keeps everything in memory.
const InMemory = ":memory:"

// keyPostProcessors lists the import clean-up steps.
const keyPostProcessors = "import.postprocessors"

// bootstrap wires the driven adapters for configDir into the services.
func bootstrap(ctx context.Context, configDir string) (*cli.Services, func() error, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, nil, fmt.Errorf("getting home directory: %w", err)
		}
		configDir = filepath.Join(home, ".quala")
	}

	config, err := openConfig(configDir)
	if err != nil {
		return nil, nil, err
	}

	settings, err := services.NewSettingsService(config, nil).Get()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read settings: %w", err)
	}

	store, closeStore, err := openBlobStore(configDir, settings.Storage)
	if err != nil {
		return nil, nil, err
	}

	ws := services.NewWorkspace(store, config)
	ws.SetAnalysis(settings.Analysis)
	if err := ws.Load(ctx); err != nil {
		closeStore() //nolint:errcheck // already failing
		return nil, nil, err
	}

	pipeline, err := buildPipeline(config)
	if err != nil {
		closeStore() //nolint:errcheck // already failing
		return nil, nil, err
	}

	provider := newSynonymProvider(configDir, settings.Synonyms)

	return &cli.Services{
		Project:    services.NewProjectService(ws),
		File:       services.NewFileService(ws, normalisers.NewDefaultRegistry(), pipeline),
		Annotation: services.NewAnnotationService(ws),
		Group:      services.NewGroupService(ws),
		Render:     services.NewRenderService(ws),
		Tabulation: services.NewTabulationService(ws),
		Synonyms:   services.NewSynonymService(ws, provider),
		Transfer:   services.NewTransferService(ws, fetch.NewHTTPFetcher(0)),
		Settings:   services.NewSettingsService(config, ws),
	}, closeStore, nil
}

func openConfig(configDir string) (driven.ConfigStore, error) {
	if configDir == InMemory {
		return memory.NewConfigStore(), nil
	}
	config, err := configfile.NewConfigStore(configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	return config, nil
}

// openBlobStore opens the snapshot backend. The close function is never nil.
func openBlobStore(configDir string, s domain.StorageSettings) (driven.BlobStore, func() error, error) {
	noop := func() error { return nil }

	if configDir == InMemory || s.Backend == domain.StorageMemory {
		return memory.NewBlobStore(), noop, nil
	}

	dir := s.Dir
	if dir == "" {
		dir = filepath.Join(configDir, "data")
	}

	switch s.Backend {
	case domain.StorageSQLite:
		store, err := sqlite.NewStore(dir)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open sqlite store: %w", err)
		}
		logger.Debug("Using sqlite store at %s", store.Path())
		return store, store.Close, nil
	case domain.StorageFile, "":
		store, err := filestore.NewBlobStore(dir)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open file store: %w", err)
		}
		logger.Debug("Using file store at %s", dir)
		return store, noop, nil
	default:
		return nil, nil, fmt.Errorf("storage backend %q: %w", s.Backend, domain.ErrInvalidInput)
	}
}

// buildPipeline returns nil when no post-processors are configured.
func buildPipeline(config driven.ConfigStore) (driven.PostProcessorPipeline, error) {
	names := config.GetStringSlice(keyPostProcessors)
	if names == nil {
		names = postprocessors.DefaultNames
	}
	if len(names) == 0 {
		return nil, nil
	}

	registry := postprocessors.NewRegistry()
	postprocessors.RegisterDefaults(registry)
	pipeline, err := registry.BuildPipeline(names)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s: %w", keyPostProcessors, err)
	}
	return pipeline, nil
}

// newSynonymProvider falls back to local suggestions when the remote
// provider cannot be built.
func newSynonymProvider(configDir string, s domain.SynonymSettings) driven.SynonymProvider {
	var prompts driven.PromptStore
	if configDir != InMemory {
		store, err := configfile.NewPromptStore(filepath.Join(configDir, "prompts"))
		if err != nil {
			logger.Warn("prompt store unavailable: %v", err)
		} else {
			prompts = store
		}
	}

	provider, err := synonym.NewProvider(s, prompts)
	if err != nil {
		logger.Warn("synonym provider unavailable, using local suggestions: %v", err)
		return nil
	}
	return provider
}
