// Package synonym builds the remote synonym provider selected in settings.
package synonym

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/quala-cli/internal/adapters/driven/synonym/openai"
	"github.com/custodia-labs/quala-cli/internal/core/domain"
	"github.com/custodia-labs/quala-cli/internal/core/ports/driven"
)

// pingTimeout is the maximum time to wait for connectivity validation.
const pingTimeout = 5 * time.Second

// pinger is implemented by providers that can check connectivity.
type pinger interface {
	Ping(ctx context.Context) error
}

// NewProvider creates the provider selected by settings.
// Returns nil when no remote provider is configured.
func NewProvider(settings domain.SynonymSettings, prompts driven.PromptStore) (driven.SynonymProvider, error) {
	if !settings.IsConfigured() {
		return nil, nil
	}

	switch settings.Provider {
	case domain.SynonymProviderOpenAI:
		return openai.NewProvider(openai.Config{
			APIKey:            settings.APIKey,
			BaseURL:           settings.BaseURL,
			Model:             settings.Model,
			Timeout:           time.Duration(settings.TimeoutSeconds) * time.Second,
			RequestsPerSecond: settings.RequestsPerSecond,
			Prompts:           prompts,
		})
	default:
		return nil, fmt.Errorf("unsupported synonym provider: %s", settings.Provider)
	}
}

// Validate creates the configured provider and checks it is reachable.
func Validate(ctx context.Context, settings domain.SynonymSettings) error {
	provider, err := NewProvider(settings, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrSynonymsUnavailable, err)
	}
	if provider == nil {
		return nil
	}
	p, ok := provider.(pinger)
	if !ok {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := p.Ping(ctx); err != nil {
		return fmt.Errorf("%w: service unreachable (%w)", domain.ErrSynonymsUnavailable, err)
	}
	return nil
}
