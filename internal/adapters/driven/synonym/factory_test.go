package synonym

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/quala-cli/internal/core/domain"
)

func TestNewProvider(t *testing.T) {
	t.Run("none", func(t *testing.T) {
		p, err := NewProvider(domain.SynonymSettings{Provider: domain.SynonymProviderNone}, nil)
		require.NoError(t, err)
		assert.Nil(t, p)
	})

	t.Run("openai without key", func(t *testing.T) {
		p, err := NewProvider(domain.SynonymSettings{Provider: domain.SynonymProviderOpenAI}, nil)
		require.NoError(t, err)
		assert.Nil(t, p)
	})

	t.Run("openai", func(t *testing.T) {
		settings := domain.DefaultAppSettings().Synonyms
		settings.APIKey = "sk-test"
		p, err := NewProvider(settings, nil)
		require.NoError(t, err)
		require.NotNil(t, p)
		assert.Equal(t, "openai", p.Name())
	})
}

func TestValidate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer good" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	settings := domain.DefaultAppSettings().Synonyms
	settings.BaseURL = srv.URL

	settings.APIKey = "good"
	assert.NoError(t, Validate(context.Background(), settings))

	settings.APIKey = "bad"
	assert.ErrorIs(t, Validate(context.Background(), settings), domain.ErrSynonymsUnavailable)

	assert.NoError(t, Validate(context.Background(), domain.SynonymSettings{Provider: domain.SynonymProviderNone}))
}
