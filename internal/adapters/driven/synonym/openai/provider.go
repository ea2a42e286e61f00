// Package openai provides a synonym provider backed by an OpenAI-compatible
// chat completions endpoint.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/quala-cli/internal/core/ports/driven"
)

// Ensure Provider implements the interface.
var _ driven.SynonymProvider = (*Provider)(nil)

// Default configuration values.
const (
	DefaultBaseURL           = "https://api.openai.com/v1"
	DefaultModel             = "gpt-4o-mini"
	DefaultTimeout           = 15 * time.Second
	DefaultRequestsPerSecond = 2.0
	DefaultMaxSuggestions    = 10
)

// defaultPrompt is used when no PromptStore is configured.
const defaultPrompt = `List single words or short phrases related to "%s". Return at most %d entries as a JSON array of lowercase strings.`

// Config holds configuration for the provider.
type Config struct {
	// APIKey is the OpenAI API key (required).
	APIKey string

	// BaseURL is the API base URL. Can point at any compatible server.
	BaseURL string

	// Model is the chat model to use.
	Model string

	// Timeout bounds a single request.
	Timeout time.Duration

	// RequestsPerSecond is the sustained request rate. Bursts of one.
	RequestsPerSecond float64

	// MaxSuggestions caps the number of terms asked for and returned.
	MaxSuggestions int

	// Prompts supplies the user-editable prompt template. Optional.
	Prompts driven.PromptStore
}

// Provider asks a chat model for related terms.
type Provider struct {
	client  *http.Client
	limiter *rate.Limiter
	baseURL string
	apiKey  string
	model   string
	max     int
	prompts driven.PromptStore
}

type chatCompletionRequest struct {
	Model       string              `json:"model"`
	Messages    []chatCompletionMsg `json:"messages"`
	Temperature float64             `json:"temperature,omitempty"`
}

type chatCompletionMsg struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// NewProvider creates a new OpenAI synonym provider.
func NewProvider(cfg Config) (*Provider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai: API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = DefaultRequestsPerSecond
	}
	if cfg.MaxSuggestions <= 0 {
		cfg.MaxSuggestions = DefaultMaxSuggestions
	}

	return &Provider{
		client:  &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		max:     cfg.MaxSuggestions,
		prompts: cfg.Prompts,
	}, nil
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "openai"
}

// Model returns the chat model in use.
func (p *Provider) Model() string {
	return p.model
}

// Synonyms asks the model for terms related to word.
func (p *Provider) Synonyms(ctx context.Context, word string) ([]string, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("openai: rate limit wait: %w", err)
	}

	reqBody := chatCompletionRequest{
		Model: p.model,
		Messages: []chatCompletionMsg{
			{Role: "user", Content: fmt.Sprintf(p.loadPrompt(), word, p.max)},
		},
		Temperature: 0.2,
	}
	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/chat/completions", bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if msg := gjson.GetBytes(body, "error.message"); msg.Exists() {
		return nil, fmt.Errorf("openai error: %s", msg.String())
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("openai error (status %d): %s", resp.StatusCode, string(body))
	}

	content := gjson.GetBytes(body, "choices.0.message.content")
	if !content.Exists() {
		return nil, fmt.Errorf("openai: no response choices returned")
	}
	terms := parseTerms(content.String())
	if len(terms) > p.max {
		terms = terms[:p.max]
	}
	return terms, nil
}

// Ping checks the endpoint and API key against /models.
func (p *Provider) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/models", http.NoBody)
	if err != nil {
		return fmt.Errorf("openai: failed to create ping request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("openai: ping failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("openai: API returned status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}

func (p *Provider) loadPrompt() string {
	if p.prompts == nil {
		return defaultPrompt
	}
	prompt, err := p.prompts.Load(driven.PromptSynonyms)
	if err != nil {
		return defaultPrompt
	}
	return prompt
}

// parseTerms reads a JSON array of strings, or failing that one term per
// line or comma.
func parseTerms(content string) []string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.Trim(content, "`\n ")

	var terms []string
	if arr := gjson.Parse(content); arr.IsArray() {
		arr.ForEach(func(_, v gjson.Result) bool {
			if t := strings.TrimSpace(v.String()); t != "" {
				terms = append(terms, t)
			}
			return true
		})
		return terms
	}

	for _, t := range strings.FieldsFunc(content, func(r rune) bool { return r == '\n' || r == ',' }) {
		t = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(t), "-*0123456789."))
		if t != "" {
			terms = append(terms, t)
		}
	}
	return terms
}
