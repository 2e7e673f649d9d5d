package llm

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"

	"github.com/commit-assistant/caa/internal/config"
)

// Default API base URLs for providers speaking the OpenAI wire format.
// OpenAI itself uses the client default.
const (
	DeepseekDefaultBaseURL = "https://api.deepseek.com/v1"
	GrokDefaultBaseURL     = "https://api.x.ai/v1"
	OllamaDefaultBaseURL   = "http://localhost:11434/v1"
)

var defaultBaseURLs = map[string]string{
	"deepseek": DeepseekDefaultBaseURL,
	"grok":     GrokDefaultBaseURL,
	"ollama":   OllamaDefaultBaseURL,
}

// DefaultBaseURL returns the default endpoint for a provider, or "" for the client default
func DefaultBaseURL(provider string) string {
	return defaultBaseURLs[provider]
}

// OpenAICompatibleProvider implements Provider for OpenAI and the
// OpenAI-compatible APIs (Deepseek, Grok, Ollama)
type OpenAICompatibleProvider struct {
	name   string
	cfg    config.ProviderConfig
	apiKey string
}

// NewOpenAICompatibleProvider creates a provider for an OpenAI-compatible endpoint
func NewOpenAICompatibleProvider(name string, cfg config.ProviderConfig, apiKey string) *OpenAICompatibleProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL(name)
	}

	// Ollama doesn't require API key, set a placeholder
	if name == "ollama" && apiKey == "" {
		apiKey = "ollama"
	}

	return &OpenAICompatibleProvider{name: name, cfg: cfg, apiKey: apiKey}
}

// Name returns the provider name
func (p *OpenAICompatibleProvider) Name() string {
	return p.name
}

// GetConfig returns the provider configuration
func (p *OpenAICompatibleProvider) GetConfig() config.ProviderConfig {
	return p.cfg
}

// CreateChatModel creates an Eino chat model for the endpoint
func (p *OpenAICompatibleProvider) CreateChatModel(ctx context.Context) (model.BaseChatModel, error) {
	cm, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		APIKey:  p.apiKey,
		Model:   p.cfg.Model,
		BaseURL: p.cfg.BaseURL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create %s chat model: %w", p.name, err)
	}
	return cm, nil
}
