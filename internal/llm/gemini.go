package llm

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/gemini"
	"github.com/cloudwego/eino/components/model"
	"google.golang.org/genai"

	"github.com/commit-assistant/caa/internal/config"
)

// GeminiProvider implements Provider for Google Gemini
type GeminiProvider struct {
	cfg    config.ProviderConfig
	apiKey string
}

// NewGeminiProvider creates a new Gemini provider
func NewGeminiProvider(cfg config.ProviderConfig, apiKey string) *GeminiProvider {
	return &GeminiProvider{cfg: cfg, apiKey: apiKey}
}

// Name returns the provider name
func (p *GeminiProvider) Name() string {
	return "gemini"
}

// GetConfig returns the provider configuration
func (p *GeminiProvider) GetConfig() config.ProviderConfig {
	return p.cfg
}

// CreateChatModel creates an Eino chat model for Gemini
func (p *GeminiProvider) CreateChatModel(ctx context.Context) (model.BaseChatModel, error) {
	clientCfg := &genai.ClientConfig{
		APIKey:  p.apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if p.cfg.BaseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: p.cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	cm, err := gemini.NewChatModel(ctx, &gemini.Config{
		Client: client,
		Model:  p.cfg.Model,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini chat model: %w", err)
	}
	return cm, nil
}
