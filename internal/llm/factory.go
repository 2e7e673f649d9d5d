package llm

import (
	"fmt"
	"strings"

	"github.com/commit-assistant/caa/internal/config"
)

// ProviderFactory creates LLM providers based on configuration
type ProviderFactory struct{}

// NewProviderFactory creates a new ProviderFactory
func NewProviderFactory() *ProviderFactory {
	return &ProviderFactory{}
}

// Create creates a Provider for the configured provider name
func (f *ProviderFactory) Create(cfg config.ProviderConfig, apiKey string) (Provider, error) {
	name := strings.ToLower(cfg.Name)
	switch name {
	case "openai", "deepseek", "ollama", "grok":
		return NewOpenAICompatibleProvider(name, cfg, apiKey), nil
	case "gemini":
		return NewGeminiProvider(cfg, apiKey), nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s", cfg.Name)
	}
}

// CreateFromConfig resolves the model and API key from the application config
// and creates the matching Provider
func (f *ProviderFactory) CreateFromConfig(appCfg *config.Config, modelName string) (Provider, error) {
	apiKey, err := appCfg.APIKey()
	if err != nil {
		return nil, err
	}
	providerCfg, _ := appCfg.GetProvider(modelName)
	return f.Create(providerCfg, apiKey)
}
