package llm

import (
	"context"

	"github.com/cloudwego/eino/components/model"

	"github.com/commit-assistant/caa/internal/config"
)

// Provider defines the interface for LLM providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// GetConfig returns the provider configuration
	GetConfig() config.ProviderConfig

	// CreateChatModel creates an Eino chat model instance
	CreateChatModel(ctx context.Context) (model.BaseChatModel, error)
}

// CallOptions returns the per-request options derived from the provider configuration
func CallOptions(cfg config.ProviderConfig) []model.Option {
	var opts []model.Option
	if cfg.Temperature > 0 {
		opts = append(opts, model.WithTemperature(cfg.Temperature))
	}
	if cfg.MaxTokens > 0 {
		opts = append(opts, model.WithMaxTokens(cfg.MaxTokens))
	}
	return opts
}
