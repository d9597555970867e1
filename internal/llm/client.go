package llm

import (
	"context"
	"fmt"
)

// Request is a single completion call.
type Request struct {
	// System is an optional system instruction.
	System      string
	Prompt      string
	Tier        ModelTier
	Temperature float32
	// MaxTokens caps the completion length. Zero leaves the provider default.
	MaxTokens int
}

// Client is an abstraction over LLM providers
type Client interface {
	// GenerateContent generates free-form text
	GenerateContent(ctx context.Context, req Request) (string, error)
	// GenerateJSON asks the provider for a JSON object and strips any code fences
	GenerateJSON(ctx context.Context, req Request) (string, error)
	// GetModel returns the model name used for a tier
	GetModel(tier ModelTier) string
	// Close releases any resources held by the client
	Close() error
}

// NewClient creates the client for config.Provider. A nil config means the
// Groq defaults.
func NewClient(ctx context.Context, config *Config, apiKey string) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}

	switch config.Provider {
	case ProviderGemini:
		return NewGeminiClient(ctx, config, apiKey)
	case ProviderGroq, "":
		return NewGroqClient(config, apiKey)
	default:
		return nil, fmt.Errorf("unsupported LLM provider %q", config.Provider)
	}
}
