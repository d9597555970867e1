// Package llm provides LLM provider configuration and client abstractions.
// Groq's OpenAI-compatible API is the default provider; Gemini is the alternative.
package llm

import (
	"fmt"
	"maps"
)

// ModelTier picks a model by how demanding the call is. Extraction runs on
// TierStandard, website critique on TierAdvanced.
type ModelTier string

const (
	TierLite     ModelTier = "lite"
	TierStandard ModelTier = "standard"
	TierAdvanced ModelTier = "advanced"
)

// Provider represents an LLM provider
type Provider string

// Supported providers
const (
	ProviderGroq   Provider = "groq"
	ProviderGemini Provider = "gemini"
)

// ParseProvider accepts a provider name; empty means Groq.
func ParseProvider(name string) (Provider, error) {
	switch Provider(name) {
	case "", ProviderGroq:
		return ProviderGroq, nil
	case ProviderGemini:
		return ProviderGemini, nil
	default:
		return "", fmt.Errorf("unknown LLM provider %q", name)
	}
}

// Config selects a provider and its model per tier.
type Config struct {
	Provider Provider
	Models   map[ModelTier]string
	// BaseURL overrides the provider endpoint. Only used by Groq.
	BaseURL string
}

// DefaultConfig returns the default configuration (Groq)
func DefaultConfig() *Config {
	return DefaultGroqConfig()
}

// DefaultGroqConfig returns the default Groq configuration
func DefaultGroqConfig() *Config {
	return &Config{
		Provider: ProviderGroq,
		Models: map[ModelTier]string{
			TierLite:     "llama-3.1-8b-instant",
			TierStandard: "llama-3.3-70b-versatile",
			TierAdvanced: "llama-3.3-70b-versatile",
		},
	}
}

// DefaultGeminiConfig returns the default Gemini configuration
func DefaultGeminiConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
	}
}

// ConfigFor returns the default configuration of a provider.
func ConfigFor(p Provider) *Config {
	if p == ProviderGemini {
		return DefaultGeminiConfig()
	}
	return DefaultGroqConfig()
}

// tierFallback is the lookup order for a tier with no model of its own.
var tierFallback = []ModelTier{TierStandard, TierLite}

// GetModel returns the model for tier, falling back to the standard and then
// the lite model. Empty means nothing is configured.
func (c *Config) GetModel(tier ModelTier) string {
	if m := c.Models[tier]; m != "" {
		return m
	}
	for _, t := range tierFallback {
		if m := c.Models[t]; m != "" {
			return m
		}
	}
	return ""
}

// WithModel returns a copy of c with tier pinned to model.
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	out := *c
	out.Models = maps.Clone(c.Models)
	if out.Models == nil {
		out.Models = map[ModelTier]string{}
	}
	out.Models[tier] = model
	return &out
}
