package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, ProviderGroq, config.Provider)
	assert.Equal(t, "llama-3.1-8b-instant", config.GetModel(TierLite))
	assert.Equal(t, "llama-3.3-70b-versatile", config.GetModel(TierStandard))
	assert.Equal(t, "llama-3.3-70b-versatile", config.GetModel(TierAdvanced))
}

func TestConfigFor(t *testing.T) {
	assert.Equal(t, "gemini-2.5-pro", ConfigFor(ProviderGemini).GetModel(TierAdvanced))
	assert.Equal(t, ProviderGroq, ConfigFor(ProviderGroq).Provider)
}

func TestParseProvider(t *testing.T) {
	p, err := ParseProvider("")
	require.NoError(t, err)
	assert.Equal(t, ProviderGroq, p)

	p, err = ParseProvider("gemini")
	require.NoError(t, err)
	assert.Equal(t, ProviderGemini, p)

	_, err = ParseProvider("mixtral")
	assert.Error(t, err)
}

func TestGetModel_Fallback(t *testing.T) {
	config := &Config{
		Provider: ProviderGroq,
		Models: map[ModelTier]string{
			TierLite: "fallback-model",
		},
	}

	// Unknown tier should fallback to TierStandard, then TierLite
	assert.Equal(t, "fallback-model", config.GetModel("unknown"))
}

func TestGetModel_EmptyConfig(t *testing.T) {
	config := &Config{
		Provider: ProviderGroq,
		Models:   map[ModelTier]string{},
	}

	assert.Equal(t, "", config.GetModel(TierAdvanced))
}

func TestWithModel(t *testing.T) {
	config := DefaultConfig()
	config.BaseURL = "http://localhost:9999"
	newConfig := config.WithModel(TierAdvanced, "custom-model")

	// Original should be unchanged
	assert.Equal(t, "llama-3.3-70b-versatile", config.GetModel(TierAdvanced))

	assert.Equal(t, "custom-model", newConfig.GetModel(TierAdvanced))
	assert.Equal(t, "llama-3.1-8b-instant", newConfig.GetModel(TierLite))
	assert.Equal(t, "http://localhost:9999", newConfig.BaseURL)
}

func TestWithModel_NilModels(t *testing.T) {
	config := (&Config{Provider: ProviderGemini}).WithModel(TierLite, "tiny")
	assert.Equal(t, "tiny", config.GetModel(TierAdvanced))
	assert.Equal(t, ProviderGemini, config.Provider)
}
