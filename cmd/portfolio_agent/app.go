package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/jonathan/portfolio-generator/internal/config"
	"github.com/jonathan/portfolio-generator/internal/fetch"
	"github.com/jonathan/portfolio-generator/internal/llm"
	"github.com/jonathan/portfolio-generator/internal/localstore"
	"github.com/jonathan/portfolio-generator/internal/pipeline"
	"github.com/jonathan/portfolio-generator/internal/social"
)

// loadConfig reads --config when given, fills defaults, applies the
// environment and validates the result.
func loadConfig() (*config.Config, error) {
	cfg := &config.Config{}
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	merged := cfg.MergeWithDefaults(config.Defaults())
	merged.ApplyEnv()
	if verbose {
		merged.Verbose = true
	}
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}

// newLogger returns a production JSON logger, at debug level when verbose.
func newLogger(verbose bool) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if verbose {
		zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return zc.Build()
}

// newLLMClient builds the configured LLM client. It returns a nil client when
// the provider's API key is not set; callers then use their fallbacks.
func newLLMClient(ctx context.Context, cfg *config.Config, logger *zap.Logger) (llm.Client, error) {
	apiKey := cfg.LLMAPIKey()
	if apiKey == "" {
		logger.Warn("no LLM API key configured, LLM features are disabled", zap.String("provider", cfg.LLM.Provider))
		return nil, nil
	}
	llmCfg, err := cfg.LLMClientConfig()
	if err != nil {
		return nil, err
	}
	client, err := llm.NewClient(ctx, llmCfg, apiKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	return client, nil
}

// pipelineOptions wires the social providers into pipeline options.
func pipelineOptions(cfg *config.Config, logger *zap.Logger) pipeline.Options {
	return pipeline.Options{
		GitHub:         social.NewGitHubFetcher(cfg.GitHubBaseURL, cfg.GitHubToken),
		LinkedIn:       social.NewLinkedInFetcher(cfg.LinkedInBaseURL, cfg.RapidAPIKey),
		Timeout:        time.Duration(cfg.PipelineTimeout),
		EvidenceLevels: cfg.EvidenceLevels,
		Logger:         logger,
	}
}

// newFetcher builds the page fetcher used by website analysis.
func newFetcher(cfg *config.Config, logger *zap.Logger) *fetch.Fetcher {
	return fetch.NewFetcher(fetch.FetcherConfig{
		UseBrowser: cfg.UseBrowser,
		Logger:     logger,
	})
}

// openLocalStore opens the directory-backed local store under cfg.DataDir.
func openLocalStore(cfg *config.Config) (*localstore.Store, error) {
	backend, err := localstore.NewDirBackend(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open data directory %s: %w", cfg.DataDir, err)
	}
	return localstore.New(backend), nil
}

// setup loads configuration and a logger for a command.
func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	logger, err := newLogger(cfg.Verbose)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return cfg, logger, nil
}
