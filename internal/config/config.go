// Package config provides configuration loading and validation for the service
// and CLI. Non-secret settings come from a JSON or YAML file; credentials are
// read from the environment only and have no defaults.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jonathan/portfolio-generator/internal/llm"
	"github.com/jonathan/portfolio-generator/internal/store"
)

// Default timeouts.
const (
	DefaultCVTimeout       = 15 * time.Second
	DefaultPipelineTimeout = 30 * time.Second
	DefaultPort            = 8080
	DefaultDataDir         = ".portfolio"
	DefaultStoreTTL        = 24 * time.Hour
)

// Environment variables holding credentials.
const (
	EnvGroqAPIKey           = "GROQ_API_KEY"
	EnvGeminiAPIKey         = "GEMINI_API_KEY"
	EnvRapidAPIKey          = "RAPIDAPI_KEY"
	EnvGitHubToken          = "GITHUB_TOKEN"
	EnvPaymentSigningSecret = "PAYMENT_SIGNING_SECRET"
	EnvDatabaseURL          = "DATABASE_URL"
)

// Duration is a time.Duration written as "30s" in config files.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// StoreConfig selects the server-side portfolio store.
type StoreConfig struct {
	Backend  string   `json:"backend,omitempty" yaml:"backend,omitempty"`
	DSN      string   `json:"dsn,omitempty" yaml:"dsn,omitempty"` // SQLite path; PostgreSQL uses DATABASE_URL when empty
	TTL      Duration `json:"ttl,omitempty" yaml:"ttl,omitempty"`
	Capacity int      `json:"capacity,omitempty" yaml:"capacity,omitempty"`
}

// LLMConfig selects the LLM provider and optional model overrides per tier.
type LLMConfig struct {
	Provider string            `json:"provider,omitempty" yaml:"provider,omitempty"`
	BaseURL  string            `json:"base_url,omitempty" yaml:"base_url,omitempty"`
	Models   map[string]string `json:"models,omitempty" yaml:"models,omitempty"`
}

// Config is the full service configuration.
type Config struct {
	Port    int    `json:"port,omitempty" yaml:"port,omitempty"`
	DataDir string `json:"data_dir,omitempty" yaml:"data_dir,omitempty"` // Local store directory used by the CLI

	Store StoreConfig `json:"store,omitempty" yaml:"store,omitempty"`
	LLM   LLMConfig   `json:"llm,omitempty" yaml:"llm,omitempty"`

	GitHubBaseURL   string `json:"github_base_url,omitempty" yaml:"github_base_url,omitempty"`
	LinkedInBaseURL string `json:"linkedin_base_url,omitempty" yaml:"linkedin_base_url,omitempty"`

	CVTimeout       Duration `json:"cv_timeout,omitempty" yaml:"cv_timeout,omitempty"`
	PipelineTimeout Duration `json:"pipeline_timeout,omitempty" yaml:"pipeline_timeout,omitempty"`

	UseBrowser     bool `json:"use_browser,omitempty" yaml:"use_browser,omitempty"`         // Render client-side pages with a headless browser
	EvidenceLevels bool `json:"evidence_levels,omitempty" yaml:"evidence_levels,omitempty"` // Derive skill levels from project and experience mentions
	Verbose        bool `json:"verbose,omitempty" yaml:"verbose,omitempty"`

	// Credentials, environment only.
	GroqAPIKey           string `json:"-" yaml:"-"`
	GeminiAPIKey         string `json:"-" yaml:"-"`
	RapidAPIKey          string `json:"-" yaml:"-"`
	GitHubToken          string `json:"-" yaml:"-"`
	PaymentSigningSecret string `json:"-" yaml:"-"`
	DatabaseURL          string `json:"-" yaml:"-"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Port:    DefaultPort,
		DataDir: DefaultDataDir,
		Store: StoreConfig{
			Backend:  store.BackendMemory,
			TTL:      Duration(DefaultStoreTTL),
			Capacity: store.DefaultCapacity,
		},
		LLM:             LLMConfig{Provider: string(llm.ProviderGroq)},
		CVTimeout:       Duration(DefaultCVTimeout),
		PipelineTimeout: Duration(DefaultPipelineTimeout),
	}
}

// LoadConfig loads configuration from a JSON or YAML file, chosen by extension.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// MergeWithDefaults returns a new Config with zero fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.DataDir == "" {
		result.DataDir = defaults.DataDir
	}
	if result.Store.Backend == "" {
		result.Store.Backend = defaults.Store.Backend
	}
	if result.Store.DSN == "" {
		result.Store.DSN = defaults.Store.DSN
	}
	if result.Store.TTL == 0 {
		result.Store.TTL = defaults.Store.TTL
	}
	if result.Store.Capacity == 0 {
		result.Store.Capacity = defaults.Store.Capacity
	}
	if result.LLM.Provider == "" {
		result.LLM.Provider = defaults.LLM.Provider
	}
	if result.LLM.BaseURL == "" {
		result.LLM.BaseURL = defaults.LLM.BaseURL
	}
	if result.GitHubBaseURL == "" {
		result.GitHubBaseURL = defaults.GitHubBaseURL
	}
	if result.LinkedInBaseURL == "" {
		result.LinkedInBaseURL = defaults.LinkedInBaseURL
	}
	if result.CVTimeout == 0 {
		result.CVTimeout = defaults.CVTimeout
	}
	if result.PipelineTimeout == 0 {
		result.PipelineTimeout = defaults.PipelineTimeout
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags and environment win for bools)

	return result
}

// ApplyEnv reads credentials and a few overrides from the environment.
func (c *Config) ApplyEnv() {
	c.GroqAPIKey = os.Getenv(EnvGroqAPIKey)
	c.GeminiAPIKey = os.Getenv(EnvGeminiAPIKey)
	c.RapidAPIKey = os.Getenv(EnvRapidAPIKey)
	c.GitHubToken = os.Getenv(EnvGitHubToken)
	c.PaymentSigningSecret = os.Getenv(EnvPaymentSigningSecret)
	c.DatabaseURL = os.Getenv(EnvDatabaseURL)

	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Port = port
		}
	}
	if v := os.Getenv("LLM_PROVIDER"); v != "" {
		c.LLM.Provider = v
	}
	if v := os.Getenv("STORE_BACKEND"); v != "" {
		c.Store.Backend = v
	}
	if v := os.Getenv("USE_BROWSER"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.UseBrowser = b
		}
	}
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.CVTimeout < 0 || c.PipelineTimeout < 0 || c.Store.TTL < 0 {
		return fmt.Errorf("config error: durations must be non-negative")
	}
	if c.Store.Capacity < 0 {
		return fmt.Errorf("config error: 'store.capacity' must be non-negative")
	}
	if _, err := llm.ParseProvider(c.LLM.Provider); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	switch c.Store.Backend {
	case "", store.BackendMemory:
	case store.BackendSQLite:
		if c.Store.DSN == "" {
			return fmt.Errorf("config error: sqlite store requires 'store.dsn'")
		}
	case store.BackendPostgres:
		if c.StoreDSN() == "" {
			return fmt.Errorf("config error: postgres store requires %s or 'store.dsn'", EnvDatabaseURL)
		}
	default:
		return fmt.Errorf("config error: unknown store backend %q", c.Store.Backend)
	}
	return nil
}

// StoreDSN returns the store connection string, falling back to DATABASE_URL
// for PostgreSQL.
func (c *Config) StoreDSN() string {
	if c.Store.DSN == "" && c.Store.Backend == store.BackendPostgres {
		return c.DatabaseURL
	}
	return c.Store.DSN
}

// LLMClientConfig builds the llm configuration for the selected provider.
func (c *Config) LLMClientConfig() (*llm.Config, error) {
	provider, err := llm.ParseProvider(c.LLM.Provider)
	if err != nil {
		return nil, err
	}
	cfg := llm.ConfigFor(provider)
	if c.LLM.BaseURL != "" {
		cfg.BaseURL = c.LLM.BaseURL
	}
	for tier, model := range c.LLM.Models {
		cfg = cfg.WithModel(llm.ModelTier(tier), model)
	}
	return cfg, nil
}

// LLMAPIKey returns the credential of the selected provider.
func (c *Config) LLMAPIKey() string {
	if c.LLM.Provider == string(llm.ProviderGemini) {
		return c.GeminiAPIKey
	}
	return c.GroqAPIKey
}
