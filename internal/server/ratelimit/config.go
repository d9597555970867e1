package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EndpointConfig limits one route. Path matches exactly, or as a prefix when it
// ends in "/".
type EndpointConfig struct {
	Path   string
	Method string
	Limit  int
	Window time.Duration
	Burst  int // 0 means Limit
}

// Default budgets. Generation and LLM-backed routes cost an upstream call per
// request; the rest only touch the store.
const (
	DefaultLimit        = 1000
	DefaultWindow       = time.Minute
	DefaultUpstreamRate = 30
	upstreamWindow      = time.Hour
)

// upstreamRoutes call GitHub, LinkedIn or the LLM on every request.
var upstreamRoutes = []string{"/extract-content", "/website-analysis"}

// LoadConfig reads the RATE_LIMIT_* environment variables:
//
//	RATE_LIMIT_ENABLED           on unless "false"
//	RATE_LIMIT_DEFAULT_LIMIT     requests per window for routes without a budget
//	RATE_LIMIT_DEFAULT_WINDOW    e.g. "1m"
//	RATE_LIMIT_UPSTREAM_PER_HOUR hourly budget of the LLM-backed routes
//	RATE_LIMIT_CLEANUP_INTERVAL  how often idle buckets are swept
//	RATE_LIMIT_WHITELIST         comma-separated client IPs never limited
//	RATE_LIMIT_BLACKLIST         comma-separated client IPs always refused
func LoadConfig() *Config {
	env := envReader(os.Getenv)
	if !env.bool("RATE_LIMIT_ENABLED", true) {
		return &Config{Enabled: false}
	}

	upstream := env.int("RATE_LIMIT_UPSTREAM_PER_HOUR", DefaultUpstreamRate)
	return &Config{
		Enabled:         true,
		DefaultLimit:    env.int("RATE_LIMIT_DEFAULT_LIMIT", DefaultLimit),
		DefaultWindow:   env.duration("RATE_LIMIT_DEFAULT_WINDOW", DefaultWindow),
		CleanupInterval: env.duration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),
		Whitelist:       clientSet(os.Getenv("RATE_LIMIT_WHITELIST")),
		Blacklist:       clientSet(os.Getenv("RATE_LIMIT_BLACKLIST")),
		EndpointConfigs: endpointConfigs(upstream),
	}
}

// DefaultEndpointConfigs returns the per-route budgets used by LoadConfig.
func DefaultEndpointConfigs() []EndpointConfig {
	return endpointConfigs(DefaultUpstreamRate)
}

func endpointConfigs(upstreamPerHour int) []EndpointConfig {
	burst := max(1, upstreamPerHour/6)
	configs := []EndpointConfig{
		// A pipeline run fans out to two providers.
		{Path: "/portfolio-generator", Method: "POST", Limit: max(1, upstreamPerHour*2/3), Window: upstreamWindow, Burst: max(1, burst*3/5)},
		{Path: "/portfolio-generator/stream", Method: "POST", Limit: max(1, upstreamPerHour*2/3), Window: upstreamWindow, Burst: max(1, burst*3/5)},
	}
	for _, path := range upstreamRoutes {
		configs = append(configs, EndpointConfig{Path: path, Method: "POST", Limit: upstreamPerHour, Window: upstreamWindow, Burst: burst})
	}
	return append(configs,
		EndpointConfig{Path: "/portfolio-generator/edits", Method: "POST", Limit: 120, Window: time.Minute, Burst: 20},
		EndpointConfig{Path: "/parse-cv", Method: "POST", Limit: 60, Window: time.Minute, Burst: 10},
		EndpointConfig{Path: "/generate-portfolio", Method: "POST", Limit: 60, Window: time.Minute, Burst: 10},
		EndpointConfig{Path: "/payment", Method: "POST", Limit: 30, Window: time.Minute, Burst: 5},
	)
}

// envReader parses typed values, keeping the default on a missing or malformed value.
type envReader func(string) string

func (e envReader) int(key string, def int) int {
	if n, err := strconv.Atoi(e(key)); err == nil && n > 0 {
		return n
	}
	return def
}

func (e envReader) bool(key string, def bool) bool {
	if b, err := strconv.ParseBool(e(key)); err == nil {
		return b
	}
	return def
}

func (e envReader) duration(key string, def time.Duration) time.Duration {
	if d, err := time.ParseDuration(e(key)); err == nil && d > 0 {
		return d
	}
	return def
}

func clientSet(list string) map[string]bool {
	set := make(map[string]bool)
	for _, id := range strings.Split(list, ",") {
		if id = strings.TrimSpace(id); id != "" {
			set[id] = true
		}
	}
	return set
}
