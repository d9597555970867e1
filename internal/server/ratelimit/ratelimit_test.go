package ratelimit

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// frozen pins the limiter clock so refill never happens mid-test.
func frozen(l *Limiter) *time.Time {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }
	return &now
}

func TestLimiter_Allow(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: true, DefaultLimit: 10, DefaultWindow: time.Minute})
	defer limiter.Stop()
	frozen(limiter)

	for i := 0; i < 10; i++ {
		allowed, info := limiter.Allow("127.0.0.1", "/test", "GET")
		require.True(t, allowed, "request %d", i+1)
		assert.Equal(t, 10, info.Limit)
		assert.Equal(t, 9-i, info.Remaining)
	}

	allowed, info := limiter.Allow("127.0.0.1", "/test", "GET")
	assert.False(t, allowed)
	assert.Equal(t, 0, info.Remaining)
	assert.Positive(t, info.RetryAfter)
	assert.True(t, info.ResetTime.After(limiter.now()))
}

func TestLimiter_Refill(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: true, DefaultLimit: 60, DefaultWindow: time.Minute})
	defer limiter.Stop()
	now := frozen(limiter)

	for i := 0; i < 60; i++ {
		allowed, _ := limiter.Allow("c", "/test", "GET")
		require.True(t, allowed)
	}
	allowed, info := limiter.Allow("c", "/test", "GET")
	require.False(t, allowed)
	assert.InDelta(t, time.Second, info.RetryAfter, float64(10*time.Millisecond))

	*now = now.Add(1100 * time.Millisecond)
	allowed, _ = limiter.Allow("c", "/test", "GET")
	assert.True(t, allowed, "one token refilled after a second")
	allowed, _ = limiter.Allow("c", "/test", "GET")
	assert.False(t, allowed)
}

func TestLimiter_WhitelistBlacklist(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: time.Minute,
		Whitelist:     map[string]bool{"127.0.0.1": true},
		Blacklist:     map[string]bool{"192.168.1.1": true},
	})
	defer limiter.Stop()

	for i := 0; i < 50; i++ {
		allowed, info := limiter.Allow("127.0.0.1", "/test", "GET")
		require.True(t, allowed)
		assert.Zero(t, info.Limit)
	}

	allowed, _ := limiter.Allow("192.168.1.1", "/test", "GET")
	assert.False(t, allowed)
}

func TestLimiter_Disabled(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: false})
	defer limiter.Stop()

	for i := 0; i < 100; i++ {
		allowed, info := limiter.Allow("127.0.0.1", "/portfolio-generator", "POST")
		require.True(t, allowed)
		assert.Zero(t, info.Limit)
	}
}

func TestLimiter_EndpointSpecific(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1000,
		DefaultWindow: time.Minute,
		EndpointConfigs: []EndpointConfig{
			{Path: "/portfolio-generator", Method: "POST", Limit: 5, Window: time.Hour, Burst: 5},
		},
	})
	defer limiter.Stop()
	frozen(limiter)

	for i := 0; i < 5; i++ {
		allowed, info := limiter.Allow("127.0.0.1", "/portfolio-generator", "POST")
		require.True(t, allowed)
		assert.Equal(t, 5, info.Limit)
	}
	allowed, info := limiter.Allow("127.0.0.1", "/portfolio-generator", "POST")
	assert.False(t, allowed)
	assert.Equal(t, 5, info.Limit)

	// GET on the same path uses the default budget.
	allowed, info = limiter.Allow("127.0.0.1", "/portfolio-generator", "GET")
	assert.True(t, allowed)
	assert.Equal(t, 1000, info.Limit)
}

func TestLimiter_Burst(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  10,
		DefaultWindow: time.Minute,
		EndpointConfigs: []EndpointConfig{
			{Path: "/burst", Method: "POST", Limit: 10, Window: time.Minute, Burst: 5},
		},
	})
	defer limiter.Stop()
	frozen(limiter)

	for i := 0; i < 5; i++ {
		allowed, _ := limiter.Allow("127.0.0.1", "/burst", "POST")
		require.True(t, allowed, "burst request %d", i+1)
	}
	allowed, _ := limiter.Allow("127.0.0.1", "/burst", "POST")
	assert.False(t, allowed)
}

func TestLimiter_Concurrent(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: true, DefaultLimit: 100, DefaultWindow: time.Minute})
	defer limiter.Stop()
	frozen(limiter)

	var (
		wg      sync.WaitGroup
		allowed atomic.Int32
	)
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := limiter.Allow("127.0.0.1", "/test", "GET"); ok {
				allowed.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(100), allowed.Load())
}

func TestLimiter_CleanupDropsIdleBuckets(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: true, DefaultLimit: 10, DefaultWindow: time.Minute})
	defer limiter.Stop()
	now := frozen(limiter)

	for i := 0; i < 10; i++ {
		allowed, _ := limiter.Allow(fmt.Sprintf("127.0.0.%d", i+1), "/test", "GET")
		require.True(t, allowed)
	}
	require.Equal(t, 10, limiter.Len())

	*now = now.Add(2 * time.Hour)
	for i := 0; i < 5; i++ {
		limiter.Allow(fmt.Sprintf("127.0.0.%d", i+1), "/test", "GET")
	}
	limiter.cleanupBuckets()

	assert.Equal(t, 5, limiter.Len())
}

func TestLimiter_StopTwice(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: true, DefaultLimit: 1, DefaultWindow: time.Minute, CleanupInterval: 10 * time.Millisecond})
	limiter.Stop()
	limiter.Stop()
}

func TestNewLimiter_NilConfig(t *testing.T) {
	limiter := NewLimiter(nil)
	defer limiter.Stop()

	allowed, info := limiter.Allow("127.0.0.1", "/test", "GET")
	assert.True(t, allowed)
	assert.Equal(t, 1000, info.Limit)
}

func TestMatchEndpoint(t *testing.T) {
	configs := []EndpointConfig{
		{Path: "/portfolio-generator", Method: "POST", Limit: 1},
		{Path: "/portfolio-generator/edits", Method: "POST", Limit: 2},
		{Path: "/payment/", Method: "GET", Limit: 3},
		{Path: "/payment/status/", Method: "GET", Limit: 4},
	}

	tests := []struct {
		path, method string
		want         int // -1 for no match
	}{
		{"/health", "GET", 0},
		{"/portfolio-generator", "POST", 1},
		{"/portfolio-generator/edits", "POST", 2},
		{"/portfolio-generator", "GET", -1},
		{"/payment/abc", "GET", 3},
		{"/payment/status/abc", "GET", 4},
		{"/unknown", "POST", -1},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			got := MatchEndpoint(tt.path, tt.method, configs)
			if tt.want < 0 {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.Limit)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("RATE_LIMIT_DEFAULT_LIMIT", "42")
	t.Setenv("RATE_LIMIT_DEFAULT_WINDOW", "30s")
	t.Setenv("RATE_LIMIT_WHITELIST", "10.0.0.1, 10.0.0.2")

	cfg := LoadConfig()
	assert.True(t, cfg.Enabled)
	assert.Equal(t, 42, cfg.DefaultLimit)
	assert.Equal(t, 30*time.Second, cfg.DefaultWindow)
	assert.Equal(t, map[string]bool{"10.0.0.1": true, "10.0.0.2": true}, cfg.Whitelist)
	assert.NotEmpty(t, cfg.EndpointConfigs)

	t.Setenv("RATE_LIMIT_ENABLED", "false")
	assert.False(t, LoadConfig().Enabled)
}

func TestLoadConfig_UpstreamBudget(t *testing.T) {
	find := func(cfgs []EndpointConfig, path string) EndpointConfig {
		for _, c := range cfgs {
			if c.Path == path {
				return c
			}
		}
		t.Fatalf("no config for %s", path)
		return EndpointConfig{}
	}

	defaults := DefaultEndpointConfigs()
	assert.Equal(t, 30, find(defaults, "/extract-content").Limit)
	assert.Equal(t, 20, find(defaults, "/portfolio-generator").Limit)
	assert.Equal(t, 3, find(defaults, "/portfolio-generator").Burst)
	assert.Equal(t, time.Hour, find(defaults, "/website-analysis").Window)

	t.Setenv("RATE_LIMIT_UPSTREAM_PER_HOUR", "120")
	cfgs := LoadConfig().EndpointConfigs
	assert.Equal(t, 120, find(cfgs, "/website-analysis").Limit)
	assert.Equal(t, 80, find(cfgs, "/portfolio-generator/stream").Limit)
	assert.Equal(t, 60, find(cfgs, "/parse-cv").Limit, "store-only routes keep their budget")

	t.Setenv("RATE_LIMIT_UPSTREAM_PER_HOUR", "-5")
	assert.Equal(t, 30, find(LoadConfig().EndpointConfigs, "/extract-content").Limit)
}
