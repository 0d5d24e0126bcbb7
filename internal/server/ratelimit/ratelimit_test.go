package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *Config {
	return &Config{
		Enabled:       true,
		DefaultLimit:  100,
		DefaultWindow: time.Minute,
		Exempt:        make(map[string]bool),
		Endpoints: []EndpointConfig{
			{Path: "/health", Method: "GET", Limit: 0},
			{Path: "/auth/login", Method: "POST", Limit: 30, Window: time.Minute, Burst: 2},
			{Path: "/sessions/", Method: "POST", Limit: 600, Window: time.Minute, Burst: 3},
		},
	}
}

func TestAllow_BurstThenDeny(t *testing.T) {
	l := NewLimiter(testConfig())
	defer l.Stop()

	for i := 0; i < 2; i++ {
		allowed, _ := l.Allow("10.0.0.1", "/auth/login", "POST")
		require.True(t, allowed, "request %d within burst", i)
	}

	allowed, info := l.Allow("10.0.0.1", "/auth/login", "POST")
	assert.False(t, allowed)
	assert.Equal(t, 30, info.Limit)
	assert.Equal(t, 0, info.Remaining)
	assert.Greater(t, info.RetryAfter, time.Duration(0))
}

func TestAllow_ClientsHaveSeparateBuckets(t *testing.T) {
	l := NewLimiter(testConfig())
	defer l.Stop()

	for i := 0; i < 2; i++ {
		l.Allow("10.0.0.1", "/auth/login", "POST")
	}
	allowed, _ := l.Allow("10.0.0.1", "/auth/login", "POST")
	require.False(t, allowed)

	allowed, _ = l.Allow("10.0.0.2", "/auth/login", "POST")
	assert.True(t, allowed)
}

func TestAllow_UnlimitedTier(t *testing.T) {
	l := NewLimiter(testConfig())
	defer l.Stop()

	for i := 0; i < 50; i++ {
		allowed, info := l.Allow("10.0.0.1", "/health", "GET")
		require.True(t, allowed)
		assert.Equal(t, 0, info.Limit)
	}
}

func TestAllow_PrefixTierCoversSubPaths(t *testing.T) {
	l := NewLimiter(testConfig())
	defer l.Stop()

	for i := 0; i < 3; i++ {
		allowed, _ := l.Allow("10.0.0.1", "/sessions/abc/fields", "POST")
		require.True(t, allowed)
	}
	allowed, info := l.Allow("10.0.0.1", "/sessions/abc/fields", "POST")
	assert.False(t, allowed)
	assert.Equal(t, 600, info.Limit)
}

func TestAllow_DisabledPassesEverything(t *testing.T) {
	cfg := testConfig()
	cfg.Enabled = false
	l := NewLimiter(cfg)
	defer l.Stop()

	for i := 0; i < 10; i++ {
		allowed, _ := l.Allow("10.0.0.1", "/auth/login", "POST")
		require.True(t, allowed)
	}
}

func TestAllow_ExemptClient(t *testing.T) {
	cfg := testConfig()
	cfg.Exempt["10.0.0.9"] = true
	l := NewLimiter(cfg)
	defer l.Stop()

	for i := 0; i < 10; i++ {
		allowed, _ := l.Allow("10.0.0.9", "/auth/login", "POST")
		require.True(t, allowed)
	}
}

func TestTokenBucket_Refills(t *testing.T) {
	b := newTokenBucket(1, 100) // 100 tokens/sec refill

	require.True(t, b.take())
	require.False(t, b.take())

	time.Sleep(30 * time.Millisecond)
	assert.True(t, b.take())
}

func TestMatchEndpoint_ExactBeatsPrefix(t *testing.T) {
	endpoints := []EndpointConfig{
		{Path: "/sessions/", Method: "POST", Limit: 600},
		{Path: "/sessions", Method: "POST", Limit: 60},
	}

	ep := matchEndpoint("/sessions", "POST", endpoints)
	require.NotNil(t, ep)
	assert.Equal(t, 60, ep.Limit)

	ep = matchEndpoint("/sessions/abc/commit", "POST", endpoints)
	require.NotNil(t, ep)
	assert.Equal(t, 600, ep.Limit)

	assert.Nil(t, matchEndpoint("/sessions/abc/commit", "GET", endpoints))
}

func TestLoadConfig_ReadsEnvironment(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "false")
	t.Setenv("RATE_LIMIT_DEFAULT_LIMIT", "42")
	t.Setenv("RATE_LIMIT_DEFAULT_WINDOW", "30s")
	t.Setenv("RATE_LIMIT_EXEMPT", "10.0.0.1, 10.0.0.2")

	cfg := LoadConfig()
	assert.False(t, cfg.Enabled)
	assert.Equal(t, 42, cfg.DefaultLimit)
	assert.Equal(t, 30*time.Second, cfg.DefaultWindow)
	assert.True(t, cfg.Exempt["10.0.0.1"])
	assert.True(t, cfg.Exempt["10.0.0.2"])
}
