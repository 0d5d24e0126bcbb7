package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EndpointConfig sets the limit tier for one path and method. Limit is the
// sustained requests per Window; Burst caps how many may land at once.
// A Limit of zero means unlimited.
type EndpointConfig struct {
	Path   string
	Method string
	Limit  int
	Window time.Duration
	Burst  int
}

// Config controls the limiter.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	Exempt          map[string]bool
	Endpoints       []EndpointConfig
}

// LoadConfig reads limiter settings from the environment. Unset variables
// fall back to defaults generous enough for normal editing traffic.
func LoadConfig() *Config {
	cfg := defaultConfig()
	cfg.Enabled = envBool("RATE_LIMIT_ENABLED", cfg.Enabled)
	cfg.DefaultLimit = envInt("RATE_LIMIT_DEFAULT_LIMIT", cfg.DefaultLimit)
	cfg.DefaultWindow = envDuration("RATE_LIMIT_DEFAULT_WINDOW", cfg.DefaultWindow)
	cfg.CleanupInterval = envDuration("RATE_LIMIT_CLEANUP_INTERVAL", cfg.CleanupInterval)
	for _, id := range strings.Split(os.Getenv("RATE_LIMIT_EXEMPT"), ",") {
		if id = strings.TrimSpace(id); id != "" {
			cfg.Exempt[id] = true
		}
	}
	return cfg
}

func defaultConfig() *Config {
	return &Config{
		Enabled:         true,
		DefaultLimit:    1000,
		DefaultWindow:   time.Minute,
		CleanupInterval: 5 * time.Minute,
		Exempt:          make(map[string]bool),
		Endpoints:       defaultEndpoints(),
	}
}

// defaultEndpoints tiers the API surface: auth endpoints are the abuse
// targets and get tight limits, session mutation is chatty editor traffic
// and gets room, health checks and object serving go unmetered.
func defaultEndpoints() []EndpointConfig {
	return []EndpointConfig{
		{Path: "/health", Method: "GET", Limit: 0},
		{Path: "/storage/", Method: "GET", Limit: 0},
		{Path: "/auth/register", Method: "POST", Limit: 10, Window: time.Hour, Burst: 3},
		{Path: "/auth/login", Method: "POST", Limit: 30, Window: time.Minute, Burst: 10},
		{Path: "/sessions", Method: "POST", Limit: 60, Window: time.Minute, Burst: 20},
		{Path: "/sessions/", Method: "POST", Limit: 600, Window: time.Minute, Burst: 100},
		{Path: "/content/", Method: "DELETE", Limit: 30, Window: time.Minute, Burst: 10},
	}
}

func envBool(name string, fallback bool) bool {
	if v := os.Getenv(name); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return fallback
}

func envInt(name string, fallback int) int {
	if v := os.Getenv(name); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return fallback
}

func envDuration(name string, fallback time.Duration) time.Duration {
	if v := os.Getenv(name); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			return parsed
		}
	}
	return fallback
}
