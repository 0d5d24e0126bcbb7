// Package config loads service configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// AppConfig holds the top-level service configuration.
type AppConfig struct {
	Port           string
	DatabaseURL    string
	RedisURL       string // optional; sessions are stateless JWT-only without it
	StorageBaseURL string

	AutoSaveDelay time.Duration
	SessionTTL    time.Duration // idle editing sessions past this are expired
}

// NewAppConfig creates the service configuration from environment variables.
// It reads PORT (default: 8080), DATABASE_URL (required), REDIS_URL
// (optional), STORAGE_BASE_URL, AUTOSAVE_DELAY_SECONDS (default: 30) and
// EDIT_SESSION_TTL_MINUTES (default: 30).
func NewAppConfig() (*AppConfig, error) {
	autoSaveSeconds, err := envInt("AUTOSAVE_DELAY_SECONDS", 30)
	if err != nil {
		return nil, err
	}
	sessionMinutes, err := envInt("EDIT_SESSION_TTL_MINUTES", 30)
	if err != nil {
		return nil, err
	}

	config := &AppConfig{
		Port:           os.Getenv("PORT"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		RedisURL:       os.Getenv("REDIS_URL"),
		StorageBaseURL: os.Getenv("STORAGE_BASE_URL"),
		AutoSaveDelay:  time.Duration(autoSaveSeconds) * time.Second,
		SessionTTL:     time.Duration(sessionMinutes) * time.Minute,
	}

	if err := config.normalize(); err != nil {
		return nil, err
	}

	return config, nil
}

// normalize applies defaults and validates the configuration.
func (c *AppConfig) normalize() error {
	if c.Port == "" {
		c.Port = "8080"
	}
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required but not set")
	}
	if c.StorageBaseURL == "" {
		c.StorageBaseURL = "http://localhost:" + c.Port + "/storage"
	}
	if c.AutoSaveDelay < time.Second {
		return fmt.Errorf("AUTOSAVE_DELAY_SECONDS must be at least 1, got: %s", c.AutoSaveDelay)
	}
	if c.SessionTTL < time.Minute {
		return fmt.Errorf("EDIT_SESSION_TTL_MINUTES must be at least 1, got: %s", c.SessionTTL)
	}
	return nil
}

func envInt(name string, fallback int) (int, error) {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %v", name, err)
	}
	return n, nil
}
