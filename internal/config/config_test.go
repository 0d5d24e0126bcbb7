package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAppConfig_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/studio")
	t.Setenv("PORT", "")
	t.Setenv("STORAGE_BASE_URL", "")
	t.Setenv("AUTOSAVE_DELAY_SECONDS", "")
	t.Setenv("EDIT_SESSION_TTL_MINUTES", "")

	cfg, err := NewAppConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "http://localhost:8080/storage", cfg.StorageBaseURL)
	assert.Equal(t, 30*time.Second, cfg.AutoSaveDelay)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
}

func TestNewAppConfig_RequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	_, err := NewAppConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestNewAppConfig_InvalidDelay(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/studio")
	t.Setenv("AUTOSAVE_DELAY_SECONDS", "abc")

	_, err := NewAppConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AUTOSAVE_DELAY_SECONDS")

	t.Setenv("AUTOSAVE_DELAY_SECONDS", "0")
	_, err = NewAppConfig()
	require.Error(t, err)
}

func TestNewAppConfig_CustomValues(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/studio")
	t.Setenv("PORT", "9000")
	t.Setenv("STORAGE_BASE_URL", "https://cdn.example.com")
	t.Setenv("AUTOSAVE_DELAY_SECONDS", "5")
	t.Setenv("EDIT_SESSION_TTL_MINUTES", "10")

	cfg, err := NewAppConfig()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "https://cdn.example.com", cfg.StorageBaseURL)
	assert.Equal(t, 5*time.Second, cfg.AutoSaveDelay)
	assert.Equal(t, 10*time.Minute, cfg.SessionTTL)
}

func TestNewJWTConfig(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("JWT_EXPIRATION_HOURS", "")

	cfg, err := NewJWTConfig()
	require.NoError(t, err)
	assert.Equal(t, 24, cfg.ExpirationHours)

	t.Setenv("JWT_SECRET", "")
	_, err = NewJWTConfig()
	assert.Error(t, err)
}

func TestPasswordConfig_HashAndVerify(t *testing.T) {
	t.Setenv("BCRYPT_COST", "10")
	t.Setenv("PASSWORD_PEPPER", "pepper")

	cfg, err := NewPasswordConfig()
	require.NoError(t, err)

	hash, err := cfg.HashPassword("hunter2")
	require.NoError(t, err)

	assert.True(t, cfg.VerifyPassword("hunter2", hash))
	assert.False(t, cfg.VerifyPassword("wrong", hash))

	// A different pepper invalidates existing hashes.
	other := &PasswordConfig{BcryptCost: 10, Pepper: "other"}
	assert.False(t, other.VerifyPassword("hunter2", hash))
}

func TestNewPasswordConfig_CostRange(t *testing.T) {
	t.Setenv("BCRYPT_COST", "9")
	_, err := NewPasswordConfig()
	require.Error(t, err)

	t.Setenv("BCRYPT_COST", "15")
	_, err = NewPasswordConfig()
	require.Error(t, err)
}
