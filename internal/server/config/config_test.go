package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	assert.Equal(t, ":8080", cfg.EndpointAddr)
	assert.Equal(t, "secret", cfg.AccessSecretKey)
	assert.Equal(t, "refresh_secret", cfg.RefreshSecretKey)
	assert.Equal(t, 30*time.Minute, cfg.AccessTokenValidityDuration)
	assert.Equal(t, 7*24*time.Hour, cfg.RefreshTokenValidityDuration)
	assert.NotEmpty(t, cfg.DatabaseDSN)
}

func TestParseEnv_Overlay(t *testing.T) {
	t.Setenv("SERVER_ADDR", ":9090")
	t.Setenv("DATABASE_DSN", "postgres://env")
	t.Setenv("JWT_SECRET_KEY", "env-access")
	t.Setenv("JWT_REFRESH_SECRET_KEY", "env-refresh")
	t.Setenv("ACCESS_TOKEN_EXPIRE_MINUTES", "15")
	t.Setenv("REFRESH_TOKEN_EXPIRE_MINUTES", "120")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, ":9090", cfg.EndpointAddr)
	assert.Equal(t, "postgres://env", cfg.DatabaseDSN)
	assert.Equal(t, "env-access", cfg.AccessSecretKey)
	assert.Equal(t, "env-refresh", cfg.RefreshSecretKey)
	assert.Equal(t, 15*time.Minute, cfg.AccessTokenValidityDuration)
	assert.Equal(t, 120*time.Minute, cfg.RefreshTokenValidityDuration)
}

func TestParseEnv_MalformedDurationIgnored(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_EXPIRE_MINUTES", "not-a-number")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, 30*time.Minute, cfg.AccessTokenValidityDuration)
}

func TestParseFlags_Overlay(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	os.Args = []string{"testbin", "-a", ":7070", "-d", "postgres://flag", "-s", "flag-secret", "-t", "5"}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseFlags(cfg)

	require.Equal(t, ":7070", cfg.EndpointAddr)
	require.Equal(t, "postgres://flag", cfg.DatabaseDSN)
	require.Equal(t, "flag-secret", cfg.AccessSecretKey)
	require.Equal(t, 5*time.Minute, cfg.AccessTokenValidityDuration)
	// untouched by flags
	require.Equal(t, "refresh_secret", cfg.RefreshSecretKey)
}
