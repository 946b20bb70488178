package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir()) // no .env file

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, "http://localhost:8080", cfg.API.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.API.Timeout)
	assert.Equal(t, []string{"www", "api", "admin", "app"}, cfg.Tenant.ReservedSubdomains)
	assert.Empty(t, cfg.Tenant.Override)
	assert.False(t, cfg.Demo.Enabled)
	assert.Equal(t, ".console-tokens.json", cfg.Token.Path)
	assert.Equal(t, 8080, cfg.DemoServer.Port)
	assert.Equal(t, 15*time.Minute, cfg.DemoServer.AccessTTL)
	assert.Equal(t, 7*24*time.Hour, cfg.DemoServer.RefreshTTL)
	assert.Equal(t, 30*time.Minute, cfg.DemoServer.SignedURLTTL)
}

func TestLoadFromEnvironment(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("ENV", EnvProduction)
	t.Setenv("API_BASE_URL", "https://api.platform.com/")
	t.Setenv("API_TIMEOUT", "30s")
	t.Setenv("TENANT_OVERRIDE", "greenwood")
	t.Setenv("TENANT_RESERVED_SUBDOMAINS", "www, portal ,static")
	t.Setenv("DEMO_MODE", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, EnvProduction, cfg.Env)
	assert.Equal(t, "https://api.platform.com", cfg.API.BaseURL, "trailing slash stripped")
	assert.Equal(t, 30*time.Second, cfg.API.Timeout)
	assert.Equal(t, "greenwood", cfg.Tenant.Override)
	assert.Equal(t, []string{"www", "portal", "static"}, cfg.Tenant.ReservedSubdomains)
	assert.True(t, cfg.Demo.Enabled)
}

func TestParseDurationFallback(t *testing.T) {
	assert.Equal(t, time.Minute, parseDuration("", time.Minute))
	assert.Equal(t, time.Minute, parseDuration("garbage", time.Minute))
	assert.Equal(t, 5*time.Second, parseDuration("5s", time.Minute))
}

func TestSplitAndTrim(t *testing.T) {
	assert.Nil(t, splitAndTrim(""))
	assert.Equal(t, []string{"a", "b"}, splitAndTrim(" a , b ,, "))
}
