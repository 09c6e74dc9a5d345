package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	cfg := &Config{}
	cfg.Raindrop.Token = "test-token"
	applyDefaults(cfg)
	return cfg
}

func TestValidate(t *testing.T) {
	t.Run("valid config passes", func(t *testing.T) {
		require.NoError(t, validConfig().Validate())
	})

	t.Run("missing token", func(t *testing.T) {
		cfg := validConfig()
		cfg.Raindrop.Token = ""
		err := cfg.Validate()
		require.Error(t, err)
		require.Contains(t, err.Error(), "token is required")
	})

	t.Run("invalid port", func(t *testing.T) {
		cfg := validConfig()
		cfg.Server.Port = 70000
		require.Error(t, cfg.Validate())
	})

	t.Run("invalid log level", func(t *testing.T) {
		cfg := validConfig()
		cfg.Log.Level = "verbose"
		err := cfg.Validate()
		require.Error(t, err)
		require.Contains(t, err.Error(), "log level")
	})

	t.Run("rate limit bounds only checked when enabled", func(t *testing.T) {
		cfg := validConfig()
		cfg.RateLimit.Enabled = true
		cfg.RateLimit.PerMinute = -1
		require.Error(t, cfg.Validate())

		cfg.RateLimit.Enabled = false
		require.NoError(t, cfg.Validate())
	})
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)

	require.Equal(t, DefaultRaindropBaseURL, cfg.Raindrop.BaseURL)
	require.Equal(t, 30*time.Second, cfg.Raindrop.Timeout)
	require.Equal(t, 3000, cfg.Server.Port)
	require.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	require.Equal(t, "info", cfg.Log.Level)
	require.Equal(t, "json", cfg.Log.Format)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(`raindrop:
  token: file-token
  timeout: 5s
server:
  port: 8123
log:
  level: debug
  format: console
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "file-token", cfg.Raindrop.Token.Value())
	require.Equal(t, 5*time.Second, cfg.Raindrop.Timeout)
	require.Equal(t, 8123, cfg.Server.Port)
	require.Equal(t, "debug", cfg.Log.Level)
	require.Equal(t, "console", cfg.Log.Format)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("raindrop:\n  token: file-token\n"), 0o600))

	t.Setenv("RAINDROP_TOKEN", "env-token")
	t.Setenv("SERVER_PORT", "9999")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "env-token", cfg.Raindrop.Token.Value())
	require.Equal(t, 9999, cfg.Server.Port)
}

func TestLoadRejectsWorldReadableFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("raindrop:\n  token: x\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "insecure config file permissions")
}

func TestLoadMissingTokenFails(t *testing.T) {
	// No file, no env: the required credential is absent.
	t.Setenv("RAINDROP_TOKEN", "")
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "token is required")
}

func TestSecretRedaction(t *testing.T) {
	s := Secret("super-secret")
	require.Equal(t, "[REDACTED]", s.String())
	require.Equal(t, "super-secret", s.Value())
	require.True(t, s.IsSet())

	b, err := s.MarshalJSON()
	require.NoError(t, err)
	require.NotContains(t, string(b), "super-secret")

	require.False(t, Secret("").IsSet())
	require.Equal(t, "", Secret("").String())
}

func TestEnvTransform(t *testing.T) {
	require.Equal(t, "raindrop.token", envTransform("RAINDROP_TOKEN"))
	require.Equal(t, "server.shutdown_timeout", envTransform("SERVER_SHUTDOWN_TIMEOUT"))
	require.Equal(t, "ratelimit.per_minute", envTransform("RATELIMIT_PER_MINUTE"))
	require.Equal(t, "path", envTransform("PATH"))
}
