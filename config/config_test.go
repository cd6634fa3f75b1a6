package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, env := range envKeys {
		t.Setenv(env, "")
		os.Unsetenv(env)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_API_KEY", "secret")

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, "secret", cfg.APIKey)
	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, DefaultAPIRoot, cfg.APIRoot)
	assert.Equal(t, DefaultModel, cfg.Model)
	assert.Equal(t, DefaultRequestTimeout, cfg.RequestTimeout)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.Equal(t, "0.0.0.0:3000", cfg.Addr())
}

func TestLoadConfig_MissingAPIKey(t *testing.T) {
	clearEnv(t)

	_, err := LoadConfig("", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GEMINI_API_KEY")
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_API_KEY", "secret")
	t.Setenv("PORT", "8081")
	t.Setenv("REQUEST_TIMEOUT", "5s")
	t.Setenv("ALLOWED_ORIGINS", "http://localhost:5173,https://example.org")

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.Port)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, []string{"http://localhost:5173", "https://example.org"}, cfg.AllowedOrigins)
}

func TestLoadConfig_File(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_API_KEY", "from-env")

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "api_key: from-file\nmodel: gemini-1.5-pro\nport: 9000\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.APIKey, "environment should win over the file")
	assert.Equal(t, "gemini-1.5-pro", cfg.Model)
	assert.Equal(t, 9000, cfg.Port)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_API_KEY", "secret")

	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	require.Error(t, err)
}

func TestLoadConfig_PortFlag(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_API_KEY", "secret")
	t.Setenv("PORT", "8081")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	args := RegisterFlags(fs)
	require.NoError(t, fs.Parse([]string{"--port", "7000", "-d"}))

	cfg, err := LoadConfig(args.ConfigFile, fs)
	require.NoError(t, err)

	assert.True(t, args.Debug)
	assert.Equal(t, 7000, cfg.Port)
}

func TestLoadConfig_InvalidPort(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_API_KEY", "secret")
	t.Setenv("PORT", "70000")

	_, err := LoadConfig("", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid port")
}
