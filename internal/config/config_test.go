package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, ProviderDisabled, cfg.AI.Provider)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
server:
  addr: ":9090"
  read_timeout: 5s
logger:
  level: debug
ai:
  provider: gemini
  model: gemini-1.5-pro
  timeout: 45s
`)

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	// Untouched keys keep their defaults.
	assert.Equal(t, 60*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, ProviderGemini, cfg.AI.Provider)
	assert.Equal(t, "gemini-1.5-pro", cfg.AI.Model)
	assert.Equal(t, 45*time.Second, cfg.AI.Timeout)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}

func TestLoadDirectory(t *testing.T) {
	_, err := Load(t.TempDir())
	assert.ErrorContains(t, err, "directory")
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			mutate: func(*Config) {},
		},
		{
			name:    "unknown provider",
			mutate:  func(c *Config) { c.AI.Provider = "openrouter" },
			wantErr: "unknown provider",
		},
		{
			name: "azure without endpoint",
			mutate: func(c *Config) {
				c.AI.Provider = ProviderAzure
				c.AI.Deployment = "gpt-4o"
			},
			wantErr: "requires an endpoint",
		},
		{
			name: "azure without deployment",
			mutate: func(c *Config) {
				c.AI.Provider = ProviderAzure
				c.AI.Endpoint = "https://example.openai.azure.com"
			},
			wantErr: "requires a deployment",
		},
		{
			name: "azure fully configured",
			mutate: func(c *Config) {
				c.AI.Provider = ProviderAzure
				c.AI.Endpoint = "https://example.openai.azure.com"
				c.AI.Deployment = "gpt-4o"
			},
		},
		{
			name:    "empty addr",
			mutate:  func(c *Config) { c.Server.Addr = "" },
			wantErr: "addr",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			err := Validate(cfg)
			if tc.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tc.wantErr)
			}
		})
	}
}
