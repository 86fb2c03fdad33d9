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
	path := filepath.Join(t.TempDir(), "manimcheck.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "manim", cfg.Renderer)
	assert.Equal(t, []string{"-ql", "--disable_caching"}, cfg.RendererArgs)
	assert.Equal(t, "python3", cfg.Python)
	assert.Equal(t, "mcp", cfg.ClientModule)
	assert.Equal(t, Duration(0), cfg.Timeout)
	assert.NoError(t, cfg.Validate())
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
renderer: /opt/manim/bin/manim
python: python3.12
client_module: mcp.client.stdio
timeout: 90s
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/opt/manim/bin/manim", cfg.Renderer)
	assert.Equal(t, "python3.12", cfg.Python)
	assert.Equal(t, "mcp.client.stdio", cfg.ClientModule)
	assert.Equal(t, 90*time.Second, cfg.Timeout.Std())
	// Untouched fields keep their defaults
	assert.Equal(t, []string{"-ql", "--disable_caching"}, cfg.RendererArgs)
}

func TestLoadRendererArgs(t *testing.T) {
	path := writeConfig(t, `
renderer_args: ["-qh"]
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"-qh"}, cfg.RendererArgs)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadUnknownField(t *testing.T) {
	path := writeConfig(t, `
renderer: manim
rendrer_args: ["-ql"]
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config")
}

func TestLoadInvalidTimeout(t *testing.T) {
	path := writeConfig(t, `
timeout: ninety seconds
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid timeout")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "empty renderer",
			mutate:  func(c *Config) { c.Renderer = "" },
			wantErr: "renderer is required",
		},
		{
			name:    "empty python",
			mutate:  func(c *Config) { c.Python = "" },
			wantErr: "python is required",
		},
		{
			name:    "empty client module",
			mutate:  func(c *Config) { c.ClientModule = "" },
			wantErr: "client_module is required",
		},
		{
			name:    "client module with shell metacharacters",
			mutate:  func(c *Config) { c.ClientModule = "mcp; import os" },
			wantErr: "not a valid Python module path",
		},
		{
			name:    "client module with leading dot",
			mutate:  func(c *Config) { c.ClientModule = ".mcp" },
			wantErr: "not a valid Python module path",
		},
		{
			name:    "negative timeout",
			mutate:  func(c *Config) { c.Timeout = Duration(-time.Second) },
			wantErr: "timeout must be non-negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateDottedModule(t *testing.T) {
	cfg := Default()
	cfg.ClientModule = "mcp.client.stdio"
	assert.NoError(t, cfg.Validate())
}
