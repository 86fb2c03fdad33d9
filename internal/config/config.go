// Package config loads the optional manimcheck configuration file.
package config

import (
	"bytes"
	"fmt"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// Config controls which external commands the probes spawn.
// All fields have working defaults; a config file only overrides them.
type Config struct {
	// Renderer is the Manim binary name or path.
	Renderer string `yaml:"renderer"`

	// RendererArgs are the flags passed before the scene file on a render.
	// Defaults to low quality with caching disabled so the end-to-end
	// check stays fast and leaves no cache behind.
	RendererArgs []string `yaml:"renderer_args"`

	// Python is the interpreter used for the client-library import check.
	Python string `yaml:"python"`

	// ClientModule is the Python module the import check loads.
	ClientModule string `yaml:"client_module"`

	// Timeout bounds each probe's external invocation.
	// Zero means no timeout: a hung renderer blocks the run.
	Timeout Duration `yaml:"timeout"`
}

// Duration wraps time.Duration so YAML configs can use strings like "90s".
type Duration time.Duration

// UnmarshalYAML parses a Go duration string.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return fmt.Errorf("timeout must be a duration string like \"90s\"")
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid timeout %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// moduleNameRe matches a dotted Python module path. The import check
// interpolates ClientModule into an interpreter command line, so anything
// else is rejected up front.
var moduleNameRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)*$`)

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Renderer:     "manim",
		RendererArgs: []string{"-ql", "--disable_caching"},
		Python:       "python3",
		ClientModule: "mcp",
	}
}

// Load reads a YAML config file and applies it over the defaults.
// Unknown fields are rejected to catch typos early.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks that required fields are present and well-formed.
func (c *Config) Validate() error {
	if c.Renderer == "" {
		return fmt.Errorf("renderer is required")
	}
	if c.Python == "" {
		return fmt.Errorf("python is required")
	}
	if c.ClientModule == "" {
		return fmt.Errorf("client_module is required")
	}
	if !moduleNameRe.MatchString(c.ClientModule) {
		return fmt.Errorf("client_module %q is not a valid Python module path", c.ClientModule)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must be non-negative")
	}
	return nil
}
