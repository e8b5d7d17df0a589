// Package config loads the bridge configuration from an optional YAML
// file and the environment. Precedence: command-line flags (applied by
// the CLI) > environment > file > defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment variables consumed at startup.
const (
	EnvAPIURL   = "LOGSEQ_API_URL"
	EnvAPIToken = "LOGSEQ_API_TOKEN"
)

// ErrMissingToken is returned by Validate when no API token is
// configured. This is startup-fatal: the bridge cannot make a single
// call without it.
var ErrMissingToken = errors.New("no API token configured: set " + EnvAPIToken)

// Config holds everything the server needs to run.
type Config struct {
	APIURL         string `yaml:"api_url"`
	APIToken       string `yaml:"api_token"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	LogLevel       string `yaml:"log_level"`
	LogFormat      string `yaml:"log_format"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		APIURL:         "http://localhost:12315",
		TimeoutSeconds: 30,
		LogLevel:       "info",
		LogFormat:      "text",
	}
}

// Load builds the configuration from defaults, an optional YAML file,
// and the environment. A non-empty path that cannot be read is an
// error; an empty path skips the file layer entirely.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	if url := os.Getenv(EnvAPIURL); url != "" {
		cfg.APIURL = url
	}
	if token := os.Getenv(EnvAPIToken); token != "" {
		cfg.APIToken = token
	}

	return &cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.APIToken == "" {
		return ErrMissingToken
	}
	if c.TimeoutSeconds <= 0 {
		return fmt.Errorf("timeout_seconds must be positive, got %d", c.TimeoutSeconds)
	}
	return nil
}

// Timeout returns the per-call timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}
