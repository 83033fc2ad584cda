// Package config loads client configuration from environment variables,
// with an optional .env file for development.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Config is the full client configuration.
type Config struct {
	// AppName is used for the startup banner.
	AppName string `env:"INSIGHTS_APP_NAME" envDefault:"Insights"`

	// LogLevel is a zerolog level name. Anything unparseable falls back to
	// warn in Sanitize.
	LogLevel string `env:"INSIGHTS_LOG_LEVEL" envDefault:"warn"`

	API   APIConfig
	State StateConfig
}

// APIConfig describes how to reach the backend.
type APIConfig struct {
	// BaseURL is the backend origin, without a trailing slash.
	BaseURL string `env:"INSIGHTS_API_BASE_URL" envDefault:"http://127.0.0.1:8000"`

	// Timeout applies to every request.
	Timeout time.Duration `env:"INSIGHTS_HTTP_TIMEOUT" envDefault:"15s"`
}

// StateConfig describes where durable client state (the token file) lives.
type StateConfig struct {
	// Dir overrides the state directory. Empty means the per-user config
	// directory.
	Dir string `env:"INSIGHTS_STATE_DIR"`
}

// Load reads configuration from the environment. A .env file in the working
// directory is honored when present but never required.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.Wrap(err, "[config.Load] parsing environment")
	}
	cfg.Sanitize()
	return cfg, nil
}

// Sanitize applies guardrails to values loaded from the environment.
func (c *Config) Sanitize() {
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		c.LogLevel = "warn"
	}
	c.API.BaseURL = strings.TrimRight(strings.TrimSpace(c.API.BaseURL), "/")
	if c.API.Timeout <= 0 {
		c.API.Timeout = 15 * time.Second
	}
	c.State.Dir = strings.TrimSpace(c.State.Dir)
}

// TokenFile resolves the path of the persisted token document.
func (s StateConfig) TokenFile() (string, error) {
	dir := s.Dir
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return "", errors.Wrap(err, "[StateConfig.TokenFile] resolving user config directory")
		}
		dir = filepath.Join(base, "insights")
	}
	return filepath.Join(dir, "tokens.json"), nil
}
