// Package config provides catalog configuration loaded from environment
// variables with command-line flag overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration.
type Config struct {
	App     AppConfig
	Logger  LoggerConfig
	Search  SearchConfig
	Metrics MetricsConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string `env:"CATALOG_ENV" envDefault:"development"`
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level  string `env:"CATALOG_LOG_LEVEL" envDefault:"info"`
	Format string `env:"CATALOG_LOG_FORMAT"` // Empty means auto-detect from environment
}

// SearchConfig holds product search configuration.
type SearchConfig struct {
	Enabled   bool `env:"CATALOG_SEARCH_ENABLED" envDefault:"true"`
	Fuzziness int  `env:"CATALOG_SEARCH_FUZZINESS" envDefault:"1"` // Edit distance for typo tolerance (0-2)
	Limit     int  `env:"CATALOG_SEARCH_LIMIT" envDefault:"20"`
}

// MetricsConfig holds metrics export configuration.
type MetricsConfig struct {
	// TextfilePath is where counters are written on exit (optional).
	TextfilePath string `env:"CATALOG_METRICS_TEXTFILE"`
}

// Overrides carries command-line flag values. Empty fields are not applied.
type Overrides struct {
	Environment     string
	LogLevel        string
	LogFormat       string
	MetricsTextfile string
}

// Load builds configuration with precedence:
// 1. Command-line flags (highest priority).
// 2. Environment variables.
// 3. Default values (lowest priority).
func Load(o Overrides) (*Config, error) {
	return load(nil, o)
}

// load parses from environ when non-nil, otherwise from the process environment.
func load(environ map[string]string, o Overrides) (*Config, error) {
	cfg := &Config{}

	opts := env.Options{}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	cfg.apply(o)

	if err := cfg.expandMetricsPath(); err != nil {
		return nil, fmt.Errorf("invalid metrics textfile path: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) apply(o Overrides) {
	if o.Environment != "" {
		c.App.Environment = o.Environment
	}
	if o.LogLevel != "" {
		c.Logger.Level = o.LogLevel
	}
	if o.LogFormat != "" {
		c.Logger.Format = o.LogFormat
	}
	if o.MetricsTextfile != "" {
		c.Metrics.TextfilePath = o.MetricsTextfile
	}
}

// Validate checks that all config values are present and valid.
func (c *Config) Validate() error {
	if c.App.Environment == "" {
		return errors.New("CATALOG_ENV is required")
	}

	validEnvs := map[string]bool{
		"development": true,
		"staging":     true,
		"production":  true,
	}
	if !validEnvs[c.App.Environment] {
		return fmt.Errorf("invalid environment: %s (must be development, staging, or production)", c.App.Environment)
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[strings.ToLower(c.Logger.Level)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	switch c.Logger.Format {
	case "", "json", "pretty":
	default:
		return fmt.Errorf("invalid log format: %s (must be json or pretty)", c.Logger.Format)
	}

	if c.Search.Fuzziness < 0 || c.Search.Fuzziness > 2 {
		return fmt.Errorf("invalid search fuzziness: %d (must be between 0 and 2)", c.Search.Fuzziness)
	}
	if c.Search.Limit <= 0 {
		return fmt.Errorf("invalid search limit: %d (must be positive)", c.Search.Limit)
	}

	return nil
}

// expandPath expands ~ and makes the path absolute.
func expandPath(path string) (string, error) {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(homeDir, path[2:])
	}

	if !filepath.IsAbs(path) {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("failed to get absolute path: %w", err)
		}
		path = absPath
	}

	return filepath.Clean(path), nil
}

// expandMetricsPath leaves an empty path empty; metrics export is optional.
func (c *Config) expandMetricsPath() error {
	if c.Metrics.TextfilePath == "" {
		return nil
	}
	expanded, err := expandPath(c.Metrics.TextfilePath)
	if err != nil {
		return err
	}
	c.Metrics.TextfilePath = expanded
	return nil
}
