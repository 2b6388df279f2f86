// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Default values applied by Defaults
const (
	DefaultPort         = 8080
	DefaultMaxBodyBytes = 10 << 20 // 10 MiB
	DefaultCacheTTL     = "24h"
)

// Config represents configuration loaded from a JSON or YAML file.
// All fields are optional; missing values use defaults or CLI flags.
type Config struct {
	// Cache
	DatabaseURL string `json:"database_url,omitempty" yaml:"database_url,omitempty"` // PostgreSQL result cache
	CachePath   string `json:"cache_path,omitempty" yaml:"cache_path,omitempty"`     // SQLite result cache file
	CacheTTL    string `json:"cache_ttl,omitempty" yaml:"cache_ttl,omitempty"`       // Go duration, e.g. "24h"; "0" never expires

	// Server
	Port         int   `json:"port,omitempty" yaml:"port,omitempty"`
	MaxBodyBytes int64 `json:"max_body_bytes,omitempty" yaml:"max_body_bytes,omitempty"`

	// Behavior
	MainContentOnly bool `json:"main_content_only,omitempty" yaml:"main_content_only,omitempty"` // Score only the main article of HTML pages
	Verbose         bool `json:"verbose,omitempty" yaml:"verbose,omitempty"`                     // Print detailed debug information
}

// Defaults returns the built-in configuration
func Defaults() Config {
	return Config{
		CacheTTL:     DefaultCacheTTL,
		Port:         DefaultPort,
		MaxBodyBytes: DefaultMaxBodyBytes,
	}
}

// LoadConfig loads configuration from a JSON or YAML file, chosen by extension
// (.yaml/.yml for YAML, anything else as JSON).
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values
func (c *Config) Validate() error {
	if c.DatabaseURL != "" && c.CachePath != "" {
		return fmt.Errorf("config error: 'database_url' and 'cache_path' are mutually exclusive")
	}

	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.MaxBodyBytes < 0 {
		return fmt.Errorf("config error: 'max_body_bytes' must be non-negative")
	}

	if _, err := c.TTL(); err != nil {
		return err
	}

	return nil
}

// TTL parses CacheTTL. An empty value means no expiry.
func (c *Config) TTL() (time.Duration, error) {
	if c.CacheTTL == "" {
		return 0, nil
	}
	ttl, err := time.ParseDuration(c.CacheTTL)
	if err != nil {
		return 0, fmt.Errorf("config error: invalid 'cache_ttl' %q: %w", c.CacheTTL, err)
	}
	if ttl < 0 {
		return 0, fmt.Errorf("config error: 'cache_ttl' must be non-negative")
	}
	return ttl, nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.DatabaseURL == "" && result.CachePath == "" {
		result.DatabaseURL = defaults.DatabaseURL
		result.CachePath = defaults.CachePath
	}
	if result.CacheTTL == "" {
		result.CacheTTL = defaults.CacheTTL
	}

	// Numeric fields: use default if zero
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.MaxBodyBytes == 0 {
		result.MaxBodyBytes = defaults.MaxBodyBytes
	}

	// Bool fields: true wins
	if !result.MainContentOnly && defaults.MainContentOnly {
		result.MainContentOnly = true
	}
	if !result.Verbose && defaults.Verbose {
		result.Verbose = true
	}

	return result
}
