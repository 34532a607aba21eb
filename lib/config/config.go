// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"regexp"
	"slices"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvironmentVariable names the variable Load reads the config path from.
const EnvironmentVariable = "PERSONS_CONFIG"

// Environment represents the deployment environment.
type Environment string

const (
	// Development is for local development machines.
	Development Environment = "development"
	// Staging is for pre-production testing.
	Staging Environment = "staging"
	// Production is for production deployments.
	Production Environment = "production"
)

// Config is the master configuration.
type Config struct {
	// Environment identifies the deployment type (development, staging, production).
	Environment Environment `yaml:"environment"`

	// API configures the connection to the persons REST service.
	API APIConfig `yaml:"api"`

	// Log configures command logging.
	Log LogConfig `yaml:"log"`

	// Viewer configures the terminal viewer.
	Viewer ViewerConfig `yaml:"viewer"`

	// Mock configures persons-mock.
	Mock MockConfig `yaml:"mock"`

	// EnvironmentOverrides contains per-environment overrides.
	// These are applied after the base config is loaded.
	Development *ConfigOverrides `yaml:"development,omitempty"`
	Staging     *ConfigOverrides `yaml:"staging,omitempty"`
	Production  *ConfigOverrides `yaml:"production,omitempty"`
}

// ConfigOverrides contains fields that can be overridden per environment.
type ConfigOverrides struct {
	API    *APIConfig    `yaml:"api,omitempty"`
	Log    *LogConfig    `yaml:"log,omitempty"`
	Viewer *ViewerConfig `yaml:"viewer,omitempty"`
}

// APIConfig configures the REST client.
type APIConfig struct {
	// BaseURL is the scheme and host of the service.
	// Default: http://localhost:8000
	BaseURL string `yaml:"base_url"`

	// PersonsPath is the collection path.
	// Default: /api/persons/
	PersonsPath string `yaml:"persons_path"`

	// Token is a static credential sent with every request. Empty
	// sends no Authorization header.
	Token string `yaml:"token"`

	// AuthScheme prefixes the token in the Authorization header.
	// Default: Token
	AuthScheme string `yaml:"auth_scheme"`

	// UserAgent is sent with every request.
	// Default: persons
	UserAgent string `yaml:"user_agent"`

	// Timeout bounds a single request, as a Go duration.
	// Default: 30s
	Timeout string `yaml:"timeout"`
}

// LogConfig configures command logging.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	// Default: info
	Level string `yaml:"level"`

	// Format is auto (text on a terminal, JSON otherwise), text, or json.
	// Default: auto (development), json (production)
	Format string `yaml:"format"`
}

// ViewerConfig configures the terminal viewer.
type ViewerConfig struct {
	// Ordering resolves overlapping edits of one record:
	// last-completed or latest-issued.
	// Default: last-completed
	Ordering string `yaml:"ordering"`

	// StatusFade is how long transient status messages stay visible.
	// Default: 4s
	StatusFade string `yaml:"status_fade"`
}

// MockConfig configures persons-mock.
type MockConfig struct {
	// Listen is the TCP address to serve on.
	// Default: 127.0.0.1:8000
	Listen string `yaml:"listen"`

	// Seed is a JSONC file of initial records. Empty starts empty.
	Seed string `yaml:"seed"`

	// Token, when set, is required on collection requests.
	Token string `yaml:"token"`

	// Latency is added to every collection request, as a Go duration.
	Latency string `yaml:"latency"`

	// Gzip enables response compression.
	Gzip bool `yaml:"gzip"`
}

// Default returns the default configuration.
// These defaults are used as a base before loading the config file, and
// on their own by commands run without one.
func Default() *Config {
	return &Config{
		Environment: Development,
		API: APIConfig{
			BaseURL:     "http://localhost:8000",
			PersonsPath: "/api/persons/",
			AuthScheme:  "Token",
			UserAgent:   "persons",
			Timeout:     "30s",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "auto",
		},
		Viewer: ViewerConfig{
			Ordering:   "last-completed",
			StatusFade: "4s",
		},
		Mock: MockConfig{
			Listen: "127.0.0.1:8000",
		},
	}
}

// Load loads configuration from the PERSONS_CONFIG environment variable.
//
// This is the only way to load configuration without an explicit path.
// If PERSONS_CONFIG is not set, this fails.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvironmentVariable)
	if configPath == "" {
		return nil, fmt.Errorf("%s environment variable not set; "+
			"set it to the path of your persons.yaml config file, or use --config flag", EnvironmentVariable)
	}

	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}

	// Apply environment-specific overrides (development/staging/production sections in the file).
	cfg.applyEnvironmentOverrides()

	// Expand ${VAR} references so secrets can live in the environment.
	cfg.ExpandVariables()

	return cfg, nil
}

// loadFile loads a single configuration file, merging into the current config.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

// applyEnvironmentOverrides applies the environment-specific overrides.
func (c *Config) applyEnvironmentOverrides() {
	var overrides *ConfigOverrides

	switch c.Environment {
	case Development:
		overrides = c.Development
	case Staging:
		overrides = c.Staging
	case Production:
		overrides = c.Production
		// Production defaults: machine-readable logs.
		if overrides == nil {
			overrides = &ConfigOverrides{
				Log: &LogConfig{Format: "json"},
			}
		}
	}

	if overrides == nil {
		return
	}

	if overrides.API != nil {
		if overrides.API.BaseURL != "" {
			c.API.BaseURL = overrides.API.BaseURL
		}
		if overrides.API.PersonsPath != "" {
			c.API.PersonsPath = overrides.API.PersonsPath
		}
		if overrides.API.Token != "" {
			c.API.Token = overrides.API.Token
		}
		if overrides.API.AuthScheme != "" {
			c.API.AuthScheme = overrides.API.AuthScheme
		}
		if overrides.API.UserAgent != "" {
			c.API.UserAgent = overrides.API.UserAgent
		}
		if overrides.API.Timeout != "" {
			c.API.Timeout = overrides.API.Timeout
		}
	}

	if overrides.Log != nil {
		if overrides.Log.Level != "" {
			c.Log.Level = overrides.Log.Level
		}
		if overrides.Log.Format != "" {
			c.Log.Format = overrides.Log.Format
		}
	}

	if overrides.Viewer != nil {
		if overrides.Viewer.Ordering != "" {
			c.Viewer.Ordering = overrides.Viewer.Ordering
		}
		if overrides.Viewer.StatusFade != "" {
			c.Viewer.StatusFade = overrides.Viewer.StatusFade
		}
	}
}

// ExpandVariables expands ${VAR} and ${VAR:-default} patterns in the
// API base URL and token and in the mock seed path and token.
func (c *Config) ExpandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}

	c.API.BaseURL = expandVars(c.API.BaseURL, vars)
	c.API.Token = expandVars(c.API.Token, vars)
	c.Mock.Seed = expandVars(c.Mock.Seed, vars)
	c.Mock.Token = expandVars(c.Mock.Token, vars)
}

// expandVars expands ${VAR} and ${VAR:-default} patterns.
var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		// Check provided vars first, then environment.
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.Environment != Development && c.Environment != Staging && c.Environment != Production {
		errs = append(errs, fmt.Errorf("invalid environment: %s", c.Environment))
	}

	if c.API.BaseURL == "" {
		errs = append(errs, errors.New("api.base_url is required"))
	} else if parsed, err := url.Parse(c.API.BaseURL); err != nil || parsed.Host == "" {
		errs = append(errs, fmt.Errorf("api.base_url %q is not an absolute URL", c.API.BaseURL))
	} else if c.Environment == Production && parsed.Scheme != "https" {
		errs = append(errs, fmt.Errorf("api.base_url must use https in production, got %q", c.API.BaseURL))
	} else if parsed.Scheme != "http" && parsed.Scheme != "https" {
		errs = append(errs, fmt.Errorf("api.base_url scheme must be http or https, got %q", parsed.Scheme))
	}

	if _, err := positiveDuration(c.API.Timeout); err != nil {
		errs = append(errs, fmt.Errorf("api.timeout: %w", err))
	}

	levels := []string{"debug", "info", "warn", "error"}
	if !slices.Contains(levels, c.Log.Level) {
		errs = append(errs, fmt.Errorf("log.level must be one of: %v", levels))
	}
	formats := []string{"auto", "text", "json"}
	if !slices.Contains(formats, c.Log.Format) {
		errs = append(errs, fmt.Errorf("log.format must be one of: %v", formats))
	}

	orderings := []string{"last-completed", "latest-issued"}
	if !slices.Contains(orderings, c.Viewer.Ordering) {
		errs = append(errs, fmt.Errorf("viewer.ordering must be one of: %v", orderings))
	}
	if _, err := positiveDuration(c.Viewer.StatusFade); err != nil {
		errs = append(errs, fmt.Errorf("viewer.status_fade: %w", err))
	}

	if c.Mock.Latency != "" {
		if latency, err := time.ParseDuration(c.Mock.Latency); err != nil || latency < 0 {
			errs = append(errs, fmt.Errorf("mock.latency: invalid duration %q", c.Mock.Latency))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// RequestTimeout returns api.timeout as a duration. Call after Validate;
// an unparsable value yields zero.
func (c *Config) RequestTimeout() time.Duration {
	timeout, _ := positiveDuration(c.API.Timeout)
	return timeout
}

// StatusFade returns viewer.status_fade as a duration. Call after
// Validate; an unparsable value yields zero.
func (c *Config) StatusFade() time.Duration {
	fade, _ := positiveDuration(c.Viewer.StatusFade)
	return fade
}

// MockLatency returns mock.latency as a duration (zero when unset).
func (c *Config) MockLatency() time.Duration {
	latency, _ := time.ParseDuration(c.Mock.Latency)
	return latency
}

func positiveDuration(s string) (time.Duration, error) {
	duration, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q", s)
	}
	if duration <= 0 {
		return 0, fmt.Errorf("duration must be positive, got %q", s)
	}
	return duration, nil
}
