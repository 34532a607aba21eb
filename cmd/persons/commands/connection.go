// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"log/slog"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/persons/cmd/persons/cli"
	"github.com/bureau-foundation/persons/lib/config"
	"github.com/bureau-foundation/persons/lib/personapi"
	"github.com/bureau-foundation/persons/lib/version"
)

// connectionFlags are the flags every command that talks to the service
// shares. Explicit flags override the config file.
type connectionFlags struct {
	configPath string
	baseURL    string
	token      string
	timeout    time.Duration
	logLevel   string
}

func (flags *connectionFlags) addFlags(flagSet *pflag.FlagSet) {
	flagSet.StringVar(&flags.configPath, "config", "", "config file (default: $"+config.EnvironmentVariable+" when set)")
	flagSet.StringVar(&flags.baseURL, "base-url", "", "service URL, e.g. http://localhost:8000")
	flagSet.StringVar(&flags.token, "token", "", "API token sent in the Authorization header")
	flagSet.DurationVar(&flags.timeout, "timeout", 0, "per-request timeout (default from config, 30s)")
	flagSet.StringVar(&flags.logLevel, "log-level", "", "debug, info, warn, or error")
}

// loadConfig reads the config file named by --config or PERSONS_CONFIG,
// falling back to defaults when neither is set, then applies flags.
func (flags *connectionFlags) loadConfig() (*config.Config, error) {
	var cfg *config.Config
	var err error
	switch {
	case flags.configPath != "":
		cfg, err = config.LoadFile(flags.configPath)
	case os.Getenv(config.EnvironmentVariable) != "":
		cfg, err = config.Load()
	default:
		cfg = config.Default()
	}
	if err != nil {
		return nil, cli.Validation("loading config: %w", err)
	}

	if flags.baseURL != "" {
		cfg.API.BaseURL = flags.baseURL
	}
	if flags.token != "" {
		cfg.API.Token = flags.token
	}
	if flags.timeout > 0 {
		cfg.API.Timeout = flags.timeout.String()
	}
	if flags.logLevel != "" {
		cfg.Log.Level = flags.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, cli.Validation("invalid configuration: %w", err)
	}
	return cfg, nil
}

// commandLogger returns the stderr logger configured by cfg.
func commandLogger(cfg *config.Config, command string) (*slog.Logger, error) {
	level, err := cli.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	return cli.NewCommandLogger(level, cfg.Log.Format).With("command", command), nil
}

// newAPIClient builds the typed client for cfg's service.
func newAPIClient(cfg *config.Config, logger *slog.Logger) (*personapi.Client, error) {
	userAgent := cfg.API.UserAgent
	if userAgent == "" || userAgent == config.Default().API.UserAgent {
		userAgent = version.UserAgent()
	}
	transport, err := personapi.NewHTTPClient(personapi.HTTPConfig{
		BaseURL:    cfg.API.BaseURL,
		Token:      cfg.API.Token,
		AuthScheme: cfg.API.AuthScheme,
		UserAgent:  userAgent,
		Timeout:    cfg.RequestTimeout(),
		Logger:     logger,
	})
	if err != nil {
		return nil, cli.Validation("%w", err)
	}
	return personapi.NewClient(transport, cfg.API.PersonsPath), nil
}
