// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), "persons.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return configPath
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Environment != Development {
		t.Errorf("expected environment=development, got %s", cfg.Environment)
	}
	if cfg.API.BaseURL != "http://localhost:8000" {
		t.Errorf("expected base_url=http://localhost:8000, got %s", cfg.API.BaseURL)
	}
	if cfg.API.PersonsPath != "/api/persons/" {
		t.Errorf("expected persons_path=/api/persons/, got %s", cfg.API.PersonsPath)
	}
	if cfg.RequestTimeout() != 30*time.Second {
		t.Errorf("expected timeout=30s, got %v", cfg.RequestTimeout())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoad_RequiresPersonsConfig(t *testing.T) {
	t.Setenv(EnvironmentVariable, "")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error when PERSONS_CONFIG not set, got nil")
	}
	if !strings.HasPrefix(err.Error(), "PERSONS_CONFIG environment variable not set") {
		t.Errorf("unexpected error message %q", err.Error())
	}
}

func TestLoad_WithPersonsConfig(t *testing.T) {
	configPath := writeConfig(t, `
environment: staging
api:
  base_url: https://staging.example.org
`)
	t.Setenv(EnvironmentVariable, configPath)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Environment != Staging {
		t.Errorf("expected environment=staging, got %s", cfg.Environment)
	}
	if cfg.API.BaseURL != "https://staging.example.org" {
		t.Errorf("expected staging base_url, got %s", cfg.API.BaseURL)
	}
	// Unset fields keep their defaults.
	if cfg.API.PersonsPath != "/api/persons/" {
		t.Errorf("expected default persons_path, got %s", cfg.API.PersonsPath)
	}
}

func TestLoadFile(t *testing.T) {
	configPath := writeConfig(t, `
environment: development

api:
  base_url: http://10.0.0.5:9000
  persons_path: /v2/people/
  auth_scheme: Bearer
  timeout: 5s

log:
  level: debug
  format: text

viewer:
  ordering: latest-issued
  status_fade: 2s

mock:
  listen: 0.0.0.0:9000
  latency: 250ms
  gzip: true
`)

	cfg, err := LoadFile(configPath)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	if cfg.API.PersonsPath != "/v2/people/" || cfg.API.AuthScheme != "Bearer" {
		t.Errorf("api = %+v", cfg.API)
	}
	if cfg.RequestTimeout() != 5*time.Second {
		t.Errorf("expected timeout=5s, got %v", cfg.RequestTimeout())
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "text" {
		t.Errorf("log = %+v", cfg.Log)
	}
	if cfg.Viewer.Ordering != "latest-issued" || cfg.StatusFade() != 2*time.Second {
		t.Errorf("viewer = %+v", cfg.Viewer)
	}
	if cfg.Mock.Listen != "0.0.0.0:9000" || !cfg.Mock.Gzip || cfg.MockLatency() != 250*time.Millisecond {
		t.Errorf("mock = %+v", cfg.Mock)
	}
}

func TestLoadFile_Malformed(t *testing.T) {
	configPath := writeConfig(t, "api: [not, a, mapping")
	if _, err := LoadFile(configPath); err == nil {
		t.Fatal("expected parse error")
	}
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestEnvironmentOverrides(t *testing.T) {
	configPath := writeConfig(t, `
environment: production

api:
  base_url: http://localhost:8000
  timeout: 30s

production:
  api:
    base_url: https://persons.example.org
    timeout: 10s
  log:
    level: warn
`)

	cfg, err := LoadFile(configPath)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if cfg.API.BaseURL != "https://persons.example.org" {
		t.Errorf("expected production base_url, got %s", cfg.API.BaseURL)
	}
	if cfg.RequestTimeout() != 10*time.Second {
		t.Errorf("expected timeout=10s, got %v", cfg.RequestTimeout())
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("expected level=warn, got %s", cfg.Log.Level)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestProductionDefaults(t *testing.T) {
	configPath := writeConfig(t, `
environment: production
api:
  base_url: http://insecure.example.org
`)

	cfg, err := LoadFile(configPath)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if cfg.Log.Format != "json" {
		t.Errorf("expected production log format json, got %s", cfg.Log.Format)
	}
	err = cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "https") {
		t.Errorf("expected https requirement in production, got %v", err)
	}
}

func TestTokenExpansion(t *testing.T) {
	t.Setenv("PERSONS_TEST_TOKEN", "s3cret")
	configPath := writeConfig(t, `
api:
  token: ${PERSONS_TEST_TOKEN}
  base_url: ${PERSONS_TEST_URL:-http://localhost:8001}
mock:
  seed: ${HOME}/seed.jsonc
`)

	cfg, err := LoadFile(configPath)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if cfg.API.Token != "s3cret" {
		t.Errorf("expected token from environment, got %q", cfg.API.Token)
	}
	if cfg.API.BaseURL != "http://localhost:8001" {
		t.Errorf("expected default base_url, got %q", cfg.API.BaseURL)
	}
	if cfg.Mock.Seed != os.Getenv("HOME")+"/seed.jsonc" {
		t.Errorf("expected expanded seed path, got %q", cfg.Mock.Seed)
	}
}

func TestEnvVarsDoNotOverride(t *testing.T) {
	// Only ${VAR} references expand; plain environment variables never
	// override file values.
	t.Setenv("PERSONS_BASE_URL", "http://env.example.org")
	t.Setenv("PERSONS_ENVIRONMENT", "staging")

	configPath := writeConfig(t, `
environment: development
api:
  base_url: http://file.example.org
`)

	cfg, err := LoadFile(configPath)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if cfg.Environment != Development {
		t.Errorf("expected environment=development from file, got %s", cfg.Environment)
	}
	if cfg.API.BaseURL != "http://file.example.org" {
		t.Errorf("expected base_url from file, got %s", cfg.API.BaseURL)
	}
}

func TestExpandVars(t *testing.T) {
	tests := []struct {
		input    string
		vars     map[string]string
		expected string
	}{
		{
			input:    "${HOME}/seed.jsonc",
			vars:     map[string]string{"HOME": "/home/user"},
			expected: "/home/user/seed.jsonc",
		},
		{
			input:    "${PERSONS_UNSET_FOR_TEST:-default}",
			vars:     map[string]string{},
			expected: "default",
		},
		{
			input:    "${PRESENT:-default}",
			vars:     map[string]string{"PRESENT": "value"},
			expected: "value",
		},
		{
			input:    "${A}/${B}",
			vars:     map[string]string{"A": "first", "B": "second"},
			expected: "first/second",
		},
		{
			input:    "no variables here",
			vars:     map[string]string{},
			expected: "no variables here",
		},
	}

	for _, tt := range tests {
		result := expandVars(tt.input, tt.vars)
		if result != tt.expected {
			t.Errorf("expandVars(%q) = %q, want %q", tt.input, result, tt.expected)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid default config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "invalid environment",
			modify:  func(c *Config) { c.Environment = "invalid" },
			wantErr: true,
		},
		{
			name:    "empty base url",
			modify:  func(c *Config) { c.API.BaseURL = "" },
			wantErr: true,
		},
		{
			name:    "relative base url",
			modify:  func(c *Config) { c.API.BaseURL = "localhost" },
			wantErr: true,
		},
		{
			name:    "unsupported scheme",
			modify:  func(c *Config) { c.API.BaseURL = "ftp://host" },
			wantErr: true,
		},
		{
			name:    "bad timeout",
			modify:  func(c *Config) { c.API.Timeout = "soon" },
			wantErr: true,
		},
		{
			name:    "zero timeout",
			modify:  func(c *Config) { c.API.Timeout = "0s" },
			wantErr: true,
		},
		{
			name:    "unknown log level",
			modify:  func(c *Config) { c.Log.Level = "verbose" },
			wantErr: true,
		},
		{
			name:    "unknown ordering",
			modify:  func(c *Config) { c.Viewer.Ordering = "first-wins" },
			wantErr: true,
		},
		{
			name:    "negative mock latency",
			modify:  func(c *Config) { c.Mock.Latency = "-1s" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
