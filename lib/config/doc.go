// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for the persons
// client, viewer and mock backend.
//
// Configuration is loaded from a single file specified by either the
// PERSONS_CONFIG environment variable (via [Load]) or a --config flag
// (via [LoadFile]). There is no ~/.config discovery and no automatic
// file search. Commands run without either use [Default] plus their
// flags.
//
// The file supports environment-specific sections (development,
// staging, production) that override base values when
// [Config].Environment matches. Production defaults are stricter: logs
// are JSON and the API base URL must use https.
//
// Variable expansion is performed after loading on the API base URL and
// token and on the mock seed path: ${HOME} and ${VAR:-default} patterns
// are expanded, so a token can be kept out of the file as
// token: ${PERSONS_TOKEN}. No other environment variables override
// config values.
package config
