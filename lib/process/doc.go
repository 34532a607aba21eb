// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package process provides binary entrypoint helpers for the persons
// binaries. It centralizes fatal error reporting to stderr for the
// point in main() where the structured logger may not exist yet.
package process
