// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"strings"
	"testing"
)

func TestInfo(t *testing.T) {
	originalCommit, originalDirty := GitCommit, GitDirty
	defer func() { GitCommit, GitDirty = originalCommit, originalDirty }()

	GitCommit, GitDirty = "abc1234", "true"
	if got := Info(); !strings.HasPrefix(got, Version+" (abc1234-dirty, ") {
		t.Errorf("Info() = %q", got)
	}
	GitDirty = "false"
	if got := Info(); strings.Contains(got, "dirty") {
		t.Errorf("Info() = %q, want no dirty marker", got)
	}
	if !strings.Contains(Full(), "Go: ") {
		t.Errorf("Full() = %q, want Go version", Full())
	}
}

func TestUserAgent(t *testing.T) {
	if got := UserAgent(); got != "persons/"+Short() {
		t.Errorf("UserAgent() = %q", got)
	}
}
