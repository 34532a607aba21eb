// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"fmt"
	"os"
	"runtime"
	"runtime/debug"
)

// Set with -ldflags "-X github.com/bureau-foundation/persons/lib/version.GitCommit=...".
var (
	GitCommit = "unknown"
	GitDirty  = "false"
	BuildTime = "unknown"
	Version   = "0.1.0-dev"
)

// commit returns the injected commit, falling back to the VCS stamp the
// go command embeds in module builds.
func commit() (revision string, dirty bool) {
	if GitCommit != "unknown" {
		return GitCommit, GitDirty == "true"
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return GitCommit, false
	}
	revision = GitCommit
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
			if len(revision) > 7 {
				revision = revision[:7]
			}
		case "vcs.modified":
			dirty = setting.Value == "true"
		}
	}
	return revision, dirty
}

// Info is the --version text: "0.1.0-dev (abc1234-dirty, 2026-...)".
func Info() string {
	revision, dirty := commit()
	if dirty {
		revision += "-dirty"
	}
	return fmt.Sprintf("%s (%s, %s)", Version, revision, BuildTime)
}

// Full is Info followed by the Go toolchain and platform.
func Full() string {
	return fmt.Sprintf("%s\n  Go: %s\n  Platform: %s/%s",
		Info(), runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

func Short() string {
	return Version
}

// UserAgent is the User-Agent header the API client sends unless
// configured otherwise.
func UserAgent() string {
	return "persons/" + Version
}

// Print writes "name info" to stdout.
func Print(name string) {
	fmt.Fprintf(os.Stdout, "%s %s\n", name, Info())
}
