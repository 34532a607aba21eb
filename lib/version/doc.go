// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package version reports the build of the persons binaries.
//
// [GitCommit], [GitDirty], [BuildTime] and [Version] are set at link
// time with -ldflags -X. When the commit is not injected, the VCS
// revision stamped by the go command is used instead. [UserAgent] is the
// default User-Agent of outgoing API requests.
package version
