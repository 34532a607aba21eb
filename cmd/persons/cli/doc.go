// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli is the small command framework behind the persons binary.
//
// A [Command] tree is built by the commands package and run with
// [Command.Execute], which routes positional arguments to subcommands,
// parses each command's [pflag.FlagSet] and prints help. Unknown
// commands and flags get a "did you mean" suggestion when a known name
// is within a few edits.
//
// Commands report failures as [ToolError] values carrying a category,
// so a script can tell a typo in its arguments from an unreachable
// server. [ExitError] sets the exit status of a command that has already
// printed its own diagnostics.
package cli
