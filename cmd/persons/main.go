// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// persons is the command-line client for a person directory REST
// service: list, search, add, edit, and delete records, or browse them
// in the interactive terminal viewer ("persons viewer").
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/bureau-foundation/persons/cmd/persons/commands"
	"github.com/bureau-foundation/persons/lib/process"
)

func main() {
	if err := run(); err != nil {
		// Commands that print their own output return an ExitError with
		// the desired exit code. Don't print a redundant "error:" line
		// for those.
		if coder, ok := err.(process.ExitCoder); ok {
			os.Exit(coder.ExitCode())
		}
		process.Fatal(err)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return commands.Root().Execute(ctx, os.Args[1:])
}
