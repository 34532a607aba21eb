// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the persons CLI command tree.
package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/bureau-foundation/persons/cmd/persons/cli"
	"github.com/bureau-foundation/persons/lib/version"
)

// stdout receives command output. Tests replace it.
var stdout io.Writer = os.Stdout

// Root builds and returns the complete persons CLI command tree.
func Root() *cli.Command {
	return &cli.Command{
		Name: "persons",
		Description: `persons: client for a person directory REST service.

List, search, add, edit, and delete person records, or browse them in
the interactive terminal viewer.`,
		Subcommands: []*cli.Command{
			listCommand(),
			searchCommand(),
			addCommand(),
			editCommand(),
			deleteCommand(),
			viewerCommand(),
			{
				Name:    "version",
				Summary: "Print version information",
				Run: func(context.Context, []string) error {
					fmt.Fprintf(stdout, "persons %s\n", version.Full())
					return nil
				},
			},
		},
		Examples: []cli.Example{
			{
				Description: "List everyone on a local development server",
				Command:     "persons list --base-url http://localhost:8000",
			},
			{
				Description: "Find persons by name or email",
				Command:     "persons search lee --json",
			},
			{
				Description: "Add a person",
				Command:     "persons add --name 'Ann Lee' --email ann@example.org --gender female",
			},
			{
				Description: "Open the terminal viewer with settings from a config file",
				Command:     "persons viewer --config ~/.config/persons.yaml",
			},
		},
	}
}
