// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/bureau-foundation/persons/cmd/persons/cli"
	"github.com/bureau-foundation/persons/lib/schema/person"
)

// maxConcurrentDeletes bounds the removals in flight at once.
const maxConcurrentDeletes = 8

type deleteParams struct {
	connection connectionFlags
}

func deleteCommand() *cli.Command {
	var params deleteParams
	return &cli.Command{
		Name:    "delete",
		Summary: "Delete persons by ID",
		Description: `Delete one or more persons. Removals run concurrently and
independently: one failure does not stop the others. Each outcome is
printed on its own line, and the command exits 1 if any failed.`,
		Usage: "persons delete <id>... [flags]",
		Examples: []cli.Example{
			{
				Description: "Delete two persons",
				Command:     "persons delete 7 9",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("delete", pflag.ContinueOnError)
			params.connection.addFlags(flagSet)
			return flagSet
		},
		Run: func(ctx context.Context, args []string) error {
			if len(args) == 0 {
				return cli.Validation("delete needs at least one person ID")
			}
			ids := make([]person.ID, len(args))
			for index, arg := range args {
				id, err := person.ParseID(arg)
				if err != nil {
					return cli.Validation("argument %d: %w", index+1, err)
				}
				ids[index] = id
			}

			records, logger, err := openRecords(&params.connection, "delete")
			if err != nil {
				return err
			}
			defer records.Close()

			failures := make([]error, len(ids))
			var group errgroup.Group
			group.SetLimit(maxConcurrentDeletes)
			for index, id := range ids {
				group.Go(func() error {
					failures[index] = records.Remove(ctx, id)
					return nil
				})
			}
			group.Wait()

			if len(ids) == 1 {
				if failures[0] != nil {
					return categorize(fmt.Sprintf("deleting %s", ids[0]), failures[0])
				}
				fmt.Fprintf(stdout, "deleted %s\n", ids[0])
				return nil
			}

			failed := 0
			for index, id := range ids {
				if failures[index] == nil {
					fmt.Fprintf(stdout, "deleted %s\n", id)
					continue
				}
				failed++
				logger.Debug("delete failed", "id", id.String(), "error", failures[index])
				fmt.Fprintf(os.Stderr, "error: %v\n", categorize(fmt.Sprintf("deleting %s", id), failures[index]))
			}
			if failed == 0 {
				return nil
			}
			return &cli.ExitError{Code: 1}
		},
	}
}
