// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/persons/cmd/persons/cli"
	"github.com/bureau-foundation/persons/lib/personsync"
	"github.com/bureau-foundation/persons/lib/schema/person"
)

type listParams struct {
	cli.JSONOutput
	connection connectionFlags
}

func listCommand() *cli.Command {
	var params listParams
	return &cli.Command{
		Name:    "list",
		Summary: "List all persons",
		Usage:   "persons list [flags]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("list", pflag.ContinueOnError)
			params.connection.addFlags(flagSet)
			params.AddFlag(flagSet)
			return flagSet
		},
		Run: func(ctx context.Context, args []string) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0])
			}
			records, err := loadRecords(ctx, &params.connection, "list")
			if err != nil {
				return err
			}
			defer records.Close()
			return printRecords(&params.JSONOutput, records.Records())
		},
	}
}

type searchParams struct {
	cli.JSONOutput
	connection connectionFlags
}

func searchCommand() *cli.Command {
	var params searchParams
	return &cli.Command{
		Name:    "search",
		Summary: "List persons whose name or email contains a term",
		Description: `List persons whose name or email contains the term, ignoring case.
The term is matched as typed: spaces are part of it.`,
		Usage: "persons search <term> [flags]",
		Examples: []cli.Example{
			{
				Description: "Everyone with an example.org address",
				Command:     "persons search @example.org",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("search", pflag.ContinueOnError)
			params.connection.addFlags(flagSet)
			params.AddFlag(flagSet)
			return flagSet
		},
		Run: func(ctx context.Context, args []string) error {
			if len(args) != 1 {
				return cli.Validation("search takes exactly one term, got %d arguments", len(args)).
					WithHint("Quote terms that contain spaces: persons search 'ann lee'")
			}
			records, err := loadRecords(ctx, &params.connection, "search")
			if err != nil {
				return err
			}
			defer records.Close()
			return printRecords(&params.JSONOutput, personsync.Filter(records.Records(), args[0]))
		},
	}
}

// loadRecords opens a synchronizer against the configured service and
// performs the initial load. A failed load is not retried.
func loadRecords(ctx context.Context, connection *connectionFlags, command string) (*personsync.Synchronizer, error) {
	records, _, err := openRecords(connection, command)
	if err != nil {
		return nil, err
	}
	if err := records.Load(ctx); err != nil {
		records.Close()
		return nil, categorize("loading persons", err)
	}
	return records, nil
}

func printRecords(output *cli.JSONOutput, records []person.Record) error {
	if done, err := output.EmitJSON(stdout, records); done {
		return err
	}
	writeTable(stdout, records)
	return nil
}

// writeTable prints one row per record. Multi-line interests are not
// shown; the JSON output carries every field.
func writeTable(output io.Writer, records []person.Record) {
	if len(records) == 0 {
		fmt.Fprintln(output, "no persons")
		return
	}
	table := tabwriter.NewWriter(output, 2, 0, 2, ' ', 0)
	fmt.Fprintln(table, "ID\tNAME\tEMAIL\tPHONE\tGENDER\tBORN")
	for _, record := range records {
		gender := ""
		if record.Gender != person.GenderUnset {
			gender = record.Gender.Label()
		}
		fmt.Fprintf(table, "%s\t%s\t%s\t%s\t%s\t%s\n",
			record.ID, cell(record.Name), cell(record.Email),
			cell(record.PhoneNumber), gender, record.DateOfBirth)
	}
	table.Flush()
}

func cell(value string) string {
	return strings.ReplaceAll(strings.ReplaceAll(value, "\t", " "), "\n", " ")
}
