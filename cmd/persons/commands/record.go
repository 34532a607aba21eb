// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/persons/cmd/persons/cli"
	"github.com/bureau-foundation/persons/lib/personsync"
	"github.com/bureau-foundation/persons/lib/schema/person"
)

// fieldFlags holds one string flag per editable person field. Flag names
// are the JSON names with hyphens: --phone-number, --date-of-birth.
type fieldFlags struct {
	values  map[person.Field]*string
	flagSet *pflag.FlagSet
}

func (flags *fieldFlags) addFlags(flagSet *pflag.FlagSet) {
	flags.values = make(map[person.Field]*string, len(person.Fields))
	flags.flagSet = flagSet
	for _, field := range person.Fields {
		flags.values[field] = flagSet.String(flagName(field), "", fieldUsage(field))
	}
}

func flagName(field person.Field) string {
	return strings.ReplaceAll(string(field), "_", "-")
}

func fieldUsage(field person.Field) string {
	switch field {
	case person.FieldGender:
		return "male, female, other, or empty (M, F, O also accepted)"
	case person.FieldDateOfBirth:
		return "date of birth as YYYY-MM-DD, empty to clear"
	case person.FieldInterests:
		return "free text; may contain newlines"
	}
	return strings.ToLower(field.Label())
}

// changed returns the fields given on the command line, in form order.
func (flags *fieldFlags) changed() []person.Field {
	var fields []person.Field
	for _, field := range person.Fields {
		if flags.flagSet.Changed(flagName(field)) {
			fields = append(fields, field)
		}
	}
	return fields
}

// apply copies the given fields into the session's buffer, then checks
// the result the way the server will.
func (flags *fieldFlags) apply(session *personsync.EditSession) error {
	for _, field := range flags.changed() {
		if err := session.UpdateField(field, *flags.values[field]); err != nil {
			return cli.Validation("--%s: %w", flagName(field), err)
		}
	}
	if err := session.Buffer().Validate(); err != nil {
		return cli.Validation("invalid person").WithHint(describeFields(person.FieldErrors(err)))
	}
	return nil
}

type addParams struct {
	cli.JSONOutput
	connection connectionFlags
	fields     fieldFlags
}

func addCommand() *cli.Command {
	var params addParams
	return &cli.Command{
		Name:    "add",
		Summary: "Add a person",
		Description: `Add a person. --name is required; other fields default to empty.
The record is checked locally before it is sent.`,
		Usage: "persons add --name <name> [field flags]",
		Examples: []cli.Example{
			{
				Description: "Add a person with a birthday",
				Command:     "persons add --name 'Bo Chen' --date-of-birth 1988-02-29",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("add", pflag.ContinueOnError)
			params.connection.addFlags(flagSet)
			params.fields.addFlags(flagSet)
			params.AddFlag(flagSet)
			return flagSet
		},
		Run: func(ctx context.Context, args []string) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0])
			}

			var session personsync.EditSession
			session.StartAdd()
			if err := params.fields.apply(&session); err != nil {
				return err
			}

			records, logger, err := openRecords(&params.connection, "add")
			if err != nil {
				return err
			}
			defer records.Close()

			created, err := session.Commit(ctx, records)
			if err != nil {
				return categorize("adding person", err)
			}
			logger.Debug("person added", "id", created.ID.String())
			return printRecord(&params.JSONOutput, "added", created)
		},
	}
}

type editParams struct {
	cli.JSONOutput
	connection connectionFlags
	fields     fieldFlags
}

func editCommand() *cli.Command {
	var params editParams
	return &cli.Command{
		Name:    "edit",
		Summary: "Change fields of a person",
		Description: `Change the given fields of one person. Fields not given keep their
current values; pass an empty value (--email '') to clear one.`,
		Usage: "persons edit <id> [field flags]",
		Examples: []cli.Example{
			{
				Description: "Correct an email address",
				Command:     "persons edit 7 --email bo@example.org",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("edit", pflag.ContinueOnError)
			params.connection.addFlags(flagSet)
			params.fields.addFlags(flagSet)
			params.AddFlag(flagSet)
			return flagSet
		},
		Run: func(ctx context.Context, args []string) error {
			if len(args) != 1 {
				return cli.Validation("edit takes exactly one person ID, got %d arguments", len(args))
			}
			id, err := person.ParseID(args[0])
			if err != nil {
				return cli.Validation("%w", err)
			}
			if len(params.fields.changed()) == 0 {
				return cli.Validation("nothing to change").
					WithHint("Pass at least one field flag, e.g. --email. Run 'persons edit --help' for the list.")
			}

			records, err := loadRecords(ctx, &params.connection, "edit")
			if err != nil {
				return err
			}
			defer records.Close()

			current, ok := records.Get(id)
			if !ok {
				return cli.NotFound("person %s not found", id).
					WithHint("Run 'persons list' to see identifiers.")
			}

			var session personsync.EditSession
			if err := session.StartEdit(current); err != nil {
				return categorize("editing person", err)
			}
			if err := params.fields.apply(&session); err != nil {
				return err
			}
			updated, err := session.Commit(ctx, records)
			if err != nil {
				return categorize(fmt.Sprintf("saving person %s", id), err)
			}
			return printRecord(&params.JSONOutput, "saved", updated)
		},
	}
}

// openRecords builds a synchronizer without loading the collection.
func openRecords(connection *connectionFlags, command string) (*personsync.Synchronizer, *slog.Logger, error) {
	cfg, err := connection.loadConfig()
	if err != nil {
		return nil, nil, err
	}
	logger, err := commandLogger(cfg, command)
	if err != nil {
		return nil, nil, err
	}
	client, err := newAPIClient(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return personsync.New(client, logger), logger, nil
}

func printRecord(output *cli.JSONOutput, verb string, record person.Record) error {
	if done, err := output.EmitJSON(stdout, record); done {
		return err
	}
	_, err := fmt.Fprintf(stdout, "%s %s (%s)\n", verb, record.ID, record.Name)
	return err
}
