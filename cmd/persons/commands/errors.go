// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"errors"
	"fmt"
	"maps"
	"net/http"
	"slices"
	"strings"

	"github.com/bureau-foundation/persons/cmd/persons/cli"
	"github.com/bureau-foundation/persons/lib/personapi"
	"github.com/bureau-foundation/persons/lib/personsync"
	"github.com/bureau-foundation/persons/lib/schema/person"
)

// categorize wraps a service error in the matching cli.ToolError.
// Errors that are already categorized pass through.
func categorize(action string, err error) error {
	if err == nil {
		return nil
	}
	var toolErr *cli.ToolError
	if errors.As(err, &toolErr) {
		return err
	}

	var failure *personapi.NetworkFailure
	if errors.As(err, &failure) {
		switch {
		case !failure.Completed():
			return cli.Transient("%s: %w", action, err).
				WithHint("Check that the service is running and --base-url is correct.")
		case failure.StatusCode == http.StatusNotFound:
			return cli.NotFound("%s: %w", action, err)
		case failure.StatusCode == http.StatusBadRequest:
			toolErr := cli.Validation("%s: %w", action, err)
			if fields := personapi.FieldErrors(err); fields != nil {
				toolErr.WithHint(describeFields(fields))
			}
			return toolErr
		case failure.StatusCode == http.StatusUnauthorized, failure.StatusCode == http.StatusForbidden:
			return cli.Forbidden("%s: %w", action, err).
				WithHint("Pass --token or set api.token in the config file.")
		}
		return cli.Transient("%s: %w", action, err)
	}

	switch {
	case errors.Is(err, personsync.ErrMissingIdentifier),
		errors.Is(err, personsync.ErrInvalidCollection):
		return cli.Internal("%s: unexpected server response: %w", action, err)
	case errors.Is(err, person.ErrUnknownField):
		return cli.Validation("%s: %w", action, err)
	}
	return cli.Internal("%s: %w", action, err)
}

// describeFields formats a field-to-message map one field per line,
// sorted by field name.
func describeFields(fields map[string]string) string {
	lines := make([]string, 0, len(fields))
	for _, name := range slices.Sorted(maps.Keys(fields)) {
		label := name
		if field, err := person.ParseField(name); err == nil {
			label = "--" + strings.ReplaceAll(string(field), "_", "-")
		} else if name == "" {
			label = "record"
		}
		lines = append(lines, fmt.Sprintf("%s: %s", label, fields[name]))
	}
	return strings.Join(lines, "\n")
}
