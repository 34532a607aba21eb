// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"testing"

	"github.com/spf13/pflag"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"abc", "abc", 0},
		{"abc", "abd", 1}, // substitution
		{"abc", "ab", 1},  // deletion
		{"ab", "abc", 1},  // insertion
		{"abc", "bac", 2}, // transposition (counted as 2 edits)
		{"kitten", "sitting", 3},
		{"search", "serach", 2},
		{"delete", "delte", 1},
	}

	for _, test := range tests {
		t.Run(test.a+"->"+test.b, func(t *testing.T) {
			got := levenshtein(test.a, test.b)
			if got != test.want {
				t.Errorf("levenshtein(%q, %q) = %d, want %d", test.a, test.b, got, test.want)
			}
		})
	}
}

func TestSuggestCommand(t *testing.T) {
	commands := []*Command{
		{Name: "list"},
		{Name: "search"},
		{Name: "add"},
		{Name: "edit"},
		{Name: "delete"},
		{Name: "viewer"},
		{Name: "version"},
	}

	tests := []struct {
		input string
		want  string
	}{
		{"serach", "search"},
		{"lst", "list"},
		{"delte", "delete"},
		{"veiwer", "viewer"},
		{"zzzzzzzzz", ""},
	}

	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			if got := suggestCommand(test.input, commands); got != test.want {
				t.Errorf("suggestCommand(%q) = %q, want %q", test.input, got, test.want)
			}
		})
	}
}

func TestSuggestFlag(t *testing.T) {
	flagSet := pflag.NewFlagSet("add", pflag.ContinueOnError)
	flagSet.String("email", "", "")
	flagSet.String("date-of-birth", "", "")
	flagSet.Bool("json", false, "")
	flagSet.BoolP("v", "v", false, "")

	tests := []struct {
		args []string
		want string
	}{
		{[]string{"--emial", "a@x.com"}, "--email"},
		{[]string{"--date-of-brith=1990-01-01"}, "--date-of-birth"},
		{[]string{"--json", "--emal"}, "--email"},
		{[]string{"--zzzzzzzzzz"}, ""},
		{[]string{"positional"}, ""},
	}

	for _, test := range tests {
		if got := suggestFlag(test.args, flagSet); got != test.want {
			t.Errorf("suggestFlag(%v) = %q, want %q", test.args, got, test.want)
		}
	}
}
