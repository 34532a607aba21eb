// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package personui

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/bureau-foundation/persons/lib/schema/person"
	"github.com/bureau-foundation/persons/lib/tui"
)

func TestMatchRange(t *testing.T) {
	tests := []struct {
		text, term string
		start, end int
	}{
		{"Ann Lee", "ann", 0, 3},
		{"Ann Lee", "LEE", 4, 7},
		{"Ann Lee", "", 0, 0},
		{"Ann Lee", "bob", 0, 0},
		{"Zoë Ng", "ng", 4, 6},
		{"ab", "abc", 0, 0},
	}
	for _, test := range tests {
		start, end := matchRange(test.text, test.term)
		if start != test.start || end != test.end {
			t.Errorf("matchRange(%q, %q) = (%d, %d), want (%d, %d)",
				test.text, test.term, start, end, test.start, test.end)
		}
	}
}

func TestFitColumn(t *testing.T) {
	tests := []struct {
		text  string
		width int
		want  string
	}{
		{"Ann", 6, "Ann   "},
		{"Annabelle", 6, "Annab…"},
		{"two\nlines", 9, "two lines"},
		{"", 3, "   "},
	}
	for _, test := range tests {
		if got := fitColumn(test.text, test.width); got != test.want {
			t.Errorf("fitColumn(%q, %d) = %q, want %q", test.text, test.width, got, test.want)
		}
	}
}

func TestListRendererWidths(t *testing.T) {
	record := person.Record{
		ID:          person.NumericID(1),
		Name:        "A very long name that will not fit in the column at all",
		Email:       "someone@example.org",
		PhoneNumber: "+1 555 0100",
		Gender:      person.GenderOther,
		DateOfBirth: person.NewDate(1990, time.April, 1),
	}

	for _, width := range []int{40, 80, 120} {
		renderer := NewListRenderer(tui.DefaultTheme, width, "name")
		for _, line := range []string{
			renderer.RenderHeader(),
			renderer.RenderRow(record, false),
		} {
			if got := lipgloss.Width(line); got > width {
				t.Errorf("width %d: line is %d columns: %q", width, got, line)
			}
		}
		if got := lipgloss.Width(renderer.RenderRow(record, true)); got != width {
			t.Errorf("width %d: selected row is %d columns", width, got)
		}
	}

	row := NewListRenderer(tui.DefaultTheme, 120, "").RenderRow(record, false)
	for _, want := range []string{"someone@example.org", "Other", "1990-04-01", "+1 555 0100"} {
		if !strings.Contains(row, want) {
			t.Errorf("row missing %q: %q", want, row)
		}
	}
}

func TestSearchModel(t *testing.T) {
	records := []person.Record{
		{ID: person.NumericID(1), Name: "Ann", Email: "ann@x.com"},
		{ID: person.NumericID(2), Name: "Bo", Email: "bo@annex.org"},
		{ID: person.NumericID(3), Name: "Cy", Email: "cy@x.com"},
	}

	var search SearchModel
	if got := search.Apply(records); len(got) != 3 {
		t.Fatalf("empty term kept %d records", len(got))
	}
	if search.HandleBackspace() {
		t.Error("backspace on empty input reported a change")
	}

	for _, character := range "ANN" {
		search.HandleRune(character)
	}
	got := search.Apply(records)
	if len(got) != 2 || got[0].Name != "Ann" || got[1].Name != "Bo" {
		t.Errorf("ANN matched %+v, want Ann and Bo", got)
	}

	search.HandleRune('é')
	if !search.HandleBackspace() || search.Input != "ANN" {
		t.Errorf("backspace should remove one rune, input %q", search.Input)
	}

	search.Active = true
	if view := search.View(tui.DefaultTheme, 30); !strings.Contains(view, "/ ANN") {
		t.Errorf("active view = %q", view)
	}
	search.Active = false
	if view := search.View(tui.DefaultTheme, 30); !strings.Contains(view, "search: ANN") {
		t.Errorf("inactive view = %q", view)
	}
	search.Clear()
	if view := search.View(tui.DefaultTheme, 30); view != "" {
		t.Errorf("cleared view = %q, want hidden", view)
	}
}
