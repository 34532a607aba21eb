// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package personui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/bureau-foundation/persons/lib/schema/person"
	"github.com/bureau-foundation/persons/lib/tui"
)

// Fixed column widths. Name and email share the remaining space.
const (
	columnWidthPhone  = 14
	columnWidthGender = 7
	columnWidthBorn   = 10

	// fixedRowWidth is the leading indent, the fixed columns, and one
	// space between each pair of the five columns.
	fixedRowWidth = 1 + columnWidthPhone + columnWidthGender + columnWidthBorn + 4

	minColumnWidthName  = 8
	minColumnWidthEmail = 8
)

// ListRenderer renders person rows as a table within a given width.
type ListRenderer struct {
	theme       tui.Theme
	width       int
	nameWidth   int
	emailWidth  int
	searchInput string
}

// NewListRenderer creates a ListRenderer for the given width. Matches
// of term in the name and email columns are highlighted.
func NewListRenderer(theme tui.Theme, width int, term string) ListRenderer {
	flexible := max(width-fixedRowWidth, minColumnWidthName+minColumnWidthEmail)
	nameWidth := max(flexible*2/5, minColumnWidthName)
	return ListRenderer{
		theme:       theme,
		width:       width,
		nameWidth:   nameWidth,
		emailWidth:  max(flexible-nameWidth, minColumnWidthEmail),
		searchInput: term,
	}
}

// RenderHeader renders the column titles.
func (renderer ListRenderer) RenderHeader() string {
	style := lipgloss.NewStyle().Foreground(renderer.theme.FaintText).Bold(true)
	line := " " + strings.Join([]string{
		fitColumn("NAME", renderer.nameWidth),
		fitColumn("EMAIL", renderer.emailWidth),
		fitColumn("PHONE", columnWidthPhone),
		fitColumn("GENDER", columnWidthGender),
		fitColumn("BORN", columnWidthBorn),
	}, " ")
	return style.Render(ansi.Truncate(line, renderer.width, ""))
}

// RenderRow renders one record. Selected rows are drawn in the
// selection colors without match highlighting.
func (renderer ListRenderer) RenderRow(record person.Record, selected bool) string {
	gender := ""
	if record.Gender != person.GenderUnset {
		gender = record.Gender.Label()
	}

	if selected {
		line := " " + strings.Join([]string{
			fitColumn(record.Name, renderer.nameWidth),
			fitColumn(record.Email, renderer.emailWidth),
			fitColumn(record.PhoneNumber, columnWidthPhone),
			fitColumn(gender, columnWidthGender),
			fitColumn(record.DateOfBirth.String(), columnWidthBorn),
		}, " ")
		line = ansi.Truncate(line, renderer.width, "")
		return lipgloss.NewStyle().
			Background(renderer.theme.SelectedBackground).
			Foreground(renderer.theme.SelectedForeground).
			Bold(true).
			Width(renderer.width).
			MaxWidth(renderer.width).
			Render(line)
	}

	normal := lipgloss.NewStyle().Foreground(renderer.theme.NormalText)
	faint := lipgloss.NewStyle().Foreground(renderer.theme.FaintText)
	highlight := normal.Background(renderer.theme.SearchHighlightBackground)

	line := " " +
		renderer.highlightColumn(record.Name, renderer.nameWidth, normal, highlight) + " " +
		renderer.highlightColumn(record.Email, renderer.emailWidth, faint, highlight) + " " +
		normal.Render(fitColumn(record.PhoneNumber, columnWidthPhone)) + " " +
		faint.Render(fitColumn(gender, columnWidthGender)) + " " +
		faint.Render(fitColumn(record.DateOfBirth.String(), columnWidthBorn))
	return ansi.Truncate(line, renderer.width, "")
}

// highlightColumn fits text to width and marks the first
// case-insensitive occurrence of the search term.
func (renderer ListRenderer) highlightColumn(text string, width int, base, highlight lipgloss.Style) string {
	fitted := fitColumn(text, width)
	start, end := matchRange(fitted, renderer.searchInput)
	if start == end {
		return base.Render(fitted)
	}
	runes := []rune(fitted)
	return base.Render(string(runes[:start])) +
		highlight.Render(string(runes[start:end])) +
		base.Render(string(runes[end:]))
}

// matchRange returns the rune range of the first case-insensitive
// occurrence of term in text, or (0, 0) when there is none.
func matchRange(text, term string) (int, int) {
	if term == "" {
		return 0, 0
	}
	textRunes := []rune(strings.ToLower(text))
	termRunes := []rune(strings.ToLower(term))
	// Lowercasing can change the rune count of some scripts; the
	// offsets would no longer line up with the original text.
	if len(textRunes) != len([]rune(text)) {
		return 0, 0
	}
	for start := 0; start+len(termRunes) <= len(textRunes); start++ {
		if string(textRunes[start:start+len(termRunes)]) == string(termRunes) {
			return start, start + len(termRunes)
		}
	}
	return 0, 0
}

// fitColumn truncates text to width (with an ellipsis) or pads it with
// spaces to exactly width columns. Newlines are flattened.
func fitColumn(text string, width int) string {
	text = strings.ReplaceAll(text, "\n", " ")
	textWidth := ansi.StringWidth(text)
	if textWidth > width {
		return ansi.Truncate(text, width, "…")
	}
	return text + strings.Repeat(" ", width-textWidth)
}
