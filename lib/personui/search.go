// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package personui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/bureau-foundation/persons/lib/personsync"
	"github.com/bureau-foundation/persons/lib/schema/person"
	"github.com/bureau-foundation/persons/lib/tui"
)

// SearchModel holds the search bar input. Matching is delegated to
// personsync.Filter: case-insensitive substring on name or email.
type SearchModel struct {
	// Input is the current search term.
	Input string

	// Active is true when the search bar has keyboard focus.
	Active bool
}

// Apply returns the records matching the current term. An empty term
// returns records unchanged.
func (search *SearchModel) Apply(records []person.Record) []person.Record {
	return personsync.Filter(records, search.Input)
}

// HandleRune appends a typed character.
func (search *SearchModel) HandleRune(character rune) {
	search.Input += string(character)
}

// HandleBackspace removes the last character. Returns true if the
// input changed.
func (search *SearchModel) HandleBackspace() bool {
	if search.Input == "" {
		return false
	}
	runes := []rune(search.Input)
	search.Input = string(runes[:len(runes)-1])
	return true
}

// Clear resets the input and deactivates the bar.
func (search *SearchModel) Clear() {
	search.Input = ""
	search.Active = false
}

// View renders the search bar. When active, shows the input with a
// cursor. When inactive with text, shows the term dimmed. When
// inactive with no text, returns "" (hidden).
func (search *SearchModel) View(theme tui.Theme, width int) string {
	if !search.Active && search.Input == "" {
		return ""
	}

	if search.Active {
		cursor := lipgloss.NewStyle().
			Foreground(theme.HeaderForeground).
			Bold(true).
			Render("▎")
		return lipgloss.NewStyle().
			Foreground(theme.NormalText).
			Width(width).
			Render(" / " + search.Input + cursor)
	}

	return lipgloss.NewStyle().
		Foreground(theme.FaintText).
		Width(width).
		Render(" search: " + search.Input)
}
