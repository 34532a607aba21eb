// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// ChoiceOption is a single selectable value of a Choice.
type ChoiceOption struct {
	Label string // Display text.
	Value string // Value reported to the owner on change.
}

// Choice is an inline single-select field: the current option is shown
// between arrows and left/right cycle through the options, wrapping at
// both ends.
type Choice struct {
	Options []ChoiceOption
	Cursor  int
}

// NewChoice creates a Choice positioned on the option whose Value is
// value, or on the first option when none matches.
func NewChoice(options []ChoiceOption, value string) Choice {
	choice := Choice{Options: options}
	choice.Select(value)
	return choice
}

// Select moves the cursor to the option with the given value. Returns
// false, leaving the cursor alone, when no option matches.
func (choice *Choice) Select(value string) bool {
	for index, option := range choice.Options {
		if option.Value == value {
			choice.Cursor = index
			return true
		}
	}
	return false
}

// Previous moves to the previous option, wrapping to the last.
func (choice *Choice) Previous() {
	if len(choice.Options) == 0 {
		return
	}
	choice.Cursor--
	if choice.Cursor < 0 {
		choice.Cursor = len(choice.Options) - 1
	}
}

// Next moves to the next option, wrapping to the first.
func (choice *Choice) Next() {
	if len(choice.Options) == 0 {
		return
	}
	choice.Cursor++
	if choice.Cursor >= len(choice.Options) {
		choice.Cursor = 0
	}
}

// Selected returns the current option. An empty Choice returns the
// zero option.
func (choice Choice) Selected() ChoiceOption {
	if choice.Cursor < 0 || choice.Cursor >= len(choice.Options) {
		return ChoiceOption{}
	}
	return choice.Options[choice.Cursor]
}

// View renders "◂ Label ▸". Arrows are only drawn when focused.
func (choice Choice) View(style lipgloss.Style, focused bool) string {
	label := choice.Selected().Label
	if !focused {
		return style.Render("  " + label + "  ")
	}
	return style.Render("◂ " + label + " ▸")
}
