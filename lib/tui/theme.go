// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the color palette for the persons viewer. All colors
// use lipgloss ANSI 256-color codes for broad terminal compatibility.
type Theme struct {
	// Text colors.
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	// Selected row.
	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	// UI chrome.
	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color
	FocusAccent      lipgloss.Color // Scrollbar thumb and focused form label.

	// Status bar notices.
	ErrorForeground  lipgloss.Color
	NoticeForeground lipgloss.Color
	BusyForeground   lipgloss.Color

	// Change highlighting: background tint for recently-changed rows.
	// HotAccentPut is used for created/updated records; HotAccentRemove
	// for records that left the collection.
	HotAccentPut    lipgloss.Color
	HotAccentRemove lipgloss.Color

	// Search match highlighting in the list.
	SearchHighlightBackground lipgloss.Color

	// Modal overlays.
	ModalForeground lipgloss.Color
	ModalBackground lipgloss.Color
}

// DefaultTheme is the built-in dark-terminal color scheme.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	HeaderForeground: lipgloss.Color("255"),
	BorderColor:      lipgloss.Color("240"),
	HelpText:         lipgloss.Color("241"),
	FocusAccent:      lipgloss.Color("220"), // yellow/amber

	ErrorForeground:  lipgloss.Color("196"), // red
	NoticeForeground: lipgloss.Color("114"), // green
	BusyForeground:   lipgloss.Color("75"),  // blue

	HotAccentPut:    lipgloss.Color("58"), // dark amber background tint
	HotAccentRemove: lipgloss.Color("52"), // dark red background tint

	SearchHighlightBackground: lipgloss.Color("58"),

	ModalForeground: lipgloss.Color("252"),
	ModalBackground: lipgloss.Color("237"),
}
