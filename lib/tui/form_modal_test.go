// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

func testFields() []FormField {
	return []FormField{
		{Key: "name", Label: "Name", Kind: FieldText},
		{Key: "gender", Label: "Gender", Kind: FieldChoice, Options: []ChoiceOption{
			{Label: "Select Gender", Value: ""},
			{Label: "Male", Value: "M"},
			{Label: "Female", Value: "F"},
		}},
		{Key: "notes", Label: "Notes", Kind: FieldMultiline, Lines: 2},
	}
}

func typeString(t *testing.T, modal *FormModal, text string) []FormEvent {
	t.Helper()
	var events []FormEvent
	for _, character := range text {
		event, _ := modal.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{character}})
		events = append(events, event)
	}
	return events
}

func TestFormModalTextField(t *testing.T) {
	modal := NewFormModal("Add Person", testFields(), DefaultTheme)

	events := typeString(t, &modal, "Ann")
	last := events[len(events)-1]
	if last.Kind != FormChanged || last.Key != "name" || last.Value != "Ann" {
		t.Fatalf("last event = %+v, want change of name to Ann", last)
	}
	if modal.Value("name") != "Ann" {
		t.Errorf("Value(name) = %q", modal.Value("name"))
	}
}

func TestFormModalFocusCycle(t *testing.T) {
	modal := NewFormModal("Add Person", testFields(), DefaultTheme)

	want := []string{"gender", "notes", "name"}
	for _, expected := range want {
		modal.Update(tea.KeyMsg{Type: tea.KeyTab})
		if modal.Focused() != expected {
			t.Fatalf("after tab focus = %q, want %q", modal.Focused(), expected)
		}
	}
	modal.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	if modal.Focused() != "notes" {
		t.Errorf("after shift+tab focus = %q, want notes", modal.Focused())
	}
}

func TestFormModalChoice(t *testing.T) {
	modal := NewFormModal("Add Person", testFields(), DefaultTheme)
	modal.Focus("gender")

	event, _ := modal.Update(tea.KeyMsg{Type: tea.KeyRight})
	if event.Kind != FormChanged || event.Key != "gender" || event.Value != "M" {
		t.Fatalf("right = %+v, want gender M", event)
	}
	modal.Update(tea.KeyMsg{Type: tea.KeyLeft})
	event, _ = modal.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if event.Value != "F" {
		t.Errorf("left twice from M = %q, want F (wrapped)", event.Value)
	}
}

func TestFormModalMultilineKeepsEnter(t *testing.T) {
	modal := NewFormModal("Add Person", testFields(), DefaultTheme)
	modal.Focus("notes")

	typeString(t, &modal, "a")
	event, _ := modal.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if event.Kind != FormChanged {
		t.Fatalf("enter in multiline = %+v, want change", event)
	}
	typeString(t, &modal, "b")
	if modal.Value("notes") != "a\nb" {
		t.Errorf("notes = %q, want %q", modal.Value("notes"), "a\nb")
	}
	if modal.Focused() != "notes" {
		t.Errorf("focus moved to %q on enter", modal.Focused())
	}
}

func TestFormModalSubmitAndCancel(t *testing.T) {
	modal := NewFormModal("Edit Person", testFields(), DefaultTheme)

	event, _ := modal.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	if event.Kind != FormSubmit {
		t.Errorf("ctrl+s = %+v, want submit", event)
	}

	modal.SetBusy(true)
	if event, _ := modal.Update(tea.KeyMsg{Type: tea.KeyCtrlS}); event.Kind != FormNone {
		t.Errorf("ctrl+s while busy = %+v, want none", event)
	}
	if events := typeString(t, &modal, "x"); events[0].Kind != FormNone {
		t.Errorf("typing while busy = %+v, want none", events[0])
	}
	if event, _ := modal.Update(tea.KeyMsg{Type: tea.KeyEsc}); event.Kind != FormCancel {
		t.Errorf("esc while busy = %+v, want cancel", event)
	}
}

func TestFormModalRender(t *testing.T) {
	modal := NewFormModal("Edit Person", testFields(), DefaultTheme)
	modal.SetValue("name", "Ann")
	modal.SetValue("gender", "F")
	modal.SetFieldError("name", "is required")
	modal.SetError("server said no")

	lines, anchorX, anchorY := modal.Render(100, 30)
	view := strings.Join(lines, "\n")
	for _, want := range []string{"Edit Person", "Ann", "Female", "is required", "Error: server said no", "Ctrl+S save"} {
		if !strings.Contains(view, want) {
			t.Errorf("render missing %q:\n%s", want, view)
		}
	}
	if anchorX <= 0 || anchorY <= 0 {
		t.Errorf("anchor = (%d, %d), want centered", anchorX, anchorY)
	}

	width := lipgloss.Width(lines[0])
	for index, line := range lines {
		if lipgloss.Width(line) != width {
			t.Errorf("line %d width %d, want %d", index, lipgloss.Width(line), width)
		}
	}
}
