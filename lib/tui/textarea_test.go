// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func TestTextAreaEditing(t *testing.T) {
	area := NewTextArea("hello\nworld")
	if area.LineCount() != 2 {
		t.Fatalf("LineCount = %d, want 2", area.LineCount())
	}

	// Cursor starts at the end; backspace at column 0 joins lines.
	area.Update(tea.KeyMsg{Type: tea.KeyHome})
	if !area.Update(tea.KeyMsg{Type: tea.KeyBackspace}) {
		t.Fatal("backspace at line start should change the text")
	}
	if area.Value() != "helloworld" {
		t.Errorf("after join = %q", area.Value())
	}

	area.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if area.Value() != "hello\nworld" {
		t.Errorf("after split = %q", area.Value())
	}

	if area.Update(tea.KeyMsg{Type: tea.KeyLeft}) {
		t.Error("cursor movement should not report a change")
	}
	area.Update(tea.KeyMsg{Type: tea.KeyDelete})
	if area.Value() != "helloworld" {
		t.Errorf("delete at line end = %q", area.Value())
	}
}

func TestTextAreaRenderHeight(t *testing.T) {
	area := NewTextArea("a\nb\nc\nd")
	lines := area.Render(10, 2, lipgloss.NewStyle(), true)
	if len(lines) != 2 {
		t.Fatalf("Render returned %d lines, want 2", len(lines))
	}
}
