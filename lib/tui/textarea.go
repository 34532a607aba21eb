// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// TextArea is a small multi-line editor with cursor tracking. Enter
// splits the line; arrows, home and end move the cursor.
type TextArea struct {
	lines   [][]rune
	cursorY int
	cursorX int
}

// NewTextArea creates an editor holding value, with the cursor at the
// end of the text.
func NewTextArea(value string) TextArea {
	area := TextArea{}
	area.SetValue(value)
	return area
}

// SetValue replaces the content and moves the cursor to the end.
func (area *TextArea) SetValue(value string) {
	area.lines = nil
	for _, line := range strings.Split(value, "\n") {
		area.lines = append(area.lines, []rune(line))
	}
	area.cursorY = len(area.lines) - 1
	area.cursorX = len(area.lines[area.cursorY])
}

// Value returns the text with lines joined by "\n".
func (area TextArea) Value() string {
	parts := make([]string, len(area.lines))
	for index, line := range area.lines {
		parts[index] = string(line)
	}
	return strings.Join(parts, "\n")
}

// LineCount returns the number of lines.
func (area TextArea) LineCount() int {
	return len(area.lines)
}

// Update applies one key. Returns true when the text changed.
func (area *TextArea) Update(message tea.KeyMsg) bool {
	switch message.Type {
	case tea.KeyRunes, tea.KeySpace:
		for _, character := range message.Runes {
			area.insertRune(character)
		}
		return len(message.Runes) > 0

	case tea.KeyEnter:
		line := area.lines[area.cursorY]
		before := append([]rune(nil), line[:area.cursorX]...)
		after := append([]rune(nil), line[area.cursorX:]...)

		lines := make([][]rune, 0, len(area.lines)+1)
		lines = append(lines, area.lines[:area.cursorY]...)
		lines = append(lines, before, after)
		lines = append(lines, area.lines[area.cursorY+1:]...)
		area.lines = lines
		area.cursorY++
		area.cursorX = 0
		return true

	case tea.KeyBackspace:
		if area.cursorX > 0 {
			line := area.lines[area.cursorY]
			area.lines[area.cursorY] = append(line[:area.cursorX-1], line[area.cursorX:]...)
			area.cursorX--
			return true
		}
		if area.cursorY > 0 {
			previous := area.lines[area.cursorY-1]
			area.cursorX = len(previous)
			area.lines[area.cursorY-1] = append(previous, area.lines[area.cursorY]...)
			area.lines = append(area.lines[:area.cursorY], area.lines[area.cursorY+1:]...)
			area.cursorY--
			return true
		}

	case tea.KeyDelete:
		line := area.lines[area.cursorY]
		if area.cursorX < len(line) {
			area.lines[area.cursorY] = append(line[:area.cursorX], line[area.cursorX+1:]...)
			return true
		}
		if area.cursorY < len(area.lines)-1 {
			area.lines[area.cursorY] = append(line, area.lines[area.cursorY+1]...)
			area.lines = append(area.lines[:area.cursorY+1], area.lines[area.cursorY+2:]...)
			return true
		}

	case tea.KeyLeft:
		if area.cursorX > 0 {
			area.cursorX--
		} else if area.cursorY > 0 {
			area.cursorY--
			area.cursorX = len(area.lines[area.cursorY])
		}

	case tea.KeyRight:
		if area.cursorX < len(area.lines[area.cursorY]) {
			area.cursorX++
		} else if area.cursorY < len(area.lines)-1 {
			area.cursorY++
			area.cursorX = 0
		}

	case tea.KeyUp:
		if area.cursorY > 0 {
			area.cursorY--
			area.cursorX = min(area.cursorX, len(area.lines[area.cursorY]))
		}

	case tea.KeyDown:
		if area.cursorY < len(area.lines)-1 {
			area.cursorY++
			area.cursorX = min(area.cursorX, len(area.lines[area.cursorY]))
		}

	case tea.KeyHome, tea.KeyCtrlA:
		area.cursorX = 0

	case tea.KeyEnd, tea.KeyCtrlE:
		area.cursorX = len(area.lines[area.cursorY])
	}
	return false
}

func (area *TextArea) insertRune(character rune) {
	line := area.lines[area.cursorY]
	updated := make([]rune, 0, len(line)+1)
	updated = append(updated, line[:area.cursorX]...)
	updated = append(updated, character)
	updated = append(updated, line[area.cursorX:]...)
	area.lines[area.cursorY] = updated
	area.cursorX++
}

// Render returns exactly height lines, each at most width columns,
// scrolled so the cursor line is visible. The cursor is drawn in
// reverse video when focused.
func (area TextArea) Render(width, height int, style lipgloss.Style, focused bool) []string {
	cursorStyle := lipgloss.NewStyle().Reverse(true)

	scrollOffset := 0
	if area.cursorY >= height {
		scrollOffset = area.cursorY - height + 1
	}

	rendered := make([]string, 0, height)
	for lineIndex := scrollOffset; lineIndex < scrollOffset+height; lineIndex++ {
		var line string
		if lineIndex < len(area.lines) {
			runes := area.lines[lineIndex]
			switch {
			case !focused || lineIndex != area.cursorY:
				line = style.Render(string(runes))
			case area.cursorX >= len(runes):
				line = style.Render(string(runes)) + cursorStyle.Render(" ")
			default:
				line = style.Render(string(runes[:area.cursorX])) +
					cursorStyle.Render(string(runes[area.cursorX:area.cursorX+1])) +
					style.Render(string(runes[area.cursorX+1:]))
			}
		}
		if ansi.StringWidth(line) > width {
			line = ansi.Truncate(line, width, "…")
		}
		rendered = append(rendered, line)
	}
	return rendered
}
