// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderScrollbar produces a single-column scrollbar of the given height.
// The thumb indicates the visible region within the total content and
// uses the focus accent when focused.
func RenderScrollbar(theme Theme, height, totalItems, visibleItems, scrollOffset int, focused bool) string {
	if height <= 0 {
		return ""
	}

	thumbColor := theme.BorderColor
	if focused {
		thumbColor = theme.FocusAccent
	}
	trackStyle := lipgloss.NewStyle().Foreground(theme.BorderColor)
	thumbStyle := lipgloss.NewStyle().Foreground(thumbColor)

	thumbOffset, thumbSize := thumbGeometry(height, totalItems, visibleItems, scrollOffset)
	lines := make([]string, height)
	for index := range lines {
		if index >= thumbOffset && index < thumbOffset+thumbSize {
			lines[index] = thumbStyle.Render("┃")
		} else {
			lines[index] = trackStyle.Render("│")
		}
	}
	return strings.Join(lines, "\n")
}

// thumbGeometry returns the thumb's offset and size within a track of
// the given height. Content that fits yields a full-height thumb.
func thumbGeometry(height, totalItems, visibleItems, scrollOffset int) (int, int) {
	if totalItems <= visibleItems || totalItems <= 0 {
		return 0, height
	}

	thumbSize := max(height*visibleItems/totalItems, 1)
	scrollableRange := totalItems - visibleItems
	trackRange := height - thumbSize
	thumbOffset := 0
	if trackRange > 0 {
		thumbOffset = scrollOffset * trackRange / scrollableRange
	}
	if thumbOffset+thumbSize > height {
		thumbOffset = height - thumbSize
	}
	return thumbOffset, thumbSize
}

// ScrollPosition describes a scroll offset for the help bar: "top",
// "bottom", or a percentage. Returns "" when everything fits.
func ScrollPosition(totalItems, visibleItems, scrollOffset int) string {
	if totalItems <= visibleItems {
		return ""
	}
	switch {
	case scrollOffset <= 0:
		return "top"
	case scrollOffset+visibleItems >= totalItems:
		return "bottom"
	}
	percent := scrollOffset * 100 / (totalItems - visibleItems)
	return fmt.Sprintf("%d%%", percent)
}
