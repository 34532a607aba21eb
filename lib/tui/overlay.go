// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// resetStyle ends any styling left open on either side of an overlay.
const resetStyle = "\x1b[0m"

// SpliceOverlay draws overlayLines over view with their top-left corner
// at column anchorX of line anchorY. The view's styling is kept on both
// sides of the overlay. Overlay lines falling outside the view are
// dropped.
func SpliceOverlay(view string, overlayLines []string, anchorX, anchorY int) string {
	if len(overlayLines) == 0 {
		return view
	}
	width := overlayWidth(overlayLines)
	viewLines := strings.Split(view, "\n")
	for offset, overlayLine := range overlayLines {
		row := anchorY + offset
		if row < 0 || row >= len(viewLines) {
			continue
		}
		viewLines[row] = spliceLine(viewLines[row], overlayLine, anchorX, width)
	}
	return strings.Join(viewLines, "\n")
}

func spliceLine(line, overlay string, anchorX, width int) string {
	var builder strings.Builder
	if anchorX > 0 {
		prefix := ansi.Truncate(line, anchorX, "")
		builder.WriteString(prefix)
		builder.WriteString(strings.Repeat(" ", max(anchorX-ansi.StringWidth(prefix), 0)))
	}
	builder.WriteString(resetStyle)
	builder.WriteString(overlay)
	builder.WriteString(resetStyle)
	if end := anchorX + width; end < ansi.StringWidth(line) {
		builder.WriteString(ansi.TruncateLeft(line, end, ""))
	}
	return builder.String()
}

func overlayWidth(lines []string) int {
	width := 0
	for _, line := range lines {
		width = max(width, ansi.StringWidth(line))
	}
	return width
}

// CenterAnchor returns the top-left corner that centers overlayLines on
// a screen of the given size, never left of or above the origin.
func CenterAnchor(overlayLines []string, screenWidth, screenHeight int) (int, int) {
	return max((screenWidth-overlayWidth(overlayLines))/2, 0),
		max((screenHeight-len(overlayLines))/2, 0)
}

// PadOverlayLine renders one inner line of a modal: a space of margin,
// styledContent truncated to innerWidth, and background padding up to
// innerWidth plus the right margin.
func PadOverlayLine(styledContent string, innerWidth int, backgroundStyle lipgloss.Style) string {
	if ansi.StringWidth(styledContent) > innerWidth {
		styledContent = ansi.Truncate(styledContent, innerWidth, "…")
	}
	padding := max(innerWidth-ansi.StringWidth(styledContent), 0)
	return backgroundStyle.Render(" ") + styledContent +
		backgroundStyle.Render(strings.Repeat(" ", padding+1))
}
