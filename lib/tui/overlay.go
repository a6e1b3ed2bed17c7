// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// RenderBox draws lines inside a rounded border with a bold title row.
// Each line is truncated to width cells.
func RenderBox(styles Styles, title string, lines []string, width int) []string {
	inner := make([]string, 0, len(lines)+1)
	inner = append(inner, styles.Header.Render(Truncate(title, width)))
	for _, line := range lines {
		inner = append(inner, PadRight(Truncate(line, width), width))
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.Theme.BorderColor).
		Padding(0, 1).
		Render(strings.Join(inner, "\n"))
	return strings.Split(box, "\n")
}

// SpliceOverlay places overlay lines over view with the top-left
// corner at (column, row). Lines falling outside view are dropped.
// Escape sequences on both sides of the overlay are kept intact.
func SpliceOverlay(view string, overlay []string, column, row int) string {
	if len(overlay) == 0 {
		return view
	}
	viewLines := strings.Split(view, "\n")
	overlayWidth := ansi.StringWidth(overlay[0])

	for index, overlayLine := range overlay {
		target := row + index
		if target < 0 || target >= len(viewLines) {
			continue
		}
		line := viewLines[target]

		var builder strings.Builder
		if column > 0 {
			prefix := ansi.Truncate(line, column, "")
			builder.WriteString(PadRight(prefix, column))
		}
		builder.WriteString("\x1b[0m")
		builder.WriteString(overlayLine)
		builder.WriteString("\x1b[0m")
		if rest := column + overlayWidth; rest < ansi.StringWidth(line) {
			builder.WriteString(ansi.TruncateLeft(line, rest, ""))
		}
		viewLines[target] = builder.String()
	}
	return strings.Join(viewLines, "\n")
}

// CenterOverlay splices overlay into the middle of a width by height
// view.
func CenterOverlay(view string, overlay []string, width, height int) string {
	if len(overlay) == 0 {
		return view
	}
	column := max(0, (width-ansi.StringWidth(overlay[0]))/2)
	row := max(0, (height-len(overlay))/2)
	return SpliceOverlay(view, overlay, column, row)
}
