// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderScrollbar returns a one-column scrollbar height rows tall for a
// list of total rows of which visible are shown starting at offset.
// When everything fits, the thumb fills the track.
func RenderScrollbar(theme Theme, height, total, visible, offset int) string {
	if height <= 0 {
		return ""
	}
	track := lipgloss.NewStyle().Foreground(theme.BorderColor).Render("│")
	thumb := lipgloss.NewStyle().Foreground(theme.StatusInProgress).Render("┃")

	lines := make([]string, height)
	if total <= visible || total <= 0 {
		for index := range lines {
			lines[index] = thumb
		}
		return strings.Join(lines, "\n")
	}

	thumbSize := max(1, height*visible/total)
	thumbOffset := 0
	if scrollable, room := total-visible, height-thumbSize; scrollable > 0 && room > 0 {
		thumbOffset = offset * room / scrollable
	}
	thumbOffset = min(thumbOffset, height-thumbSize)

	for index := range lines {
		if index >= thumbOffset && index < thumbOffset+thumbSize {
			lines[index] = thumb
		} else {
			lines[index] = track
		}
	}
	return strings.Join(lines, "\n")
}
