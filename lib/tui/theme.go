// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/bureau-foundation/tasktracker/lib/schema"
)

// Theme is the color palette for tracker output. All colors are ANSI
// 256-color codes.
type Theme struct {
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	StatusUnstarted  lipgloss.Color
	StatusInProgress lipgloss.Color
	StatusDone       lipgloss.Color

	// MineAccent marks tasks assigned to the viewing user.
	MineAccent lipgloss.Color

	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color
	ErrorForeground  lipgloss.Color

	// MatchHighlight colors the characters a fuzzy filter matched.
	MatchHighlight lipgloss.Color
}

// StatusColor returns the color for status, or FaintText for an
// undefined value.
func (theme Theme) StatusColor(status schema.Status) lipgloss.Color {
	switch status {
	case schema.StatusUnstarted:
		return theme.StatusUnstarted
	case schema.StatusInProgress:
		return theme.StatusInProgress
	case schema.StatusDone:
		return theme.StatusDone
	default:
		return theme.FaintText
	}
}

// DefaultTheme targets dark 256-color terminals.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	StatusUnstarted:  lipgloss.Color("75"),  // blue
	StatusInProgress: lipgloss.Color("220"), // amber
	StatusDone:       lipgloss.Color("114"), // green

	MineAccent: lipgloss.Color("141"), // light purple

	HeaderForeground: lipgloss.Color("255"),
	BorderColor:      lipgloss.Color("240"),
	HelpText:         lipgloss.Color("241"),
	ErrorForeground:  lipgloss.Color("196"),

	MatchHighlight: lipgloss.Color("208"),
}
