// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"

	"github.com/bureau-foundation/tasktracker/lib/config"
	"github.com/bureau-foundation/tasktracker/lib/schema"
)

// NewRenderer returns a lipgloss renderer for output. colorMode is one
// of the config.Color* values: auto detects from output, always forces
// 256 colors, never disables styling.
func NewRenderer(output io.Writer, colorMode string) (*lipgloss.Renderer, error) {
	switch colorMode {
	case config.ColorAuto, "":
		return lipgloss.NewRenderer(output), nil
	case config.ColorAlways:
		return forcedRenderer(output, termenv.ANSI256), nil
	case config.ColorNever:
		return forcedRenderer(output, termenv.Ascii), nil
	default:
		return nil, fmt.Errorf("unknown color mode %q", colorMode)
	}
}

// forcedRenderer pins the profile. SetColorProfile is needed as well
// as WithProfile: ColorProfile() otherwise re-detects from the
// environment.
func forcedRenderer(output io.Writer, profile termenv.Profile) *lipgloss.Renderer {
	renderer := lipgloss.NewRenderer(output, termenv.WithProfile(profile))
	renderer.SetColorProfile(profile)
	return renderer
}

// Styles are the lipgloss styles derived from a Theme for one renderer.
type Styles struct {
	Theme    Theme
	Normal   lipgloss.Style
	Faint    lipgloss.Style
	Header   lipgloss.Style
	Mine     lipgloss.Style
	Selected lipgloss.Style
	Help     lipgloss.Style
	Error    lipgloss.Style
	Match    lipgloss.Style

	renderer *lipgloss.Renderer
}

// NewStyles builds the style set for theme on renderer.
func NewStyles(renderer *lipgloss.Renderer, theme Theme) Styles {
	return Styles{
		Theme:    theme,
		Normal:   renderer.NewStyle().Foreground(theme.NormalText),
		Faint:    renderer.NewStyle().Foreground(theme.FaintText),
		Header:   renderer.NewStyle().Foreground(theme.HeaderForeground).Bold(true),
		Mine:     renderer.NewStyle().Foreground(theme.MineAccent).Bold(true),
		Selected: renderer.NewStyle().Foreground(theme.SelectedForeground).Background(theme.SelectedBackground),
		Help:     renderer.NewStyle().Foreground(theme.HelpText),
		Error:    renderer.NewStyle().Foreground(theme.ErrorForeground).Bold(true),
		Match:    renderer.NewStyle().Foreground(theme.MatchHighlight).Underline(true),
		renderer: renderer,
	}
}

// Status renders the human label of status in its theme color.
func (styles Styles) Status(status schema.Status) string {
	return styles.renderer.NewStyle().
		Foreground(styles.Theme.StatusColor(status)).
		Render(status.Label())
}

// Assignment renders the "who is assigned" phrase for a task row:
// "you are assigned" for the viewer's own tasks, "<name> is assigned"
// otherwise, and a faint placeholder when the assignee no longer
// exists.
func (styles Styles) Assignment(view schema.TaskView) string {
	switch {
	case view.AssignedToViewer:
		return styles.Mine.Render("you are assigned")
	case view.AssigneeName != "":
		return styles.Normal.Render(view.AssigneeName + " is assigned")
	default:
		return styles.Faint.Render(fmt.Sprintf("user %d (missing) is assigned", view.Task.AssigneeCode))
	}
}

// Truncate shortens text to at most width terminal cells, ending with
// an ellipsis when anything was cut. Escape sequences are preserved.
func Truncate(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if ansi.StringWidth(text) <= width {
		return text
	}
	return ansi.Truncate(text, width, "…")
}

// PadRight pads text with spaces to width terminal cells.
func PadRight(text string, width int) string {
	gap := width - ansi.StringWidth(text)
	if gap <= 0 {
		return text
	}
	return text + strings.Repeat(" ", gap)
}
