// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package taskui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"github.com/bureau-foundation/tasktracker/lib/lifecycle"
	"github.com/bureau-foundation/tasktracker/lib/schema"
	"github.com/bureau-foundation/tasktracker/lib/tui"
)

// detailHeaderLines is the height of the fixed header above the
// scrollable body: status line, name, separator.
const detailHeaderLines = 3

// DetailPane shows one task: a fixed header and a scrollable body
// with the assignment and the task's audit history.
type DetailPane struct {
	viewport viewport.Model
	styles   tui.Styles
	width    int
	height   int

	hasTask bool
	view    schema.TaskView
	history []schema.LogEntry
	// historyErr is shown in place of the history when loading failed.
	historyErr error

	header string
}

// NewDetailPane creates an empty detail pane.
func NewDetailPane(styles tui.Styles) DetailPane {
	return DetailPane{styles: styles}
}

func (pane DetailPane) bodyHeight() int {
	return max(1, pane.height-detailHeaderLines)
}

// contentWidth leaves one column of padding and one for the scrollbar.
func (pane DetailPane) contentWidth() int {
	return max(1, pane.width-2)
}

// SetSize updates the pane dimensions, re-rendering displayed content
// at the new width.
func (pane *DetailPane) SetSize(width, height int) {
	pane.width = width
	pane.height = height
	pane.viewport.Width = pane.contentWidth()
	pane.viewport.Height = pane.bodyHeight()
	if pane.hasTask {
		pane.render(false)
	}
}

// SetTask displays view. history may be nil while it is loading.
// Switching to a different task scrolls back to the top.
func (pane *DetailPane) SetTask(view schema.TaskView, history []schema.LogEntry, historyErr error) {
	changed := !pane.hasTask || pane.view.Task.Code != view.Task.Code
	pane.hasTask = true
	pane.view = view
	pane.history = history
	pane.historyErr = historyErr
	pane.render(changed)
}

// Clear empties the pane.
func (pane *DetailPane) Clear() {
	pane.hasTask = false
	pane.header = ""
	pane.history = nil
	pane.historyErr = nil
	pane.viewport.SetContent("")
}

// Code returns the displayed task code and whether a task is shown.
func (pane DetailPane) Code() (int, bool) {
	return pane.view.Task.Code, pane.hasTask
}

func (pane *DetailPane) render(resetScroll bool) {
	width := pane.contentWidth()
	styles := pane.styles
	task := pane.view.Task

	statusLine := fmt.Sprintf("#%d  %s", task.Code, styles.Status(task.Status))
	if next, ok := lifecycle.Next(task.Status); ok {
		statusLine += styles.Faint.Render("  next: " + next.Label())
	}
	pane.header = strings.Join([]string{
		tui.Truncate(statusLine, width),
		styles.Header.Render(tui.Truncate(task.Name, width)),
		styles.Faint.Render(strings.Repeat("─", width)),
	}, "\n")

	var body strings.Builder
	body.WriteString(styles.Assignment(pane.view))
	body.WriteString("\n\n")
	body.WriteString(styles.Header.Render("History"))
	body.WriteString("\n")
	switch {
	case pane.historyErr != nil:
		body.WriteString(styles.Error.Render(pane.historyErr.Error()))
	case pane.history == nil:
		body.WriteString(styles.Faint.Render("loading…"))
	case len(pane.history) == 0:
		body.WriteString(styles.Faint.Render("no audit entries"))
	default:
		for _, entry := range pane.history {
			fmt.Fprintf(&body, "%s  %s  %s\n",
				entry.DateString(),
				tui.PadRight(styles.Status(entry.Status), 11),
				styles.Faint.Render(fmt.Sprintf("by user %d", entry.ActorCode)))
		}
	}

	previousOffset := pane.viewport.YOffset
	pane.viewport.SetContent(lipgloss.NewStyle().Width(width).Render(strings.TrimRight(body.String(), "\n")))
	if resetScroll {
		pane.viewport.GotoTop()
		return
	}
	maxOffset := max(0, pane.viewport.TotalLineCount()-pane.viewport.Height)
	pane.viewport.SetYOffset(min(previousOffset, maxOffset))
}

// ScrollBy moves the body by lines (negative scrolls up).
func (pane *DetailPane) ScrollBy(lines int) {
	maxOffset := max(0, pane.viewport.TotalLineCount()-pane.viewport.Height)
	pane.viewport.SetYOffset(min(max(0, pane.viewport.YOffset+lines), maxOffset))
}

// HalfPageUp and HalfPageDown scroll by half the body height.
func (pane *DetailPane) HalfPageUp()   { pane.viewport.HalfViewUp() }
func (pane *DetailPane) HalfPageDown() { pane.viewport.HalfViewDown() }

// Top and Bottom jump to either end of the body.
func (pane *DetailPane) Top()    { pane.viewport.GotoTop() }
func (pane *DetailPane) Bottom() { pane.viewport.GotoBottom() }

// View renders the pane at its configured size. focused draws the
// left edge in the accent color.
func (pane DetailPane) View(focused bool) string {
	padding := lipgloss.NewStyle().Width(pane.width - 1).PaddingLeft(1)
	if !pane.hasTask {
		empty := pane.styles.Faint.Render("no task selected")
		return padding.Height(pane.height).Render(empty)
	}

	header := padding.Height(detailHeaderLines).Render(pane.header)
	body := padding.Width(pane.width - 1).Height(pane.bodyHeight()).Render(pane.viewport.View())
	scrollbar := tui.RenderScrollbar(pane.styles.Theme, pane.bodyHeight(),
		pane.viewport.TotalLineCount(), pane.viewport.Height, pane.viewport.YOffset)
	if !focused {
		scrollbar = pane.styles.Faint.Render(scrollbar)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		lipgloss.JoinHorizontal(lipgloss.Top, body, scrollbar))
}
