// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package taskui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bureau-foundation/tasktracker/lib/lifecycle"
	"github.com/bureau-foundation/tasktracker/lib/schema"
	"github.com/bureau-foundation/tasktracker/lib/tui"
)

// Service is the subset of the lifecycle service the viewer uses.
type Service interface {
	ListAll(viewer schema.User) ([]schema.TaskView, error)
	History(code int) ([]schema.LogEntry, error)
	Advance(code int, actor schema.User) (schema.Task, error)
}

// FocusRegion identifies which part of the viewer receives keys.
type FocusRegion int

const (
	// FocusList means navigation keys move the list cursor.
	FocusList FocusRegion = iota
	// FocusDetail means navigation keys scroll the detail pane.
	FocusDetail
	// FocusFilter means keystrokes edit the filter input.
	FocusFilter
	// FocusConfirm means the advance confirmation box is open.
	FocusConfirm
)

// noticeDuration is how long a status-bar notice stays visible.
const noticeDuration = 3 * time.Second

type tasksLoadedMsg struct {
	views []schema.TaskView
	err   error
}

type historyLoadedMsg struct {
	code    int
	entries []schema.LogEntry
	err     error
}

type advanceResultMsg struct {
	task schema.Task
	err  error
}

// noticeFadeMsg clears the notice it was scheduled for. A newer notice
// bumps the generation so stale fades are ignored.
type noticeFadeMsg struct {
	generation int
}

// Model is the bubbletea model of the task viewer.
type Model struct {
	service Service
	viewer  schema.User
	styles  tui.Styles
	keys    KeyMap

	views    []schema.TaskView
	rows     []row
	mineOnly bool
	filter   Filter
	loadErr  error

	cursor       int
	scrollOffset int
	// selectedCode keeps the selection stable across reloads and
	// filter changes.
	selectedCode int
	hasSelection bool

	focus      FocusRegion
	priorFocus FocusRegion
	detail     DetailPane

	// pendingAdvance is the task the confirmation box refers to.
	pendingAdvance schema.Task

	notice           string
	noticeIsError    bool
	noticeGeneration int

	width  int
	height int
	ready  bool
}

// NewModel creates a viewer for viewer backed by service.
func NewModel(service Service, viewer schema.User, styles tui.Styles) Model {
	return Model{
		service: service,
		viewer:  viewer,
		styles:  styles,
		keys:    DefaultKeyMap,
		detail:  NewDetailPane(styles),
	}
}

// Init implements tea.Model by loading the task list.
func (model Model) Init() tea.Cmd {
	return model.loadTasks()
}

func (model Model) loadTasks() tea.Cmd {
	service, viewer := model.service, model.viewer
	return func() tea.Msg {
		views, err := service.ListAll(viewer)
		return tasksLoadedMsg{views: views, err: err}
	}
}

func (model Model) loadHistory(code int) tea.Cmd {
	service := model.service
	return func() tea.Msg {
		entries, err := service.History(code)
		if entries == nil && err == nil {
			entries = []schema.LogEntry{}
		}
		return historyLoadedMsg{code: code, entries: entries, err: err}
	}
}

func (model Model) advance(task schema.Task) tea.Cmd {
	service, viewer := model.service, model.viewer
	return func() tea.Msg {
		updated, err := service.Advance(task.Code, viewer)
		return advanceResultMsg{task: updated, err: err}
	}
}

// Update implements tea.Model.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.KeyMsg:
		switch model.focus {
		case FocusFilter:
			return model.handleFilterKeys(message)
		case FocusConfirm:
			return model.handleConfirmKeys(message)
		}
		return model.handleKeys(message)

	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		model.ready = true
		model.updatePaneSizes()

	case tasksLoadedMsg:
		model.loadErr = message.err
		if message.err != nil {
			return model, nil
		}
		model.views = message.views
		cmd := model.rebuildRows()
		return model, cmd

	case historyLoadedMsg:
		if view, ok := model.selected(); ok && view.Task.Code == message.code {
			model.detail.SetTask(view, message.entries, message.err)
		}

	case advanceResultMsg:
		if message.err != nil {
			cmd := model.setNotice(message.err.Error(), true)
			return model, cmd
		}
		text := fmt.Sprintf("task %d is now %s", message.task.Code, message.task.Status.Label())
		cmd := model.setNotice(text, false)
		return model, tea.Batch(cmd, model.loadTasks())

	case noticeFadeMsg:
		if message.generation == model.noticeGeneration {
			model.notice = ""
		}
	}
	return model, nil
}

func (model Model) handleKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Quit):
		return model, tea.Quit

	case key.Matches(message, model.keys.FocusToggle):
		if model.focus == FocusList {
			model.focus = FocusDetail
		} else {
			model.focus = FocusList
		}

	case key.Matches(message, model.keys.FilterActivate):
		model.priorFocus = model.focus
		model.focus = FocusFilter
		model.filter.Active = true

	case key.Matches(message, model.keys.FilterClear):
		if model.filter.Input != "" {
			model.filter.Clear()
			cmd := model.rebuildRows()
			return model, cmd
		}

	case key.Matches(message, model.keys.MineOnly):
		model.mineOnly = !model.mineOnly
		cmd := model.rebuildRows()
		return model, cmd

	case key.Matches(message, model.keys.Refresh):
		return model, model.loadTasks()

	case key.Matches(message, model.keys.Advance):
		view, ok := model.selected()
		if !ok {
			return model, nil
		}
		if lifecycle.IsTerminal(view.Task.Status) {
			cmd := model.setNotice(fmt.Sprintf("task %d is already done", view.Task.Code), true)
			return model, cmd
		}
		model.pendingAdvance = view.Task
		model.priorFocus = model.focus
		model.focus = FocusConfirm

	default:
		if model.focus == FocusDetail {
			model.handleDetailKeys(message)
			return model, nil
		}
		cmd := model.handleListKeys(message)
		return model, cmd
	}
	return model, nil
}

func (model *Model) handleListKeys(message tea.KeyMsg) tea.Cmd {
	previous := model.cursor
	switch {
	case key.Matches(message, model.keys.Up):
		model.cursor--
	case key.Matches(message, model.keys.Down):
		model.cursor++
	case key.Matches(message, model.keys.PageUp):
		model.cursor -= model.listHeight()
	case key.Matches(message, model.keys.PageDown):
		model.cursor += model.listHeight()
	case key.Matches(message, model.keys.Home):
		model.cursor = 0
	case key.Matches(message, model.keys.End):
		model.cursor = len(model.rows) - 1
	}
	model.cursor = max(0, min(model.cursor, len(model.rows)-1))
	if model.cursor == previous || len(model.rows) == 0 {
		return nil
	}
	return model.selectCursor()
}

func (model *Model) handleDetailKeys(message tea.KeyMsg) {
	switch {
	case key.Matches(message, model.keys.Up):
		model.detail.ScrollBy(-1)
	case key.Matches(message, model.keys.Down):
		model.detail.ScrollBy(1)
	case key.Matches(message, model.keys.PageUp):
		model.detail.HalfPageUp()
	case key.Matches(message, model.keys.PageDown):
		model.detail.HalfPageDown()
	case key.Matches(message, model.keys.Home):
		model.detail.Top()
	case key.Matches(message, model.keys.End):
		model.detail.Bottom()
	}
}

func (model Model) handleFilterKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case message.Type == tea.KeyCtrlC:
		return model, tea.Quit

	case key.Matches(message, model.keys.FilterClear):
		if model.filter.Input != "" {
			model.filter.Input = ""
			cmd := model.rebuildRows()
			return model, cmd
		}
		model.filter.Active = false
		model.focus = model.priorFocus

	case message.Type == tea.KeyEnter:
		model.filter.Active = false
		model.focus = FocusList

	case message.Type == tea.KeyBackspace:
		if model.filter.HandleBackspace() {
			cmd := model.rebuildRows()
			return model, cmd
		}

	case message.Type == tea.KeyRunes || message.Type == tea.KeySpace:
		for _, r := range message.Runes {
			model.filter.HandleRune(r)
		}
		cmd := model.rebuildRows()
		return model, cmd
	}
	return model, nil
}

func (model Model) handleConfirmKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case message.Type == tea.KeyCtrlC:
		return model, tea.Quit
	case key.Matches(message, model.keys.Confirm):
		model.focus = model.priorFocus
		return model, model.advance(model.pendingAdvance)
	case key.Matches(message, model.keys.Cancel):
		model.focus = model.priorFocus
	}
	return model, nil
}

// rebuildRows reapplies the mine-only toggle and the filter, keeps the
// selected task selected when it is still visible, and loads history
// for whatever ends up selected.
func (model *Model) rebuildRows() tea.Cmd {
	visible := model.views
	if model.mineOnly {
		visible = nil
		for _, view := range model.views {
			if view.AssignedToViewer {
				visible = append(visible, view)
			}
		}
	}
	model.rows = model.filter.Apply(visible)

	model.cursor = 0
	if model.hasSelection {
		for index, row := range model.rows {
			if row.view.Task.Code == model.selectedCode {
				model.cursor = index
				break
			}
		}
	}
	if len(model.rows) == 0 {
		model.hasSelection = false
		model.detail.Clear()
		return nil
	}
	return model.selectCursor()
}

// selectCursor makes the row under the cursor the selection and
// refreshes the detail pane.
func (model *Model) selectCursor() tea.Cmd {
	view := model.rows[model.cursor].view
	model.selectedCode = view.Task.Code
	model.hasSelection = true
	model.ensureCursorVisible()
	model.detail.SetTask(view, nil, nil)
	return model.loadHistory(view.Task.Code)
}

func (model Model) selected() (schema.TaskView, bool) {
	if !model.hasSelection || model.cursor >= len(model.rows) {
		return schema.TaskView{}, false
	}
	return model.rows[model.cursor].view, true
}

func (model *Model) setNotice(text string, isError bool) tea.Cmd {
	model.noticeGeneration++
	model.notice = text
	model.noticeIsError = isError
	generation := model.noticeGeneration
	return tea.Tick(noticeDuration, func(time.Time) tea.Msg {
		return noticeFadeMsg{generation: generation}
	})
}

func (model Model) listWidth() int {
	return max(20, model.width/2)
}

// listHeight is the number of list rows that fit between the header
// line and the separator plus help bar.
func (model Model) listHeight() int {
	return max(1, model.height-3)
}

func (model *Model) updatePaneSizes() {
	model.detail.SetSize(max(1, model.width-model.listWidth()-1), model.listHeight())
	model.ensureCursorVisible()
}

func (model *Model) ensureCursorVisible() {
	height := model.listHeight()
	if model.cursor < model.scrollOffset {
		model.scrollOffset = model.cursor
	}
	if model.cursor >= model.scrollOffset+height {
		model.scrollOffset = model.cursor - height + 1
	}
	model.scrollOffset = max(0, model.scrollOffset)
}

// View implements tea.Model.
func (model Model) View() string {
	if !model.ready {
		return "Loading..."
	}
	if model.loadErr != nil {
		return model.styles.Error.Render("error: "+model.loadErr.Error()) + "\n" +
			model.styles.Help.Render("r reload  q quit")
	}

	var sections []string
	sections = append(sections, model.renderHeader())

	listView := model.renderListPane()
	divider := model.styles.Faint.Render(strings.TrimRight(strings.Repeat("│\n", model.listHeight()), "\n"))
	detailView := model.detail.View(model.focus == FocusDetail)
	sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top, listView, divider, detailView))

	sections = append(sections, model.styles.Faint.Render(strings.Repeat("─", model.width)))
	sections = append(sections, model.renderHelp())

	output := strings.Join(sections, "\n")

	if model.focus == FocusConfirm {
		task := model.pendingAdvance
		next, _ := lifecycle.Next(task.Status)
		box := tui.RenderBox(model.styles, "Advance task?", []string{
			fmt.Sprintf("#%d %s", task.Code, task.Name),
			fmt.Sprintf("%s → %s", task.Status.Label(), next.Label()),
			"",
			"y confirm   n cancel",
		}, 36)
		output = tui.CenterOverlay(output, box, model.width, model.height)
	}
	return output
}

func (model Model) renderHeader() string {
	if model.filter.Active || model.filter.Input != "" {
		prompt := " / " + model.filter.Input
		if model.filter.Active {
			prompt += "▎"
		}
		return model.styles.Normal.Render(tui.Truncate(prompt, model.width))
	}
	title := fmt.Sprintf(" Tasks for %s", model.viewer.Name)
	if model.mineOnly {
		title += " (mine only)"
	}
	counts := fmt.Sprintf("%d shown / %d total ", len(model.rows), len(model.views))
	gap := max(1, model.width-lipgloss.Width(title)-lipgloss.Width(counts))
	return model.styles.Header.Render(title) + strings.Repeat(" ", gap) + model.styles.Faint.Render(counts)
}

func (model Model) renderListPane() string {
	width := model.listWidth()
	height := model.listHeight()
	lines := make([]string, 0, height)

	if len(model.rows) == 0 {
		message := "no tasks"
		if model.filter.Input != "" || model.mineOnly {
			message = "no matching tasks"
		}
		lines = append(lines, model.styles.Faint.Render(" "+message))
	}

	end := min(len(model.rows), model.scrollOffset+height)
	for index := model.scrollOffset; index < end; index++ {
		lines = append(lines, model.renderRow(model.rows[index], index == model.cursor, width-1))
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	for index := range lines {
		lines[index] = tui.PadRight(lines[index], width-1)
	}

	scrollbar := tui.RenderScrollbar(model.styles.Theme, height, len(model.rows), height, model.scrollOffset)
	return lipgloss.JoinHorizontal(lipgloss.Top, strings.Join(lines, "\n"), scrollbar)
}

// renderRow lays out " 12  In progress  name  (you)".
func (model Model) renderRow(entry row, selected bool, width int) string {
	task := entry.view.Task
	marker := " "
	if selected && model.focus != FocusDetail {
		marker = "▸"
	}
	status := tui.PadRight(model.styles.Status(task.Status), 11)
	name := tui.Highlight(task.Name, entry.namePositions, model.styles.Match)
	line := fmt.Sprintf("%s%4d  %s  %s", marker, task.Code, status, name)
	if entry.view.AssignedToViewer {
		line += model.styles.Mine.Render("  (you)")
	}
	line = tui.Truncate(line, width)
	if selected {
		return model.styles.Selected.Render(tui.PadRight(line, width))
	}
	return line
}

func (model Model) renderHelp() string {
	focusIndicator := "LIST"
	switch model.focus {
	case FocusDetail:
		focusIndicator = "DETAIL"
	case FocusFilter:
		focusIndicator = "FILTER"
	case FocusConfirm:
		focusIndicator = "CONFIRM"
	}
	help := model.styles.Help.Render(fmt.Sprintf(" [%s] q quit  ↑↓ navigate  Tab focus  / filter  m mine  a advance  r reload",
		focusIndicator))
	if model.notice != "" {
		style := model.styles.Mine
		if model.noticeIsError {
			style = model.styles.Error
		}
		help += "  " + style.Render(model.notice)
	}
	return help
}
