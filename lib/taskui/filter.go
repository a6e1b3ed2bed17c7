// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package taskui

import (
	"slices"
	"strconv"

	"github.com/junegunn/fzf/src/util"

	"github.com/bureau-foundation/tasktracker/lib/schema"
	"github.com/bureau-foundation/tasktracker/lib/tui"
)

// row is one visible list entry: the task view plus the rune
// positions within the task name that the filter matched.
type row struct {
	view          schema.TaskView
	score         int
	namePositions []int
}

// Filter is the fuzzy filter input. The searchable text of a task is
// "<code> <name> <assignee>".
type Filter struct {
	Input  string
	Active bool

	slab *util.Slab
}

// HandleRune appends a typed character.
func (filter *Filter) HandleRune(character rune) {
	filter.Input += string(character)
}

// HandleBackspace removes the last character, reporting whether the
// input changed.
func (filter *Filter) HandleBackspace() bool {
	if filter.Input == "" {
		return false
	}
	runes := []rune(filter.Input)
	filter.Input = string(runes[:len(runes)-1])
	return true
}

// Clear resets the input and deactivates the filter.
func (filter *Filter) Clear() {
	filter.Input = ""
	filter.Active = false
}

// Apply returns the rows matching the filter. With no input every view
// is kept in file order; otherwise matches are ordered by descending
// score, ties keeping file order.
func (filter *Filter) Apply(views []schema.TaskView) []row {
	if filter.Input == "" {
		rows := make([]row, len(views))
		for index, view := range views {
			rows[index] = row{view: view}
		}
		return rows
	}
	if filter.slab == nil {
		filter.slab = util.MakeSlab(100*1024, 2048)
	}

	pattern := []rune(filter.Input)
	var rows []row
	for _, view := range views {
		prefix := strconv.Itoa(view.Task.Code) + " "
		text := prefix + view.Task.Name + " " + view.AssigneeName
		result := tui.FuzzyMatch(text, pattern, filter.slab)
		if !result.Matched() {
			continue
		}
		rows = append(rows, row{
			view:          view,
			score:         result.Score,
			namePositions: namePositions(result.Positions, len([]rune(prefix)), len([]rune(view.Task.Name))),
		})
	}
	slices.SortStableFunc(rows, func(a, b row) int { return b.score - a.score })
	return rows
}

// namePositions keeps the positions that fall inside the name segment
// and rebases them to the start of the name.
func namePositions(positions []int, offset, length int) []int {
	var result []int
	for _, position := range positions {
		if position >= offset && position < offset+length {
			result = append(result, position-offset)
		}
	}
	return result
}
