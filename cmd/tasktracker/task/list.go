// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package task

import (
	"context"
	"log/slog"
	"os"
	"slices"
	"strconv"

	"github.com/bureau-foundation/tasktracker/cmd/tasktracker/cli"
	"github.com/bureau-foundation/tasktracker/lib/schema"
	"github.com/bureau-foundation/tasktracker/lib/tui"
)

type listParams struct {
	cli.DataFlags
	cli.JSONOutput
	Mine   bool   `json:"mine"   flag:"mine,m"   desc:"only tasks assigned to you"`
	Status string `json:"status" flag:"status,s" desc:"only tasks in this status (unstarted, in_progress, done, or 0-2)"`
	Match  string `json:"match"  flag:"match"    desc:"fuzzy-match task names and assignees, best match first"`
}

// listedTask is one row of the listing. Positions locate the
// fuzzy-matched runes in the task name.
type listedTask struct {
	view      schema.TaskView
	score     int
	positions []int
}

func listCommand() *cli.Command {
	var params listParams

	return &cli.Command{
		Name:    "list",
		Summary: "List tasks",
		Description: `List every task with its status and who is assigned to it, in the
order the tasks file holds them.

Filters combine: --mine, --status, and --match must all accept a task
for it to be shown. With --match, rows are ordered by match quality.`,
		Usage: "tasktracker task list [flags]",
		Examples: []cli.Example{
			{
				Description: "Everything in the tracker",
				Command:     "tasktracker task list",
			},
			{
				Description: "Your unfinished work",
				Command:     "tasktracker task list --mine --status in_progress",
			},
			{
				Description: "Find a task by a fragment of its name",
				Command:     "tasktracker task list --match dcs",
			},
		},
		Params: func() any { return &params },
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0])
			}

			var statusFilter *schema.Status
			if params.Status != "" {
				status, err := schema.ParseStatus(params.Status)
				if err != nil {
					return cli.Validation("--status: %w", err)
				}
				statusFilter = &status
			}

			env, user, err := openAs(&params.DataFlags, logger)
			if err != nil {
				return err
			}
			views, err := env.Service.ListAll(user)
			if err != nil {
				return cli.Classify(err)
			}

			listed := filterTasks(views, params.Mine, statusFilter, params.Match)

			if params.OutputJSON {
				result := make([]schema.TaskView, len(listed))
				for index, entry := range listed {
					result[index] = entry.view
				}
				_, err := params.EmitJSON(result)
				return err
			}

			if len(listed) == 0 {
				logger.Info("no tasks found", "total", len(views))
				return nil
			}

			styles, err := env.Styles(os.Stdout)
			if err != nil {
				return err
			}
			rows := make([][]string, len(listed))
			for index, entry := range listed {
				task := entry.view.Task
				rows[index] = []string{
					strconv.Itoa(task.Code),
					tui.Highlight(task.Name, entry.positions, styles.Match),
					styles.Status(task.Status),
					styles.Assignment(entry.view),
				}
			}
			return writeTable(os.Stdout, styles.Header, []string{"CODE", "NAME", "STATUS", "ASSIGNEE"}, rows)
		},
	}
}

// filterTasks applies the list filters. Without a match pattern the
// file order is kept.
func filterTasks(views []schema.TaskView, mine bool, status *schema.Status, match string) []listedTask {
	pattern := []rune(match)
	var listed []listedTask
	for _, view := range views {
		if mine && !view.AssignedToViewer {
			continue
		}
		if status != nil && view.Task.Status != *status {
			continue
		}
		entry := listedTask{view: view}
		if len(pattern) > 0 {
			text := view.Task.Name + " " + view.AssigneeName
			result := tui.FuzzyMatch(text, pattern, nil)
			if !result.Matched() {
				continue
			}
			entry.score = result.Score
			nameLength := len([]rune(view.Task.Name))
			for _, position := range result.Positions {
				if position < nameLength {
					entry.positions = append(entry.positions, position)
				}
			}
		}
		listed = append(listed, entry)
	}
	if len(pattern) > 0 {
		slices.SortStableFunc(listed, func(a, b listedTask) int { return b.score - a.score })
	}
	return listed
}
