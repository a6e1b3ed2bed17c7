// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package task

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/bureau-foundation/tasktracker/cmd/tasktracker/cli"
	"github.com/bureau-foundation/tasktracker/lib/lifecycle"
	"github.com/bureau-foundation/tasktracker/lib/schema"
	"github.com/bureau-foundation/tasktracker/lib/tui"
)

type showParams struct {
	cli.DataFlags
	cli.JSONOutput
}

type showResult struct {
	schema.TaskView
	History []historyEntry `json:"history"`
}

func showCommand() *cli.Command {
	var params showParams

	return &cli.Command{
		Name:    "show",
		Summary: "Show one task and its history",
		Description: `Display a single task: its name, status, assignee, and every audit
log entry recorded for it.`,
		Usage: "tasktracker task show <code> [flags]",
		Examples: []cli.Example{
			{
				Description: "Show task 3",
				Command:     "tasktracker task show 3",
			},
		},
		Params: func() any { return &params },
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			code, err := parseCode(args, "tasktracker task show <code>")
			if err != nil {
				return err
			}
			env, user, err := openAs(&params.DataFlags, logger)
			if err != nil {
				return err
			}

			task, err := env.Service.FindTask(code)
			if err != nil {
				return cli.Classify(err)
			}
			history, err := loadHistory(env, code)
			if err != nil {
				return err
			}
			result := showResult{TaskView: lifecycle.View(task, user), History: history}

			if done, err := params.EmitJSON(result); done {
				return err
			}

			styles, err := env.Styles(os.Stdout)
			if err != nil {
				return err
			}
			return writeShowDetail(styles, result)
		},
	}
}

func writeShowDetail(styles tui.Styles, result showResult) error {
	writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(writer, "Code:\t%d\n", result.Task.Code)
	fmt.Fprintf(writer, "Name:\t%s\n", result.Task.Name)
	fmt.Fprintf(writer, "Status:\t%s\n", styles.Status(result.Task.Status))
	fmt.Fprintf(writer, "Assignee:\t%s\n", styles.Assignment(result.TaskView))
	if err := writer.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(os.Stdout)
	if len(result.History) == 0 {
		fmt.Fprintln(os.Stdout, styles.Faint.Render("No history recorded."))
		return nil
	}
	fmt.Fprintln(os.Stdout, styles.Header.Render("History"))
	return writeHistory(styles, result.History)
}
