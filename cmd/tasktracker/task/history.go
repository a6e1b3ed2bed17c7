// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package task

import (
	"context"
	"log/slog"
	"os"

	"github.com/bureau-foundation/tasktracker/cmd/tasktracker/cli"
	"github.com/bureau-foundation/tasktracker/lib/schema"
	"github.com/bureau-foundation/tasktracker/lib/tui"
)

type historyParams struct {
	cli.DataFlags
	cli.JSONOutput
}

// historyEntry is an audit log entry with its actor's name resolved.
// ActorName is empty when the actor no longer exists.
type historyEntry struct {
	TaskCode  int           `json:"task_code"`
	Status    schema.Status `json:"status"`
	ActorCode int           `json:"actor_code"`
	ActorName string        `json:"actor_name"`
	Date      string        `json:"date"`
}

func historyCommand() *cli.Command {
	var params historyParams

	return &cli.Command{
		Name:    "history",
		Summary: "Show the audit log of a task",
		Description: `List the audit log entries recorded for a task, oldest first. Each
entry is the status the task entered, who made the change, and the
date. The task itself need not still exist.`,
		Usage: "tasktracker task history <code> [flags]",
		Examples: []cli.Example{
			{
				Description: "Who moved task 3, and when",
				Command:     "tasktracker task history 3",
			},
		},
		Params: func() any { return &params },
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			code, err := parseCode(args, "tasktracker task history <code>")
			if err != nil {
				return err
			}
			env, _, err := openAs(&params.DataFlags, logger)
			if err != nil {
				return err
			}
			history, err := loadHistory(env, code)
			if err != nil {
				return err
			}

			if done, err := params.EmitJSON(history); done {
				return err
			}
			if len(history) == 0 {
				logger.Info("no history recorded", "task", code)
				return nil
			}
			styles, err := env.Styles(os.Stdout)
			if err != nil {
				return err
			}
			return writeHistory(styles, history)
		},
	}
}

func loadHistory(env *cli.Environment, code int) ([]historyEntry, error) {
	entries, err := env.Service.History(code)
	if err != nil {
		return nil, cli.Classify(err)
	}
	names, err := userNames(env)
	if err != nil {
		return nil, err
	}
	history := make([]historyEntry, len(entries))
	for index, entry := range entries {
		history[index] = historyEntry{
			TaskCode:  entry.TaskCode,
			Status:    entry.Status,
			ActorCode: entry.ActorCode,
			ActorName: names[entry.ActorCode],
			Date:      entry.DateString(),
		}
	}
	return history, nil
}

func writeHistory(styles tui.Styles, history []historyEntry) error {
	rows := make([][]string, len(history))
	for index, entry := range history {
		actor := entry.ActorName
		if actor == "" {
			actor = styles.Faint.Render(actorName(nil, entry.ActorCode))
		}
		rows[index] = []string{entry.Date, styles.Status(entry.Status), actor}
	}
	return writeTable(os.Stdout, styles.Header, []string{"DATE", "STATUS", "BY"}, rows)
}
