// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package task

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bureau-foundation/tasktracker/cmd/tasktracker/cli"
	"github.com/bureau-foundation/tasktracker/lib/schema"
)

type advanceParams struct {
	cli.DataFlags
	cli.JSONOutput
	Status string `json:"status" flag:"status,s" desc:"status to move to (default: the next one)"`
}

func advanceCommand() *cli.Command {
	var params advanceParams

	return &cli.Command{
		Name:    "advance",
		Summary: "Move a task to its next status",
		Description: `Move a task one step forward: unstarted to in progress, or in
progress to done. With --status, the requested status must be exactly
the next one; anything else is refused and nothing is written.

The change is recorded in the audit log.`,
		Usage: "tasktracker task advance <code> [flags]",
		Examples: []cli.Example{
			{
				Description: "Start task 3",
				Command:     "tasktracker task advance 3",
			},
			{
				Description: "Finish task 3, failing unless it is in progress",
				Command:     "tasktracker task advance 3 --status done",
			},
		},
		Params: func() any { return &params },
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			code, err := parseCode(args, "tasktracker task advance <code> [--status S]")
			if err != nil {
				return err
			}
			var requested schema.Status
			if params.Status != "" {
				requested, err = schema.ParseStatus(params.Status)
				if err != nil {
					return cli.Validation("--status: %w", err)
				}
			}

			env, user, err := openAs(&params.DataFlags, logger)
			if err != nil {
				return err
			}

			var task schema.Task
			if params.Status == "" {
				task, err = env.Service.Advance(code, user)
			} else {
				task, err = env.Service.Transition(code, requested, user)
			}
			if err != nil {
				return cli.Classify(err)
			}
			logger.Info("task advanced", "code", task.Code, "status", task.Status.String())

			if done, err := params.EmitJSON(task); done {
				return err
			}
			fmt.Printf("Task %d (%s) is now %s.\n", task.Code, task.Name, task.Status.Label())
			return nil
		},
	}
}
