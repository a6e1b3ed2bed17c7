// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package task

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/bureau-foundation/tasktracker/cmd/tasktracker/cli"
)

type createParams struct {
	cli.DataFlags
	cli.JSONOutput
	Code     int    `json:"code"     flag:"code"     desc:"task code (non-negative integer)" default:"-1"`
	Name     string `json:"name"     flag:"name"     desc:"task name"`
	Assignee int    `json:"assignee" flag:"assignee" desc:"code of the user to assign" default:"-1"`
}

func createCommand() *cli.Command {
	var params createParams

	return &cli.Command{
		Name:    "create",
		Summary: "Create an unstarted task",
		Description: `Create a task in the unstarted state, assigned to an existing user,
and record the creation in the audit log.

The name may not be longer than tasks.max_name_length characters
(default 10). Task codes are not checked for uniqueness.`,
		Usage: "tasktracker task create --code N --name NAME --assignee N [flags]",
		Examples: []cli.Example{
			{
				Description: "Create task 4 and assign it to user 2",
				Command:     "tasktracker task create --code 4 --name docs --assignee 2",
			},
		},
		Params: func() any { return &params },
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0])
			}
			if params.Code < 0 {
				return cli.Validation("--code is required and must be a non-negative integer")
			}
			if params.Assignee < 0 {
				return cli.Validation("--assignee is required and must be a non-negative integer")
			}

			env, user, err := openAs(&params.DataFlags, logger)
			if err != nil {
				return err
			}
			if err := ValidateName(params.Name, env.Config.Tasks.MaxNameLength); err != nil {
				return err
			}

			task, err := env.Service.Create(params.Code, params.Name, params.Assignee, user)
			if err != nil {
				return cli.Classify(err)
			}
			logger.Info("task created", "code", task.Code, "assignee", task.AssigneeCode)

			if done, err := params.EmitJSON(task); done {
				return err
			}
			fmt.Printf("Created task %d (%s).\n", task.Code, task.Name)
			return nil
		},
	}
}

// ValidateName checks a task name against the configured maximum
// length, counted in characters.
func ValidateName(name string, maxLength int) error {
	if strings.TrimSpace(name) == "" {
		return cli.Validation("task name is required")
	}
	if strings.ContainsAny(name, "\r\n") {
		return cli.Validation("task name must be a single line")
	}
	if length := utf8.RuneCountInString(name); length > maxLength {
		return cli.Validation("task name must be at most %d characters (got %d)", maxLength, length)
	}
	return nil
}
