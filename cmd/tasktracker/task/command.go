// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package task

import "github.com/bureau-foundation/tasktracker/cmd/tasktracker/cli"

// Command returns the "task" subcommand group.
func Command() *cli.Command {
	return &cli.Command{
		Name:    "task",
		Summary: "List, create, and advance tasks",
		Description: `Work with tasks in the tracker's data directory.

Tasks move forward one step at a time: unstarted, in progress, done.
Every creation and status change is appended to the audit log with
the acting user and the date.

All task commands act as the user saved by "tasktracker login".`,
		Subcommands: []*cli.Command{
			listCommand(),
			showCommand(),
			createCommand(),
			advanceCommand(),
			historyCommand(),
			reportCommand(),
			viewCommand(),
		},
	}
}
