// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the complete tasktracker command tree.
package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bureau-foundation/tasktracker/cmd/tasktracker/account"
	"github.com/bureau-foundation/tasktracker/cmd/tasktracker/cli"
	exportcmd "github.com/bureau-foundation/tasktracker/cmd/tasktracker/export"
	menucmd "github.com/bureau-foundation/tasktracker/cmd/tasktracker/menu"
	taskcmd "github.com/bureau-foundation/tasktracker/cmd/tasktracker/task"
	"github.com/bureau-foundation/tasktracker/lib/version"
)

type versionParams struct {
	cli.JSONOutput
	Short bool `json:"short" flag:"short" desc:"print only the version number"`
}

// Root builds and returns the complete tasktracker command tree.
func Root() *cli.Command {
	return &cli.Command{
		Name: "tasktracker",
		Description: `tasktracker: a small task tracker kept in CSV files.

Users sign in with an email and password from users.csv. Tasks move
from unstarted to in progress to done, one step at a time, and every
change is appended to the audit log.`,
		Subcommands: []*cli.Command{
			account.LoginCommand(),
			account.LogoutCommand(),
			account.WhoAmICommand(),
			account.HashPasswordCommand(),
			taskcmd.Command(),
			menucmd.Command(),
			exportcmd.Command(),
			versionCommand(),
		},
		Examples: []cli.Example{
			{
				Description: "Sign in (prompts for the password)",
				Command:     "tasktracker login --email ann@example.com",
			},
			{
				Description: "List your tasks",
				Command:     "tasktracker task list --mine",
			},
			{
				Description: "Move task 3 to its next status",
				Command:     "tasktracker task advance 3",
			},
			{
				Description: "Use the numbered prompt menu",
				Command:     "tasktracker menu",
			},
		},
	}
}

func versionCommand() *cli.Command {
	var params versionParams

	return &cli.Command{
		Name:    "version",
		Summary: "Print version information",
		Params:  func() any { return &params },
		Run: func(_ context.Context, args []string, _ *slog.Logger) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0])
			}
			if done, err := params.EmitJSON(version.Describe()); done {
				return err
			}
			if params.Short {
				fmt.Println(version.Short())
				return nil
			}
			fmt.Printf("tasktracker %s\n", version.Full())
			return nil
		},
	}
}
