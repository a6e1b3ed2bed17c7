// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package task

import (
	"context"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bureau-foundation/tasktracker/cmd/tasktracker/cli"
	"github.com/bureau-foundation/tasktracker/lib/taskui"
)

type viewParams struct {
	cli.DataFlags
}

func viewCommand() *cli.Command {
	var params viewParams

	return &cli.Command{
		Name:    "view",
		Summary: "Browse tasks interactively",
		Description: `Open a full-screen task browser. The list shows every task; the
pane below it shows the selected task's details and audit history.

Keys: j/k or arrows move, / filters by fuzzy match, m toggles your
tasks only, a advances the selected task (after confirmation), tab
switches focus to the detail pane, r reloads, q quits.`,
		Usage:  "tasktracker task view [flags]",
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0])
			}
			env, user, err := openAs(&params.DataFlags, logger)
			if err != nil {
				return err
			}
			styles, err := env.Styles(os.Stdout)
			if err != nil {
				return err
			}

			model := taskui.NewModel(env.Service, user, styles)
			program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
			if _, err := program.Run(); err != nil {
				return cli.Internal("task viewer: %w", err)
			}
			return nil
		},
	}
}
