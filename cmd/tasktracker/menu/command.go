// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package menu

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/term"

	"github.com/bureau-foundation/tasktracker/cmd/tasktracker/cli"
	"github.com/bureau-foundation/tasktracker/lib/schema"
	"github.com/bureau-foundation/tasktracker/lib/secret"
)

type menuParams struct {
	cli.DataFlags
	Login bool `json:"-" flag:"login" desc:"log in again even when a session is saved"`
}

// Command returns the "menu" command.
func Command() *cli.Command {
	var params menuParams

	return &cli.Command{
		Name:    "menu",
		Summary: "Run the interactive prompt menu",
		Description: `Work with tasks through numbered prompts: list tasks and change a
task's status, create a task, or log out.

When a login session is saved it is used directly; otherwise the menu
asks for an email and password first and saves the session on
success. Choosing "log out" removes the session.`,
		Usage:  "tasktracker menu [flags]",
		Params: func() any { return &params },
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0])
			}
			env, err := params.Open(logger)
			if err != nil {
				return err
			}
			styles, err := env.Styles(os.Stdout)
			if err != nil {
				return err
			}

			var user *schema.User
			if !params.Login {
				if current, err := env.CurrentUser(); err == nil {
					user = &current
				} else {
					logger.Debug("no usable session, prompting for login", "error", err)
				}
			}

			config := Config{
				Service:       env.Service,
				Input:         os.Stdin,
				Output:        os.Stdout,
				Styles:        styles,
				Logger:        logger,
				MaxNameLength: env.Config.Tasks.MaxNameLength,
				OnLogin: func(user schema.User) error {
					return cli.SaveSessionTo(cli.NewSession(user, env.Clock.Now()), env.SessionPath())
				},
				OnLogout: func() error {
					_, err := cli.RemoveSessionFile(env.SessionPath())
					return err
				},
			}
			if term.IsTerminal(int(os.Stdin.Fd())) {
				config.ReadPassword = readTerminalPassword
			}

			err = New(config).Run(user)
			if errors.Is(err, ErrInputClosed) {
				return nil
			}
			return err
		},
	}
}

func readTerminalPassword() (*secret.Buffer, error) {
	passwordBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stdout)
	if err != nil {
		return nil, cli.Internal("reading password: %w", err)
	}
	if len(passwordBytes) == 0 {
		return nil, nil
	}
	return secret.NewFromBytes(passwordBytes)
}
