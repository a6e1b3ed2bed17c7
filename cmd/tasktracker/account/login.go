// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package account

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/bureau-foundation/tasktracker/cmd/tasktracker/cli"
)

type loginParams struct {
	cli.DataFlags
	Email        string `json:"-" flag:"email,e"       desc:"email address of the user to log in as"`
	PasswordFile string `json:"-" flag:"password-file" desc:"file containing the password, or - to read one line from stdin (default: prompt)"`
}

// LoginCommand returns the "login" command.
func LoginCommand() *cli.Command {
	var params loginParams

	return &cli.Command{
		Name:    "login",
		Summary: "Log in as a user from the users file",
		Description: `Check an email and password against the users file and save a login
session. Task commands act as the logged-in user.

The session file is written with mode 0600 to
$TASKTRACKER_SESSION_FILE, session_file from the configuration, or
~/.config/tasktracker/session.json. It records the user code and a
fingerprint of the user's row, never the password, and stops working
if that row changes.`,
		Usage: "tasktracker login --email ADDRESS [flags]",
		Examples: []cli.Example{
			{
				Description: "Log in interactively (prompts for the password)",
				Command:     "tasktracker login --email ann@example.com",
			},
			{
				Description: "Log in from a script",
				Command:     "printf '%s\\n' \"$PASSWORD\" | tasktracker login --email ann@example.com --password-file -",
			},
		},
		Params: func() any { return &params },
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0])
			}
			if params.Email == "" {
				return cli.Validation("--email is required\n\nUsage: tasktracker login --email ADDRESS")
			}

			env, err := params.Open(logger)
			if err != nil {
				return err
			}

			password, err := cli.ReadPassword(params.PasswordFile, "Password: ")
			if err != nil {
				return err
			}
			defer password.Close()

			user, err := env.Service.Authenticate(params.Email, password.String())
			if err != nil {
				logger.Warn("login rejected", "email", params.Email)
				return cli.Classify(err)
			}

			sessionPath := env.SessionPath()
			if err := cli.SaveSessionTo(cli.NewSession(user, env.Clock.Now()), sessionPath); err != nil {
				return cli.Internal("save session: %w", err)
			}
			logger.Info("logged in", "user", user.Code, "session", sessionPath)

			fmt.Fprintf(os.Stderr, "Logged in as %s <%s>\n", user.Name, user.Email)
			fmt.Fprintf(os.Stderr, "Session saved to %s\n", sessionPath)
			return nil
		},
	}
}
