// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package account

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bureau-foundation/tasktracker/cmd/tasktracker/cli"
	"github.com/bureau-foundation/tasktracker/lib/schema"
)

type whoamiParams struct {
	cli.DataFlags
	cli.JSONOutput
}

type whoamiResult struct {
	schema.User
	LoggedInAt string `json:"logged_in_at"`
	Session    string `json:"session"`
}

// WhoAmICommand returns the "whoami" command.
func WhoAmICommand() *cli.Command {
	var params whoamiParams

	return &cli.Command{
		Name:        "whoami",
		Summary:     "Show the logged-in user",
		Description: "Print the user of the saved login session, after checking it against the users file.",
		Usage:       "tasktracker whoami [flags]",
		Params:      func() any { return &params },
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0])
			}
			env, err := params.Open(logger)
			if err != nil {
				return err
			}
			user, err := env.CurrentUser()
			if err != nil {
				return err
			}
			session, err := cli.LoadSessionFrom(env.SessionPath())
			if err != nil {
				return cli.Internal("%w", err)
			}

			result := whoamiResult{User: user, LoggedInAt: session.LoggedInAt, Session: env.SessionPath()}
			if done, err := params.EmitJSON(result); done {
				return err
			}
			fmt.Printf("%s <%s> (user %d)\n", user.Name, user.Email, user.Code)
			return nil
		},
	}
}
