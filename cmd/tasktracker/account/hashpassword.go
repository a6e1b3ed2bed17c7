// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package account

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bureau-foundation/tasktracker/cmd/tasktracker/cli"
	"github.com/bureau-foundation/tasktracker/lib/credential"
)

type hashPasswordParams struct {
	PasswordFile string `json:"-" flag:"password-file" desc:"file containing the password, or - to read one line from stdin (default: prompt)"`
}

// HashPasswordCommand returns the "hash-password" command.
func HashPasswordCommand() *cli.Command {
	var params hashPasswordParams

	return &cli.Command{
		Name:    "hash-password",
		Summary: "Print a bcrypt hash for the users file",
		Description: `Hash a password with bcrypt and print the result. The hash can replace
a plain password in the fourth column of the users file; login
accepts either form.`,
		Usage: "tasktracker hash-password [flags]",
		Examples: []cli.Example{
			{
				Description: "Hash a password typed at the prompt",
				Command:     "tasktracker hash-password",
			},
		},
		Params: func() any { return &params },
		Run: func(_ context.Context, args []string, _ *slog.Logger) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0])
			}
			password, err := cli.ReadPassword(params.PasswordFile, "Password to hash: ")
			if err != nil {
				return err
			}
			defer password.Close()

			hash, err := credential.Hash(password.String())
			if err != nil {
				return cli.Validation("%w", err)
			}
			fmt.Println(hash)
			return nil
		},
	}
}
