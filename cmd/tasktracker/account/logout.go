// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package account

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/bureau-foundation/tasktracker/cmd/tasktracker/cli"
	"github.com/bureau-foundation/tasktracker/lib/config"
)

type logoutParams struct {
	ConfigPath string `json:"-" flag:"config" desc:"configuration file (default: $TASKTRACKER_CONFIG, else built-in defaults)"`
}

// LogoutCommand returns the "logout" command.
func LogoutCommand() *cli.Command {
	var params logoutParams

	return &cli.Command{
		Name:        "logout",
		Summary:     "Remove the saved login session",
		Description: `Delete the session saved by "tasktracker login". Logging out when no session exists is not an error.`,
		Usage:       "tasktracker logout [flags]",
		Params:      func() any { return &params },
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0])
			}
			cfg, err := config.Load(params.ConfigPath)
			if err != nil {
				return cli.Validation("%w", err)
			}

			sessionPath := cli.SessionFilePath(cfg)
			removed, err := cli.RemoveSessionFile(sessionPath)
			if err != nil {
				return cli.Internal("%w", err)
			}
			if !removed {
				logger.Info("no session to remove", "session", sessionPath)
				return nil
			}
			fmt.Fprintln(os.Stderr, "Logged out.")
			return nil
		},
	}
}
