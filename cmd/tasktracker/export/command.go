// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package export

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/bureau-foundation/tasktracker/cmd/tasktracker/cli"
	"github.com/bureau-foundation/tasktracker/lib/snapshot"
)

type exportParams struct {
	cli.DataFlags
	cli.JSONOutput
	Output      string   `json:"output"      flag:"output,o"    desc:"snapshot file to write (required)"`
	Format      string   `json:"format"      flag:"format,f"    desc:"payload encoding: json or cbor" default:"json"`
	Compression string   `json:"compression" flag:"compression" desc:"payload compression: none, zstd, or lz4" default:"none"`
	Recipients  []string `json:"recipients"  flag:"recipient,r" desc:"age public key to seal the snapshot for (repeatable)"`
	Armor       bool     `json:"armor"       flag:"armor"       desc:"write a sealed snapshot as ASCII armor"`
}

type exportResult struct {
	Path   string          `json:"path"`
	Info   snapshot.Info   `json:"info"`
	Counts snapshot.Counts `json:"counts"`
}

// Command returns the "export" command and its subcommands.
func Command() *cli.Command {
	var params exportParams

	return &cli.Command{
		Name:    "export",
		Summary: "Write a snapshot of the tracker",
		Description: `Write every user (without passwords), task, and audit log entry to a
single snapshot file. The tracker files are only read.

The snapshot starts with a one-line header naming the payload format,
compression, size, and BLAKE3 digest, so "export inspect" can verify
it. With --recipient the whole file is sealed with age for the given
public keys; see "export keygen".`,
		Usage: "tasktracker export --output FILE [flags]",
		Examples: []cli.Example{
			{
				Description: "Plain JSON snapshot",
				Command:     "tasktracker export --output tracker.snapshot",
			},
			{
				Description: "Compact binary snapshot",
				Command:     "tasktracker export --output tracker.snapshot --format cbor --compression zstd",
			},
			{
				Description: "Sealed for one recipient",
				Command:     "tasktracker export --output tracker.age --recipient age1...",
			},
		},
		Params: func() any { return &params },
		Subcommands: []*cli.Command{
			inspectCommand(),
			keygenCommand(),
		},
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0])
			}
			if params.Output == "" {
				return cli.Validation("--output is required\n\nUsage: tasktracker export --output FILE")
			}
			format, err := snapshot.ParseFormat(params.Format)
			if err != nil {
				return cli.Validation("--format: %w", err)
			}
			compression, err := snapshot.ParseCompression(params.Compression)
			if err != nil {
				return cli.Validation("--compression: %w", err)
			}
			if params.Armor && len(params.Recipients) == 0 {
				return cli.Validation("--armor requires at least one --recipient")
			}

			env, err := params.Open(logger)
			if err != nil {
				return err
			}
			if _, err := env.CurrentUser(); err != nil {
				return err
			}

			users, err := env.Users.All()
			if err != nil {
				return cli.Classify(err)
			}
			tasks, err := env.Tasks.FindAll()
			if err != nil {
				return cli.Classify(err)
			}
			entries, err := env.Log.All()
			if err != nil {
				return cli.Classify(err)
			}
			built := snapshot.Build(users, tasks, entries, env.Clock.Now())

			data, info, err := snapshot.Encode(built, snapshot.Options{
				Format:      format,
				Compression: compression,
				Recipients:  params.Recipients,
				Armor:       params.Armor,
			})
			if err != nil {
				if len(params.Recipients) > 0 {
					return cli.Validation("%w", err)
				}
				return cli.Internal("%w", err)
			}
			if err := os.WriteFile(params.Output, data, 0600); err != nil {
				return cli.Internal("writing snapshot: %w", err)
			}

			counts := built.Counts()
			logger.Info("snapshot exported",
				"path", params.Output,
				"format", info.Format,
				"compression", info.Compression,
				"size", info.Size,
				"encrypted", info.Encrypted,
			)

			if done, err := params.EmitJSON(exportResult{Path: params.Output, Info: info, Counts: counts}); done {
				return err
			}
			fmt.Printf("Exported %d users, %d tasks, and %d log entries to %s (%s, %s).\n",
				counts.Users, counts.Tasks, counts.LogEntries, params.Output, info.Format, info.Compression)
			return nil
		},
	}
}
