// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package export

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/bureau-foundation/tasktracker/cmd/tasktracker/cli"
	"github.com/bureau-foundation/tasktracker/lib/codec"
	"github.com/bureau-foundation/tasktracker/lib/secret"
	"github.com/bureau-foundation/tasktracker/lib/snapshot"
	"github.com/bureau-foundation/tasktracker/lib/tui"
)

type inspectParams struct {
	cli.JSONOutput
	Identity string `json:"-"        flag:"identity,i" desc:"age identity file for sealed snapshots (- reads one line from stdin)"`
	Diagnose bool   `json:"diagnose" flag:"diagnose"   desc:"also print the payload (CBOR as diagnostic notation)"`
	Color    string `json:"-"        flag:"color"      desc:"auto, always, or never" default:"auto"`
}

type inspectResult struct {
	Path      string          `json:"path"`
	Info      snapshot.Info   `json:"info"`
	CreatedAt string          `json:"created_at"`
	Counts    snapshot.Counts `json:"counts"`
}

func inspectCommand() *cli.Command {
	var params inspectParams

	return &cli.Command{
		Name:    "inspect",
		Summary: "Verify and summarize a snapshot",
		Description: `Read a snapshot written by "tasktracker export", verify its digest,
and print its header and record counts. Sealed snapshots need the
matching age identity. A snapshot that fails verification is reported
on stdout and the command exits with status 2.

With --diagnose the payload itself is printed: JSON indented, CBOR in
RFC 8949 diagnostic notation.`,
		Usage: "tasktracker export inspect <file> [flags]",
		Examples: []cli.Example{
			{
				Description: "Check a snapshot",
				Command:     "tasktracker export inspect tracker.snapshot",
			},
			{
				Description: "Open a sealed snapshot and show its content",
				Command:     "tasktracker export inspect tracker.age --identity key.txt --diagnose",
			},
		},
		Params: func() any { return &params },
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 1 {
				return cli.Validation("expected 1 snapshot file argument, got %d\n\nUsage: tasktracker export inspect <file>", len(args))
			}
			path := args[0]

			data, err := os.ReadFile(path)
			if err != nil {
				return cli.NotFound("reading snapshot: %w", err)
			}

			var identity *secret.Buffer
			if params.Identity != "" {
				identity, err = secret.ReadFromPath(params.Identity)
				if err != nil {
					return cli.Validation("reading identity %s: %w", params.Identity, err)
				}
				defer identity.Close()
			}

			decoded, info, err := snapshot.Decode(data, identity)
			if errors.Is(err, snapshot.ErrCorrupt) {
				return reportCorrupt(&params, path, info, err)
			}
			if err != nil {
				return decodeError(err)
			}
			logger.Debug("snapshot verified", "path", path, "digest", info.Digest)

			result := inspectResult{Path: path, Info: info, CreatedAt: decoded.CreatedAt, Counts: decoded.Counts()}
			if done, err := params.EmitJSON(result); done {
				return err
			}
			writeInfo(result)

			if !params.Diagnose {
				return nil
			}
			payload, _, err := snapshot.DecodePayload(data, identity)
			if err != nil {
				return decodeError(err)
			}
			renderer, err := tui.NewRenderer(os.Stdout, params.Color)
			if err != nil {
				return cli.Validation("--color: %w", err)
			}
			text, language, err := describePayload(payload, info.Format)
			if err != nil {
				return cli.Internal("%w", err)
			}
			fmt.Println()
			fmt.Println(tui.NewStyles(renderer, tui.DefaultTheme).HighlightCode(text, language))
			return nil
		},
	}
}

type corruptResult struct {
	Path  string        `json:"path"`
	Info  snapshot.Info `json:"info"`
	Error string        `json:"error"`
}

// reportCorrupt prints the verification failure itself and exits 2,
// so scripts can tell a bad snapshot from a bad invocation.
func reportCorrupt(params *inspectParams, path string, info snapshot.Info, cause error) error {
	if done, err := params.EmitJSON(corruptResult{Path: path, Info: info, Error: cause.Error()}); done {
		if err != nil {
			return err
		}
		return &cli.ExitError{Code: 2}
	}
	fmt.Printf("%s: %v\n", path, cause)
	return &cli.ExitError{Code: 2}
}

func decodeError(err error) error {
	if errors.Is(err, snapshot.ErrEncrypted) {
		return cli.Validation("%w", err).WithHint("Pass the age identity with --identity FILE.")
	}
	return cli.Validation("opening snapshot: %w", err)
}

// describePayload renders payload as text for --diagnose, returning
// the chroma lexer to highlight it with.
func describePayload(payload []byte, format snapshot.Format) (string, string, error) {
	if format == snapshot.FormatCBOR {
		diagnostic, err := codec.Diagnose(payload)
		if err != nil {
			return "", "", fmt.Errorf("CBOR diagnostic notation: %w", err)
		}
		return diagnostic, "json", nil
	}
	var indented bytes.Buffer
	if err := json.Indent(&indented, payload, "", "  "); err != nil {
		return "", "", fmt.Errorf("indenting JSON payload: %w", err)
	}
	return indented.String(), "json", nil
}

func writeInfo(result inspectResult) {
	encrypted := "no"
	if result.Info.Encrypted {
		encrypted = "yes"
	}
	writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(writer, "File:\t%s\n", result.Path)
	fmt.Fprintf(writer, "Format:\t%s\n", result.Info.Format)
	fmt.Fprintf(writer, "Compression:\t%s\n", result.Info.Compression)
	fmt.Fprintf(writer, "Payload size:\t%d bytes\n", result.Info.Size)
	fmt.Fprintf(writer, "BLAKE3:\t%s\n", result.Info.Digest)
	fmt.Fprintf(writer, "Encrypted:\t%s\n", encrypted)
	fmt.Fprintf(writer, "Created:\t%s\n", result.CreatedAt)
	fmt.Fprintf(writer, "Users:\t%d\n", result.Counts.Users)
	fmt.Fprintf(writer, "Tasks:\t%d\n", result.Counts.Tasks)
	fmt.Fprintf(writer, "Log entries:\t%d\n", result.Counts.LogEntries)
	writer.Flush()
}
