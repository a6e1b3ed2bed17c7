// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package export

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/bureau-foundation/tasktracker/cmd/tasktracker/cli"
	"github.com/bureau-foundation/tasktracker/lib/sealed"
	"github.com/bureau-foundation/tasktracker/lib/secret"
)

type keygenParams struct {
	Output string `json:"output" flag:"output,o" desc:"identity file to create (mode 0600; refuses to overwrite)"`
}

func keygenCommand() *cli.Command {
	var params keygenParams

	return &cli.Command{
		Name:    "keygen",
		Summary: "Create an age identity for sealed snapshots",
		Description: `Generate an age x25519 keypair. The identity (private key) is written
to --output, or to stdout when no file is given. The public key is
what "export --recipient" takes; it is printed to stdout when the
identity goes to a file and to stderr otherwise.`,
		Usage: "tasktracker export keygen [--output FILE]",
		Examples: []cli.Example{
			{
				Description: "Create an identity file",
				Command:     "tasktracker export keygen --output key.txt",
			},
		},
		Params: func() any { return &params },
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0])
			}

			keypair, err := sealed.GenerateKeypair()
			if err != nil {
				return cli.Internal("%w", err)
			}
			defer keypair.Close()

			content := identityFile(keypair, time.Now())
			defer secret.Zero(content)

			if params.Output == "" {
				if _, err := os.Stdout.Write(content); err != nil {
					return cli.Internal("writing identity: %w", err)
				}
				fmt.Fprintf(os.Stderr, "Public key: %s\n", keypair.PublicKey)
				return nil
			}

			if err := writeExclusive(params.Output, content); err != nil {
				if errors.Is(err, fs.ErrExist) {
					return cli.Conflict("%s already exists", params.Output).
						WithHint("Choose another --output path or remove the old identity first.")
				}
				return cli.Internal("writing identity: %w", err)
			}
			logger.Info("identity created", "path", params.Output)
			fmt.Println(keypair.PublicKey)
			return nil
		},
	}
}

// identityFile formats keypair the way age-keygen does: comment lines
// naming the creation time and public key, then the secret key.
func identityFile(keypair *sealed.Keypair, now time.Time) []byte {
	header := fmt.Sprintf("# created: %s\n# public key: %s\n", now.Format(time.RFC3339), keypair.PublicKey)
	content := make([]byte, 0, len(header)+keypair.PrivateKey.Len()+1)
	content = append(content, header...)
	content = append(content, keypair.PrivateKey.Bytes()...)
	return append(content, '\n')
}

func writeExclusive(path string, content []byte) error {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		return err
	}
	if _, err := file.Write(content); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
