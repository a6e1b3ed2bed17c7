// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/bureau-foundation/tasktracker/lib/secret"
)

// ReadPassword reads a password from passwordFile, from the first line
// of stdin when passwordFile is "-", or from an echo-free terminal
// prompt when passwordFile is empty.
func ReadPassword(passwordFile, prompt string) (*secret.Buffer, error) {
	if passwordFile != "" {
		buffer, err := secret.ReadFromPath(passwordFile)
		if err != nil {
			return nil, Validation("reading password from %s: %w", passwordFile, err)
		}
		return buffer, nil
	}

	stdinFileDescriptor := int(os.Stdin.Fd())
	if !term.IsTerminal(stdinFileDescriptor) {
		return nil, Validation("no terminal available for the password prompt (use --password-file)")
	}

	fmt.Fprint(os.Stderr, prompt)
	passwordBytes, err := term.ReadPassword(stdinFileDescriptor)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return nil, Internal("reading password: %w", err)
	}

	buffer, err := secret.NewFromBytes(passwordBytes)
	if err != nil {
		secret.Zero(passwordBytes)
		return nil, Validation("%w", err)
	}
	return buffer, nil
}
