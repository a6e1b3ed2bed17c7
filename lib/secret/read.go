// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package secret

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
)

// ReadFromPath reads a secret from the file at path, or the first line
// of stdin when path is "-". Surrounding whitespace (including the
// trailing newline most editors add) is trimmed.
func ReadFromPath(path string) (*Buffer, error) {
	if path == "-" {
		return ReadLine(os.Stdin)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return fromTrimmed(data)
}

// ReadLine reads one line from reader and returns it as a secret.
func ReadLine(reader io.Reader) (*Buffer, error) {
	scanner := bufio.NewScanner(reader)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("reading secret: %w", err)
		}
		return nil, errors.New("no input")
	}
	return fromTrimmed(scanner.Bytes())
}

func fromTrimmed(data []byte) (*Buffer, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		Zero(data)
		return nil, errors.New("secret is empty")
	}
	buffer, err := NewFromBytes(trimmed)
	Zero(data)
	return buffer, err
}
