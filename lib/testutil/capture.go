// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"bytes"
	"io"
	"os"
	"testing"
)

// CaptureStdout runs function with os.Stdout redirected to a pipe and
// returns everything written, along with function's error. Not safe
// for parallel tests.
func CaptureStdout(t *testing.T, function func() error) (string, error) {
	t.Helper()

	original := os.Stdout
	reader, writer, err := os.Pipe()
	if err != nil {
		t.Fatalf("creating pipe: %v", err)
	}
	os.Stdout = writer

	done := make(chan []byte)
	go func() {
		var buffer bytes.Buffer
		_, _ = io.Copy(&buffer, reader)
		done <- buffer.Bytes()
	}()

	runErr := function()

	os.Stdout = original
	writer.Close()
	output := <-done
	reader.Close()
	return string(output), runErr
}

// WithStdin runs function with os.Stdin replaced by a pipe carrying
// input.
func WithStdin(t *testing.T, input string, function func() error) error {
	t.Helper()

	original := os.Stdin
	reader, writer, err := os.Pipe()
	if err != nil {
		t.Fatalf("creating pipe: %v", err)
	}
	go func() {
		_, _ = io.WriteString(writer, input)
		writer.Close()
	}()

	os.Stdin = reader
	defer func() {
		os.Stdin = original
		reader.Close()
	}()
	return function()
}
