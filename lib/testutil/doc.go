// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for tasktracker
// packages.
//
// [DataDir] creates a temporary data directory seeded with a users
// file and, optionally, tasks and log files, in the same delimited
// format the stores read. [ReadFile] returns a file's content for
// comparison against expected rows.
//
// [CaptureStdout] runs a function with os.Stdout redirected to a pipe
// and returns what it printed. Commands write to os.Stdout directly,
// so command tests use it instead of injecting a writer.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
//
// This package imports nothing else from the module.
package testutil
