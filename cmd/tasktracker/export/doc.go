// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package export implements "tasktracker export": a read-only
// snapshot of the users (without passwords), tasks, and audit log in
// one file, plus "export inspect" to verify and summarize a snapshot
// and "export keygen" to create an age identity for sealed exports.
//
// The file layout is defined by lib/snapshot.
package export
