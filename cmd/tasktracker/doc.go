// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Tasktracker is a command-line task tracker backed by plain CSV
// files. It provides subcommands for signing in (login, logout,
// whoami), working with tasks (task list, create, advance, show,
// history, report, view), the numbered prompt loop (menu), and
// read-only snapshots of the tracker (export).
package main
