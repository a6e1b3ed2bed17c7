// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package task implements the "tasktracker task" subcommands: list,
// show, create, advance, history, report, and the interactive view.
//
// Every subcommand opens the tracker through [cli.DataFlags] and acts
// as the user of the saved login session. Mutations go through the
// lifecycle service, so each one is checked against the status
// machine and recorded in the audit log.
package task
