// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides the command-line framework for the tasktracker
// binary.
//
// The central type is [Command], a named command with optional nested
// [Command.Subcommands], a params struct whose tagged fields become
// pflag flags (see [BindFlags]), and a Run function that receives a
// context, the positional arguments, and a command-scoped logger.
// [Command.Execute] handles flag parsing, dispatch, structured help,
// and Levenshtein "did you mean" suggestions for typos.
//
// Commands that read or write tracker data embed [DataFlags] in their
// params and call [DataFlags.Open] to get an [Environment]: the loaded
// configuration, the three stores, and the lifecycle service wired
// together.
//
// Identity comes from the login [Session] saved by "tasktracker
// login". [Environment.CurrentUser] loads it and re-checks it against
// the users file, so removing a user or changing their password
// invalidates existing sessions.
//
// Errors returned from Run are categorized [ToolError] values;
// [Classify] maps the domain and storage errors of lib/lifecycle and
// lib/store onto categories.
package cli
