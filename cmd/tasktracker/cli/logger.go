// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"log/slog"
	"os"

	"golang.org/x/term"
)

// logLevel is shared by every command logger so that loading the
// configuration (see [DataFlags.Open]) can raise or lower verbosity
// after the logger was created.
var logLevel slog.LevelVar

// SetLogLevel changes the level of all command loggers.
func SetLogLevel(level slog.Level) {
	logLevel.Set(level)
}

// NewCommandLogger creates the structured logger handed to a command's
// Run. When stderr is a terminal it uses slog.TextHandler for human
// reading; otherwise slog.JSONHandler, so scripted runs produce
// machine-parseable logs.
func NewCommandLogger() *slog.Logger {
	var handler slog.Handler
	options := &slog.HandlerOptions{Level: &logLevel}
	if term.IsTerminal(int(os.Stderr.Fd())) {
		handler = slog.NewTextHandler(os.Stderr, options)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, options)
	}
	return slog.New(handler)
}
