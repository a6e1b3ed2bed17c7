// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package menu implements "tasktracker menu", a line-oriented prompt
// loop for terminals without full-screen support.
//
// A [Menu] reads answers one line at a time from its input and writes
// prompts to its output, so the whole conversation can be driven from
// a test. Input mistakes (a non-numeric code, an over-long name, a
// status other than 1 or 2) and domain refusals re-prompt; storage
// failures abandon the current action and return to the main menu.
package menu
