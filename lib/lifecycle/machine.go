// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package lifecycle

import "github.com/bureau-foundation/tasktracker/lib/schema"

// CanTransition reports whether a task may move from one status to
// another: both must be defined and to must be exactly one step ahead.
func CanTransition(from, to schema.Status) bool {
	return from.Valid() && to.Valid() && to-from == 1
}

// Next returns the status that follows current. The boolean is false
// when current is terminal or undefined.
func Next(current schema.Status) (schema.Status, bool) {
	next := current + 1
	if !CanTransition(current, next) {
		return current, false
	}
	return next, true
}

// IsTerminal reports whether no transition leaves status.
func IsTerminal(status schema.Status) bool {
	_, ok := Next(status)
	return !ok
}
