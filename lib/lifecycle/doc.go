// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package lifecycle enforces the task state machine and coordinates the
// stores for every operation that changes or presents task state.
//
// A task moves through three states, one step at a time:
//
//	unstarted (0) -> in_progress (1) -> done (2)
//
// Staying put, skipping a state, and moving backward are all rejected
// with [*InvalidTransitionError]. Done is terminal.
//
// Every state change (creation included) appends an audit entry
// recording the new status, the acting user, and the calendar date from
// the service's clock. The task write is authoritative: when the task
// is persisted but the audit append fails, the operation still succeeds
// and the failure is logged at warning level.
//
// Operations take the acting user as an explicit argument; the service
// holds no session state. Tasks cannot be deleted.
package lifecycle
