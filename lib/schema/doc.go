// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package schema defines the value types shared by the task tracker's
// stores, lifecycle service, and command-line surface.
//
// The three persisted record kinds are:
//
//   - [User] -- identity record, read-only from the tracker's point of
//     view, keyed by integer code.
//   - [Task] -- unit of work keyed by integer code, carrying a [Status]
//     and a reference to its assignee by user code.
//   - [LogEntry] -- append-only audit record of a task status change.
//
// References between records are by code equality, never by embedded
// ownership. [Task].Assignee is a read-time resolution of
// [Task].AssigneeCode and is nil when the referenced user does not
// exist.
//
// [TaskView] is a derived, never-stored projection used for listings:
// it pairs a task with its assignee's display name and whether the
// viewing user is the assignee.
//
// This package depends on no other tracker packages.
package schema
