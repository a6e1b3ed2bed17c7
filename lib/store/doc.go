// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package store persists the tracker's records in three flat
// comma-separated files, each with a header row:
//
//	users: code,name,email,password
//	tasks: code,name,status,assignedUserCode
//	log:   taskCode,status,actorUserCode,date
//
// [UserStore] is read-only. [TaskStore] appends new tasks and applies
// updates by rewriting the whole file atomically. [LogStore] is
// append-only.
//
// Reads are lossy by design: a row with the wrong number of fields, a
// non-integer code, or an out-of-range status is skipped and logged at
// debug level rather than failing the read. Rows that cannot be read
// are still carried through a task rewrite unchanged.
//
// Every file-level failure is returned as a [*StorageError], which
// matches [ErrStorage] under errors.Is.
//
// The stores assume a single process. A mutex serializes writes
// within that process; concurrent access from several processes to the
// same files is not coordinated.
package store
