// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package secret holds passwords read from a terminal prompt or a
// password file for the short time the tracker needs them.
//
// A [Buffer] lives in an anonymous mmap region outside the Go heap,
// locked against swap and excluded from core dumps. Close zeroes and
// releases it. Reading a closed buffer panics.
//
// Depends on golang.org/x/sys/unix.
package secret
