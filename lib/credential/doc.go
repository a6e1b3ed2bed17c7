// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package credential verifies and produces the password column of the
// users file.
//
// The users file may hold either a bcrypt hash (produced by [Hash] or
// the hash-password command) or a legacy plain value. [Verify] detects
// which form is stored and compares accordingly, so existing files keep
// working while operators migrate rows to hashes one at a time.
package credential
