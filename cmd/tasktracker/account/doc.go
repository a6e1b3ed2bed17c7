// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package account implements the identity commands: login, logout,
// whoami, and hash-password.
//
// Login checks an email and password against the users file and saves
// a [cli.Session] so later commands know who is acting. The session
// holds a fingerprint of the user row rather than the password.
package account
