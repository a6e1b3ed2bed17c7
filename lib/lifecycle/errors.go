// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package lifecycle

import (
	"errors"
	"fmt"

	"github.com/bureau-foundation/tasktracker/lib/schema"
)

// Sentinels matched by the typed errors below under errors.Is.
var (
	ErrReference         = errors.New("referenced user does not exist")
	ErrNotFound          = errors.New("task not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrAuthentication    = errors.New("authentication failed")
)

// ReferenceError reports a user code with no matching user.
type ReferenceError struct {
	UserCode int
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("user %d does not exist", e.UserCode)
}

func (e *ReferenceError) Unwrap() error { return ErrReference }

// NotFoundError reports a task code with no matching task.
type NotFoundError struct {
	Code int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("task %d does not exist", e.Code)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// InvalidTransitionError reports a requested status that is not exactly
// one step ahead of the task's current status.
type InvalidTransitionError struct {
	Code int
	From schema.Status
	To   schema.Status
}

func (e *InvalidTransitionError) Error() string {
	if e.From == schema.StatusDone {
		return fmt.Sprintf("task %d is already done", e.Code)
	}
	if !e.To.Valid() {
		return fmt.Sprintf("task %d: %s is not a valid status", e.Code, e.To)
	}
	return fmt.Sprintf("task %d cannot move from %s to %s; next status is %s",
		e.Code, e.From, e.To, e.From+1)
}

func (e *InvalidTransitionError) Unwrap() error { return ErrInvalidTransition }

// AuthenticationError reports an email/password pair that matched no
// user. The email is kept for the message; the password never is.
type AuthenticationError struct {
	Email string
}

func (e *AuthenticationError) Error() string {
	if e.Email == "" {
		return "email is required"
	}
	return fmt.Sprintf("no user matches email %q with that password", e.Email)
}

func (e *AuthenticationError) Unwrap() error { return ErrAuthentication }
