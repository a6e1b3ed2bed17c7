// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"fmt"

	"github.com/bureau-foundation/tasktracker/lib/lifecycle"
	"github.com/bureau-foundation/tasktracker/lib/store"
)

// ErrorCategory classifies command errors so scripts can react to the
// kind of failure without parsing message text.
type ErrorCategory string

const (
	// CategoryValidation: the caller supplied bad input (missing or
	// malformed arguments). Fix the input and retry.
	CategoryValidation ErrorCategory = "validation"

	// CategoryNotFound: a referenced task or user does not exist.
	CategoryNotFound ErrorCategory = "not_found"

	// CategoryForbidden: not logged in, or the credentials were rejected.
	CategoryForbidden ErrorCategory = "forbidden"

	// CategoryConflict: the operation conflicts with current state,
	// such as an illegal status transition.
	CategoryConflict ErrorCategory = "conflict"

	// CategoryInternal: an unexpected failure, usually file I/O.
	CategoryInternal ErrorCategory = "internal"
)

// ToolError is a categorized error returned by commands. It wraps the
// underlying error so errors.Is and errors.As still see the cause.
type ToolError struct {
	Category ErrorCategory
	Err      error

	// Hint is an optional next step printed after the message.
	Hint string
}

func (e *ToolError) Error() string {
	if e.Hint == "" {
		return e.Err.Error()
	}
	return e.Err.Error() + "\n\n" + e.Hint
}

func (e *ToolError) Unwrap() error { return e.Err }

// WithHint attaches a remediation hint and returns e.
func (e *ToolError) WithHint(hint string) *ToolError {
	e.Hint = hint
	return e
}

// Validation creates a validation error: the caller provided bad input.
func Validation(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryValidation, Err: fmt.Errorf(format, args...)}
}

// NotFound creates a not-found error: a referenced resource does not exist.
func NotFound(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryNotFound, Err: fmt.Errorf(format, args...)}
}

// Forbidden creates a forbidden error: the caller lacks an identity or
// presented the wrong credentials.
func Forbidden(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryForbidden, Err: fmt.Errorf(format, args...)}
}

// Conflict creates a conflict error: the operation conflicts with existing state.
func Conflict(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryConflict, Err: fmt.Errorf(format, args...)}
}

// Internal creates an internal error: an unexpected failure, bug, or I/O error.
func Internal(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryInternal, Err: fmt.Errorf(format, args...)}
}

// Classify wraps err in a [ToolError] whose category matches the
// domain or storage error it carries. Errors that are already
// ToolErrors, and nil, pass through unchanged.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	var toolError *ToolError
	if errors.As(err, &toolError) {
		return err
	}

	switch {
	case errors.Is(err, lifecycle.ErrReference), errors.Is(err, lifecycle.ErrNotFound):
		return &ToolError{Category: CategoryNotFound, Err: err}
	case errors.Is(err, lifecycle.ErrInvalidTransition):
		return &ToolError{Category: CategoryConflict, Err: err}
	case errors.Is(err, lifecycle.ErrAuthentication):
		return &ToolError{Category: CategoryForbidden, Err: err}
	case IsStorageError(err):
		return (&ToolError{Category: CategoryInternal, Err: err}).WithHint(storageHint)
	default:
		return &ToolError{Category: CategoryInternal, Err: err}
	}
}

const storageHint = "Check that --data-dir names the directory holding users.csv and that its files are readable and writable."

// IsStorageError reports whether err came from a store file operation.
func IsStorageError(err error) bool {
	return errors.Is(err, store.ErrStorage)
}
