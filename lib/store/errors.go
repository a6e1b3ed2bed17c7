// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"errors"
	"fmt"
)

// ErrStorage matches every [*StorageError] under errors.Is.
var ErrStorage = errors.New("storage failure")

// StorageError reports a failed read or write of a backing file.
type StorageError struct {
	// Op names the store operation, e.g. "read tasks" or "update task".
	Op string

	// Path is the backing file.
	Path string

	// Err is the underlying failure.
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap exposes both [ErrStorage] and the underlying error, so
// errors.Is(err, os.ErrNotExist) works through a StorageError.
func (e *StorageError) Unwrap() []error {
	return []error{ErrStorage, e.Err}
}

func storageError(op, path string, err error) error {
	return &StorageError{Op: op, Path: path, Err: err}
}
