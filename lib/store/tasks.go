// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"log/slog"
	"sync"

	"github.com/bureau-foundation/tasktracker/lib/csvfile"
	"github.com/bureau-foundation/tasktracker/lib/schema"
)

// UserLookup resolves a user code to a user. [*UserStore] implements it.
type UserLookup interface {
	FindByCode(code int) (schema.User, bool, error)
}

// TaskStore reads and writes task records. Each task read from the file
// has its assignee resolved through the configured [UserLookup]; an
// assignee code with no matching user leaves Task.Assignee nil.
//
// A missing tasks file reads as empty and is created on the first
// write.
type TaskStore struct {
	path   string
	users  UserLookup
	logger *slog.Logger

	// mu serializes writers so a Save cannot interleave with the
	// read-modify-rewrite of an Update.
	mu sync.Mutex
}

// NewTaskStore returns a store backed by the file at path.
func NewTaskStore(path string, users UserLookup, logger *slog.Logger) *TaskStore {
	return &TaskStore{path: path, users: users, logger: orDiscard(logger)}
}

// Path returns the backing file.
func (s *TaskStore) Path() string { return s.path }

// FindAll returns every well-formed task in file order.
func (s *TaskStore) FindAll() ([]schema.Task, error) {
	records, err := readRows(s.logger, "read tasks", s.path, true)
	if err != nil {
		return nil, err
	}

	resolve := s.resolver()
	tasks := make([]schema.Task, 0, len(records))
	for _, record := range records {
		task, err := parseTask(record.Fields)
		if err != nil {
			skipRow(s.logger, s.path, record, err)
			continue
		}
		if task.Assignee, err = resolve(task.AssigneeCode); err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

// FindByCode returns the first well-formed task with the given code.
// The boolean is false when there is none.
func (s *TaskStore) FindByCode(code int) (schema.Task, bool, error) {
	records, err := readRows(s.logger, "read tasks", s.path, true)
	if err != nil {
		return schema.Task{}, false, err
	}

	for _, record := range records {
		task, err := parseTask(record.Fields)
		if err != nil {
			skipRow(s.logger, s.path, record, err)
			continue
		}
		if task.Code != code {
			continue
		}
		if task.Assignee, err = s.resolver()(task.AssigneeCode); err != nil {
			return schema.Task{}, false, err
		}
		return task, true, nil
	}
	return schema.Task{}, false, nil
}

// Save appends task as a new row. Duplicate codes are not checked.
func (s *TaskStore) Save(task schema.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := csvfile.Append(s.path, TaskHeader, formatTask(task)); err != nil {
		return storageError("save task", s.path, err)
	}
	return nil
}

// Update rewrites the tasks file with task's values in place of every
// well-formed row carrying task.Code. Every other row, including rows
// that could not be parsed, is written back byte for byte. When no row
// matched, task is appended. The rewrite replaces the file atomically,
// so a failure leaves the previous content in place.
func (s *TaskStore) Update(task schema.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := readRows(s.logger, "update task", s.path, true)
	if err != nil {
		return err
	}

	replacement := csvfile.Record{Fields: formatTask(task)}
	rows := make([]csvfile.Record, 0, len(records)+1)
	matched := false
	for _, record := range records {
		existing, err := parseTask(record.Fields)
		if err == nil && existing.Code == task.Code {
			rows = append(rows, replacement)
			matched = true
			continue
		}
		rows = append(rows, csvfile.Record{Raw: record.Raw})
	}
	if !matched {
		rows = append(rows, replacement)
	}

	if err := csvfile.Rewrite(s.path, TaskHeader, rows); err != nil {
		return storageError("update task", s.path, err)
	}
	s.logger.Debug("tasks file rewritten",
		"path", s.path,
		"code", task.Code,
		"rows", len(rows),
		"appended", !matched,
	)
	return nil
}

// resolver returns a lookup that consults the user store at most once
// per distinct code.
func (s *TaskStore) resolver() func(code int) (*schema.User, error) {
	cache := make(map[int]*schema.User)
	return func(code int) (*schema.User, error) {
		if user, seen := cache[code]; seen {
			return user, nil
		}
		found, ok, err := s.users.FindByCode(code)
		if err != nil {
			return nil, err
		}
		var user *schema.User
		if ok {
			user = &found
		}
		cache[code] = user
		return user, nil
	}
}
