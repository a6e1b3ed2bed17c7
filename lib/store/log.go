// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"log/slog"
	"sync"

	"github.com/bureau-foundation/tasktracker/lib/csvfile"
	"github.com/bureau-foundation/tasktracker/lib/schema"
)

// LogStore appends status-change records to the audit log. Existing
// rows are never modified.
type LogStore struct {
	path   string
	logger *slog.Logger
	mu     sync.Mutex
}

// NewLogStore returns a store backed by the file at path. The file is
// created with its header on the first Save.
func NewLogStore(path string, logger *slog.Logger) *LogStore {
	return &LogStore{path: path, logger: orDiscard(logger)}
}

// Path returns the backing file.
func (s *LogStore) Path() string { return s.path }

// Save appends entry.
func (s *LogStore) Save(entry schema.LogEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := csvfile.Append(s.path, LogHeader, formatLogEntry(entry)); err != nil {
		return storageError("append log entry", s.path, err)
	}
	return nil
}

// All returns every well-formed entry in insertion order.
func (s *LogStore) All() ([]schema.LogEntry, error) {
	return s.filter(func(schema.LogEntry) bool { return true })
}

// FindByTaskCode returns the entries for one task in insertion order.
// The task need not exist in the tasks file.
func (s *LogStore) FindByTaskCode(code int) ([]schema.LogEntry, error) {
	return s.filter(func(entry schema.LogEntry) bool { return entry.TaskCode == code })
}

func (s *LogStore) filter(keep func(schema.LogEntry) bool) ([]schema.LogEntry, error) {
	records, err := readRows(s.logger, "read log", s.path, true)
	if err != nil {
		return nil, err
	}

	var entries []schema.LogEntry
	for _, record := range records {
		entry, err := parseLogEntry(record.Fields)
		if err != nil {
			skipRow(s.logger, s.path, record, err)
			continue
		}
		if keep(entry) {
			entries = append(entries, entry)
		}
	}
	return entries, nil
}
