// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/bureau-foundation/tasktracker/lib/csvfile"
	"github.com/bureau-foundation/tasktracker/lib/schema"
)

// Header rows written when a file is created or rewritten.
var (
	UserHeader = []string{"code", "name", "email", "password"}
	TaskHeader = []string{"code", "name", "status", "assignedUserCode"}
	LogHeader  = []string{"taskCode", "status", "actorUserCode", "date"}
)

// fieldCount is shared by all three schemas.
const fieldCount = 4

// readRows reads path and returns its data records. A missing file is
// an empty result when missingOK is set and a StorageError otherwise.
func readRows(logger *slog.Logger, op, path string, missingOK bool) ([]csvfile.Record, error) {
	_, records, err := csvfile.ReadRecords(path, func(line int, err error) {
		logger.Debug("skipping undecodable row", "path", path, "line", line, "error", err)
	})
	if err != nil {
		if missingOK && errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, storageError(op, path, err)
	}
	return records, nil
}

func skipRow(logger *slog.Logger, path string, record csvfile.Record, err error) {
	logger.Debug("skipping malformed row", "path", path, "line", record.Line, "error", err)
}

func parseInt(field, value string) (int, error) {
	number, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("%s %q is not an integer", field, value)
	}
	return number, nil
}

func parseStatus(value string) (schema.Status, error) {
	number, err := parseInt("status", value)
	if err != nil {
		return 0, err
	}
	status := schema.Status(number)
	if !status.Valid() {
		return 0, fmt.Errorf("status %d is out of range", number)
	}
	return status, nil
}

func checkFieldCount(fields []string) error {
	if len(fields) != fieldCount {
		return fmt.Errorf("expected %d fields, got %d", fieldCount, len(fields))
	}
	return nil
}

func parseUser(fields []string) (schema.User, error) {
	if err := checkFieldCount(fields); err != nil {
		return schema.User{}, err
	}
	code, err := parseInt("code", fields[0])
	if err != nil {
		return schema.User{}, err
	}
	return schema.User{
		Code:     code,
		Name:     fields[1],
		Email:    fields[2],
		Password: fields[3],
	}, nil
}

// parseTask decodes the stored columns only; the assignee is resolved
// by the caller.
func parseTask(fields []string) (schema.Task, error) {
	if err := checkFieldCount(fields); err != nil {
		return schema.Task{}, err
	}
	code, err := parseInt("code", fields[0])
	if err != nil {
		return schema.Task{}, err
	}
	status, err := parseStatus(fields[2])
	if err != nil {
		return schema.Task{}, err
	}
	assignee, err := parseInt("assignedUserCode", fields[3])
	if err != nil {
		return schema.Task{}, err
	}
	return schema.Task{
		Code:         code,
		Name:         fields[1],
		Status:       status,
		AssigneeCode: assignee,
	}, nil
}

func formatTask(task schema.Task) []string {
	return []string{
		strconv.Itoa(task.Code),
		task.Name,
		strconv.Itoa(int(task.Status)),
		strconv.Itoa(task.AssigneeCode),
	}
}

func parseLogEntry(fields []string) (schema.LogEntry, error) {
	if err := checkFieldCount(fields); err != nil {
		return schema.LogEntry{}, err
	}
	taskCode, err := parseInt("taskCode", fields[0])
	if err != nil {
		return schema.LogEntry{}, err
	}
	status, err := parseStatus(fields[1])
	if err != nil {
		return schema.LogEntry{}, err
	}
	actor, err := parseInt("actorUserCode", fields[2])
	if err != nil {
		return schema.LogEntry{}, err
	}
	date, err := time.ParseInLocation(schema.DateLayout, strings.TrimSpace(fields[3]), time.Local)
	if err != nil {
		return schema.LogEntry{}, fmt.Errorf("date %q: %w", fields[3], err)
	}
	return schema.LogEntry{
		TaskCode:  taskCode,
		Status:    status,
		ActorCode: actor,
		Date:      date,
	}, nil
}

func formatLogEntry(entry schema.LogEntry) []string {
	return []string{
		strconv.Itoa(entry.TaskCode),
		strconv.Itoa(int(entry.Status)),
		strconv.Itoa(entry.ActorCode),
		entry.DateString(),
	}
}

func orDiscard(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return logger
}
