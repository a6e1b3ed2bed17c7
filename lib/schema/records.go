// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"encoding/json"
	"fmt"
	"time"
)

// DateLayout is the calendar-date format used for audit log dates.
const DateLayout = "2006-01-02"

// User is an identity record. Users are created outside the tracker
// (seeded into the users file) and are immutable from its point of
// view.
type User struct {
	Code  int    `json:"code"`
	Name  string `json:"name"`
	Email string `json:"email"`

	// Password is the stored credential column: either a legacy plain
	// value or a bcrypt hash. Never serialized.
	Password string `json:"-"`
}

// Task is a unit of work.
type Task struct {
	Code   int    `json:"code"`
	Name   string `json:"name"`
	Status Status `json:"status"`

	// AssigneeCode is the persisted reference to the assigned user.
	AssigneeCode int `json:"assignee_code"`

	// Assignee is resolved from AssigneeCode when the task is read.
	// Nil when no user with that code exists.
	Assignee *User `json:"assignee,omitempty"`
}

// LogEntry is an append-only audit record written once per task
// creation or status transition. TaskCode need not refer to a task
// that still exists.
type LogEntry struct {
	TaskCode int `json:"task_code"`

	// Status is the status the task held after the recorded event:
	// StatusUnstarted for creation, the new status for a transition.
	Status Status `json:"status"`

	ActorCode int `json:"actor_code"`

	// Date is the calendar date of the event. Only the year, month,
	// and day are meaningful.
	Date time.Time `json:"-"`
}

// DateString returns Date formatted with DateLayout.
func (e LogEntry) DateString() string {
	return e.Date.Format(DateLayout)
}

// logEntryJSON is the wire shape of a LogEntry: the date travels as
// a DateLayout string rather than a full timestamp.
type logEntryJSON struct {
	TaskCode  int    `json:"task_code"`
	Status    Status `json:"status"`
	ActorCode int    `json:"actor_code"`
	Date      string `json:"date"`
}

func (e LogEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal(logEntryJSON{
		TaskCode:  e.TaskCode,
		Status:    e.Status,
		ActorCode: e.ActorCode,
		Date:      e.DateString(),
	})
}

func (e *LogEntry) UnmarshalJSON(data []byte) error {
	var wire logEntryJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	date, err := time.Parse(DateLayout, wire.Date)
	if err != nil {
		return fmt.Errorf("log entry date: %w", err)
	}
	*e = LogEntry{TaskCode: wire.TaskCode, Status: wire.Status, ActorCode: wire.ActorCode, Date: date}
	return nil
}

// TaskView is one row of a task listing as seen by a particular user.
// It is derived on every read and never stored.
type TaskView struct {
	Task Task `json:"task"`

	// AssigneeName is the resolved assignee's name, or empty when the
	// assignee does not exist.
	AssigneeName string `json:"assignee_name"`

	// AssignedToViewer is true when the task's assignee is the user
	// the listing was produced for.
	AssignedToViewer bool `json:"assigned_to_viewer"`
}
