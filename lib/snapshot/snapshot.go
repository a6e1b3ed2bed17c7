// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package snapshot

import (
	"time"

	"github.com/bureau-foundation/tasktracker/lib/schema"
)

// Version is the snapshot schema version written by this package.
const Version = 1

// Snapshot is the exported content.
type Snapshot struct {
	Version   int    `json:"version"`
	CreatedAt string `json:"created_at"`

	Users []User     `json:"users"`
	Tasks []Task     `json:"tasks"`
	Log   []LogEntry `json:"log"`
}

// User is an exported user. The password column is never exported.
type User struct {
	Code  int    `json:"code"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Task is an exported task row.
type Task struct {
	Code         int           `json:"code"`
	Name         string        `json:"name"`
	Status       schema.Status `json:"status"`
	AssigneeCode int           `json:"assignee_code"`
}

// LogEntry is an exported audit row.
type LogEntry struct {
	TaskCode  int           `json:"task_code"`
	Status    schema.Status `json:"status"`
	ActorCode int           `json:"actor_code"`
	Date      string        `json:"date"`
}

// Build assembles a snapshot from loaded records.
func Build(users []schema.User, tasks []schema.Task, entries []schema.LogEntry, createdAt time.Time) Snapshot {
	snapshot := Snapshot{
		Version:   Version,
		CreatedAt: createdAt.UTC().Format(time.RFC3339),
		Users:     make([]User, 0, len(users)),
		Tasks:     make([]Task, 0, len(tasks)),
		Log:       make([]LogEntry, 0, len(entries)),
	}
	for _, user := range users {
		snapshot.Users = append(snapshot.Users, User{Code: user.Code, Name: user.Name, Email: user.Email})
	}
	for _, task := range tasks {
		snapshot.Tasks = append(snapshot.Tasks, Task{
			Code:         task.Code,
			Name:         task.Name,
			Status:       task.Status,
			AssigneeCode: task.AssigneeCode,
		})
	}
	for _, entry := range entries {
		snapshot.Log = append(snapshot.Log, LogEntry{
			TaskCode:  entry.TaskCode,
			Status:    entry.Status,
			ActorCode: entry.ActorCode,
			Date:      entry.DateString(),
		})
	}
	return snapshot
}

// Counts summarizes a snapshot for display.
type Counts struct {
	Users      int `json:"users"`
	Tasks      int `json:"tasks"`
	LogEntries int `json:"log_entries"`
}

// Counts returns the record counts of s.
func (s Snapshot) Counts() Counts {
	return Counts{Users: len(s.Users), Tasks: len(s.Tasks), LogEntries: len(s.Log)}
}
