// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"fmt"
	"strconv"
	"strings"
)

// Status is the lifecycle state of a task. Values are ordered: a task
// moves from StatusUnstarted to StatusInProgress to StatusDone, one
// step at a time. The integer value is the persisted representation.
type Status int

const (
	StatusUnstarted  Status = 0
	StatusInProgress Status = 1
	StatusDone       Status = 2
)

// Statuses lists every defined status in lifecycle order.
var Statuses = []Status{StatusUnstarted, StatusInProgress, StatusDone}

// Valid reports whether s is one of the defined statuses.
func (s Status) Valid() bool {
	return s >= StatusUnstarted && s <= StatusDone
}

// String returns the machine-readable name used in flags and JSON
// output: "unstarted", "in_progress", or "done". Undefined values
// render as "status(N)".
func (s Status) String() string {
	switch s {
	case StatusUnstarted:
		return "unstarted"
	case StatusInProgress:
		return "in_progress"
	case StatusDone:
		return "done"
	default:
		return "status(" + strconv.Itoa(int(s)) + ")"
	}
}

// Label returns the human-readable display label.
func (s Status) Label() string {
	switch s {
	case StatusUnstarted:
		return "Unstarted"
	case StatusInProgress:
		return "In progress"
	case StatusDone:
		return "Done"
	default:
		return "Unknown"
	}
}

// MarshalText encodes the status by name so JSON output reads
// "in_progress" rather than 1.
func (s Status) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("cannot marshal undefined status %d", int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText accepts anything [ParseStatus] accepts.
func (s *Status) UnmarshalText(text []byte) error {
	parsed, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseStatus parses a status from its persisted integer form ("0",
// "1", "2") or from its name. Names are matched case-insensitively and
// accept "-" or " " in place of "_" ("in-progress", "In progress").
func ParseStatus(raw string) (Status, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, fmt.Errorf("status is empty")
	}
	if number, err := strconv.Atoi(trimmed); err == nil {
		status := Status(number)
		if !status.Valid() {
			return 0, fmt.Errorf("unknown status %d (expected 0, 1, or 2)", number)
		}
		return status, nil
	}
	normalized := strings.ToLower(trimmed)
	normalized = strings.NewReplacer("-", "_", " ", "_").Replace(normalized)
	for _, status := range Statuses {
		if status.String() == normalized {
			return status, nil
		}
	}
	return 0, fmt.Errorf("unknown status %q (expected unstarted, in_progress, or done)", raw)
}
