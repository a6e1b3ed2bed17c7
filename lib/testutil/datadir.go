// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Header rows of the three store files.
const (
	UsersHeader = "code,name,email,password"
	TasksHeader = "code,name,status,assignedUserCode"
	LogHeader   = "taskCode,status,actorUserCode,date"
)

// DefaultUsers is the users fixture most tests start from: two users
// with plain stored passwords.
var DefaultUsers = []string{
	"1,Ann,ann@example.com,pw1",
	"2,Bob,bob@example.com,pw2",
}

// Fixture describes the files [DataDir] writes. A nil Tasks or Log
// leaves that file absent.
type Fixture struct {
	Users []string
	Tasks []string
	Log   []string
}

// DataDir creates a temporary data directory holding users.csv and,
// when given, tasks.csv and logs.csv. Rows are written below the
// header in order. The directory is removed when the test completes.
func DataDir(t *testing.T, fixture Fixture) string {
	t.Helper()
	directory := t.TempDir()

	users := fixture.Users
	if users == nil {
		users = DefaultUsers
	}
	WriteRows(t, filepath.Join(directory, "users.csv"), UsersHeader, users)
	if fixture.Tasks != nil {
		WriteRows(t, filepath.Join(directory, "tasks.csv"), TasksHeader, fixture.Tasks)
	}
	if fixture.Log != nil {
		WriteRows(t, filepath.Join(directory, "logs.csv"), LogHeader, fixture.Log)
	}
	return directory
}

// WriteRows writes header and rows to path, one per line.
func WriteRows(t *testing.T, path, header string, rows []string) {
	t.Helper()
	var builder strings.Builder
	builder.WriteString(header)
	builder.WriteByte('\n')
	for _, row := range rows {
		builder.WriteString(row)
		builder.WriteByte('\n')
	}
	if err := os.WriteFile(path, []byte(builder.String()), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// ReadFile returns the content of path.
func ReadFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

// ReadRows returns the lines of path after the header. A missing file
// has no rows.
func ReadRows(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) <= 1 {
		return nil
	}
	return lines[1:]
}
