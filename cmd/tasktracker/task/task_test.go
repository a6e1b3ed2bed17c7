// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package task

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/bureau-foundation/tasktracker/cmd/tasktracker/cli"
	"github.com/bureau-foundation/tasktracker/lib/config"
	"github.com/bureau-foundation/tasktracker/lib/schema"
	"github.com/bureau-foundation/tasktracker/lib/testutil"
)

var (
	ann = schema.User{Code: 1, Name: "Ann", Email: "ann@example.com", Password: "pw1"}
	bob = schema.User{Code: 2, Name: "Bob", Email: "bob@example.com", Password: "pw2"}
)

var defaultTasks = []string{
	"1,docs,0,2",
	"2,build,1,1",
	"3,orphan,2,9",
}

// setup creates a data directory from fixture and, when user is
// non-nil, saves a login session for them.
func setup(t *testing.T, fixture testutil.Fixture, user *schema.User) string {
	t.Helper()
	t.Setenv(config.EnvConfigPath, "")
	sessionPath := filepath.Join(t.TempDir(), "session.json")
	t.Setenv(cli.EnvSessionFile, sessionPath)

	if user != nil {
		if err := cli.SaveSessionTo(cli.NewSession(*user, time.Now()), sessionPath); err != nil {
			t.Fatalf("saving session: %v", err)
		}
	}
	return testutil.DataDir(t, fixture)
}

func run(t *testing.T, dataDir string, args ...string) (string, error) {
	t.Helper()
	args = append(args, "--data-dir", dataDir)
	return testutil.CaptureStdout(t, func() error {
		return Command().ExecuteContext(context.Background(), args)
	})
}

func requireCategory(t *testing.T, err error, want cli.ErrorCategory) {
	t.Helper()
	var toolError *cli.ToolError
	if !errors.As(err, &toolError) {
		t.Fatalf("err = %v, want a %s ToolError", err, want)
	}
	if toolError.Category != want {
		t.Fatalf("category = %q, want %q (err: %v)", toolError.Category, want, err)
	}
}

func today() string {
	return time.Now().Format(schema.DateLayout)
}

func TestList_Text(t *testing.T) {
	dataDir := setup(t, testutil.Fixture{Tasks: defaultTasks}, &ann)

	output, err := run(t, dataDir, "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	lines := strings.Split(strings.TrimRight(output, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want header plus 3:\n%s", len(lines), output)
	}
	for _, want := range []string{"CODE", "NAME", "STATUS", "ASSIGNEE"} {
		if !strings.Contains(lines[0], want) {
			t.Errorf("header %q missing %s", lines[0], want)
		}
	}
	expectations := []struct{ line, name, status, assignment string }{
		{lines[1], "docs", "Unstarted", "Bob is assigned"},
		{lines[2], "build", "In progress", "you are assigned"},
		{lines[3], "orphan", "Done", "user 9 (missing) is assigned"},
	}
	for _, expect := range expectations {
		for _, want := range []string{expect.name, expect.status, expect.assignment} {
			if !strings.Contains(expect.line, want) {
				t.Errorf("line %q missing %q", expect.line, want)
			}
		}
	}
}

func TestList_JSONAndFilters(t *testing.T) {
	dataDir := setup(t, testutil.Fixture{Tasks: defaultTasks}, &ann)

	codes := func(args ...string) []int {
		t.Helper()
		output, err := run(t, dataDir, append([]string{"list", "--json"}, args...)...)
		if err != nil {
			t.Fatalf("list %v: %v", args, err)
		}
		var views []schema.TaskView
		if err := json.Unmarshal([]byte(output), &views); err != nil {
			t.Fatalf("decoding %q: %v", output, err)
		}
		var result []int
		for _, view := range views {
			result = append(result, view.Task.Code)
		}
		return result
	}

	if got := codes(); !slices.Equal(got, []int{1, 2, 3}) {
		t.Errorf("all = %v", got)
	}
	if got := codes("--mine"); !slices.Equal(got, []int{2}) {
		t.Errorf("--mine = %v", got)
	}
	if got := codes("--status", "done"); !slices.Equal(got, []int{3}) {
		t.Errorf("--status done = %v", got)
	}
	if got := codes("--status", "0"); !slices.Equal(got, []int{1}) {
		t.Errorf("--status 0 = %v", got)
	}
	if got := codes("--match", "bld"); len(got) == 0 || got[0] != 2 {
		t.Errorf("--match bld = %v, want build first", got)
	}
	if got := codes("--mine", "--status", "done"); len(got) != 0 {
		t.Errorf("--mine --status done = %v, want none", got)
	}
}

func TestList_EmptyJSONIsArray(t *testing.T) {
	dataDir := setup(t, testutil.Fixture{}, &ann)
	output, err := run(t, dataDir, "list", "--json")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if strings.TrimSpace(output) != "[]" {
		t.Errorf("output = %q, want []", output)
	}
}

func TestList_RequiresLogin(t *testing.T) {
	dataDir := setup(t, testutil.Fixture{Tasks: defaultTasks}, nil)
	_, err := run(t, dataDir, "list")
	requireCategory(t, err, cli.CategoryForbidden)
}

func TestList_BadStatus(t *testing.T) {
	dataDir := setup(t, testutil.Fixture{Tasks: defaultTasks}, &ann)
	_, err := run(t, dataDir, "list", "--status", "blocked")
	requireCategory(t, err, cli.CategoryValidation)
}

func TestCreate(t *testing.T) {
	dataDir := setup(t, testutil.Fixture{Tasks: defaultTasks}, &ann)

	output, err := run(t, dataDir, "create", "--code", "4", "--name", "review", "--assignee", "2")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !strings.Contains(output, "Created task 4 (review)") {
		t.Errorf("output = %q", output)
	}

	tasks := testutil.ReadRows(t, filepath.Join(dataDir, "tasks.csv"))
	if tasks[len(tasks)-1] != "4,review,0,2" {
		t.Errorf("tasks = %q", tasks)
	}
	logRows := testutil.ReadRows(t, filepath.Join(dataDir, "logs.csv"))
	if !slices.Equal(logRows, []string{"4,0,1," + today()}) {
		t.Errorf("log = %q", logRows)
	}
}

func TestCreate_Rejections(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want cli.ErrorCategory
	}{
		{"missing code", []string{"--name", "x", "--assignee", "1"}, cli.CategoryValidation},
		{"missing assignee", []string{"--code", "5", "--name", "x"}, cli.CategoryValidation},
		{"empty name", []string{"--code", "5", "--name", "", "--assignee", "1"}, cli.CategoryValidation},
		{"name too long", []string{"--code", "5", "--name", "elevenchars", "--assignee", "1"}, cli.CategoryValidation},
		{"unknown assignee", []string{"--code", "5", "--name", "x", "--assignee", "99"}, cli.CategoryNotFound},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			dataDir := setup(t, testutil.Fixture{Tasks: defaultTasks}, &ann)
			_, err := run(t, dataDir, append([]string{"create"}, test.args...)...)
			requireCategory(t, err, test.want)

			if tasks := testutil.ReadRows(t, filepath.Join(dataDir, "tasks.csv")); len(tasks) != len(defaultTasks) {
				t.Errorf("tasks file changed: %q", tasks)
			}
			if _, err := os.Stat(filepath.Join(dataDir, "logs.csv")); !os.IsNotExist(err) {
				t.Error("log file written for a rejected create")
			}
		})
	}
}

func TestValidateName_CountsCharacters(t *testing.T) {
	if err := ValidateName("タスク名は十文字以内", 10); err != nil {
		t.Errorf("ten multibyte characters rejected: %v", err)
	}
	if err := ValidateName("タスク名は十文字以内だ", 10); err == nil {
		t.Error("eleven characters accepted")
	}
}

func TestAdvance(t *testing.T) {
	dataDir := setup(t, testutil.Fixture{Tasks: defaultTasks}, &bob)

	output, err := run(t, dataDir, "advance", "1")
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	if !strings.Contains(output, "is now In progress") {
		t.Errorf("output = %q", output)
	}

	_, err = run(t, dataDir, "advance", "1", "--status", "done")
	if err != nil {
		t.Fatalf("advance --status done: %v", err)
	}

	tasks := testutil.ReadRows(t, filepath.Join(dataDir, "tasks.csv"))
	if tasks[0] != "1,docs,2,2" {
		t.Errorf("tasks = %q", tasks)
	}
	date := today()
	logRows := testutil.ReadRows(t, filepath.Join(dataDir, "logs.csv"))
	if !slices.Equal(logRows, []string{"1,1,2," + date, "1,2,2," + date}) {
		t.Errorf("log = %q", logRows)
	}
}

func TestAdvance_Rejections(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want cli.ErrorCategory
	}{
		{"skip a step", []string{"1", "--status", "done"}, cli.CategoryConflict},
		{"backwards", []string{"2", "--status", "unstarted"}, cli.CategoryConflict},
		{"same status", []string{"2", "--status", "in_progress"}, cli.CategoryConflict},
		{"already done", []string{"3"}, cli.CategoryConflict},
		{"unknown task", []string{"42"}, cli.CategoryNotFound},
		{"bad status", []string{"1", "--status", "7"}, cli.CategoryValidation},
		{"bad code", []string{"one"}, cli.CategoryValidation},
		{"no code", nil, cli.CategoryValidation},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			dataDir := setup(t, testutil.Fixture{Tasks: defaultTasks}, &ann)
			_, err := run(t, dataDir, append([]string{"advance"}, test.args...)...)
			requireCategory(t, err, test.want)

			if tasks := testutil.ReadRows(t, filepath.Join(dataDir, "tasks.csv")); !slices.Equal(tasks, defaultTasks) {
				t.Errorf("tasks file changed: %q", tasks)
			}
		})
	}
}

func TestShow_JSON(t *testing.T) {
	dataDir := setup(t, testutil.Fixture{
		Tasks: defaultTasks,
		Log:   []string{"2,0,1,2026-01-05", "2,1,7,2026-01-06", "1,0,2,2026-01-07"},
	}, &ann)

	output, err := run(t, dataDir, "show", "2", "--json")
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	var result struct {
		Task             schema.Task `json:"task"`
		AssignedToViewer bool        `json:"assigned_to_viewer"`
		History          []struct {
			Status    schema.Status `json:"status"`
			ActorName string        `json:"actor_name"`
			Date      string        `json:"date"`
		} `json:"history"`
	}
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Fatalf("decoding %q: %v", output, err)
	}
	if result.Task.Name != "build" || !result.AssignedToViewer {
		t.Errorf("task = %+v, assigned_to_viewer = %v", result.Task, result.AssignedToViewer)
	}
	if len(result.History) != 2 {
		t.Fatalf("history = %+v, want 2 entries", result.History)
	}
	if result.History[0].ActorName != "Ann" || result.History[0].Date != "2026-01-05" {
		t.Errorf("first entry = %+v", result.History[0])
	}
	if result.History[1].ActorName != "" || result.History[1].Status != schema.StatusInProgress {
		t.Errorf("second entry = %+v", result.History[1])
	}
}

func TestShow_Text(t *testing.T) {
	dataDir := setup(t, testutil.Fixture{Tasks: defaultTasks}, &ann)
	output, err := run(t, dataDir, "show", "1")
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	for _, want := range []string{"Code:", "docs", "Unstarted", "Bob is assigned", "No history recorded."} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q:\n%s", want, output)
		}
	}
}

func TestShow_NotFound(t *testing.T) {
	dataDir := setup(t, testutil.Fixture{Tasks: defaultTasks}, &ann)
	_, err := run(t, dataDir, "show", "8")
	requireCategory(t, err, cli.CategoryNotFound)
}

func TestHistory_DeletedTask(t *testing.T) {
	dataDir := setup(t, testutil.Fixture{
		Tasks: defaultTasks,
		Log:   []string{"77,0,2,2026-02-01", "77,1,9,2026-02-03"},
	}, &ann)

	output, err := run(t, dataDir, "history", "77")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	for _, want := range []string{"2026-02-01", "Bob", "2026-02-03", "user 9", "In progress"} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q:\n%s", want, output)
		}
	}
}

func TestReport(t *testing.T) {
	dataDir := setup(t, testutil.Fixture{Tasks: defaultTasks}, &ann)

	markdownPath := filepath.Join(t.TempDir(), "report.md")
	if _, err := run(t, dataDir, "report", "--output", markdownPath); err != nil {
		t.Fatalf("report: %v", err)
	}
	markdown := testutil.ReadFile(t, markdownPath)
	for _, want := range []string{"# Task report", "for Ann", "| 2 | build | Ann (you) |", "_user 9 (missing)_"} {
		if !strings.Contains(markdown, want) {
			t.Errorf("markdown missing %q:\n%s", want, markdown)
		}
	}

	output, err := run(t, dataDir, "report", "--html")
	if err != nil {
		t.Fatalf("report --html: %v", err)
	}
	if !strings.Contains(output, "<table>") || !strings.Contains(output, "<h1") {
		t.Errorf("HTML output missing table or heading:\n%s", output)
	}
}

func TestReport_StdoutIsPlainWithoutTerminal(t *testing.T) {
	dataDir := setup(t, testutil.Fixture{Tasks: defaultTasks}, &ann)
	output, err := run(t, dataDir, "report")
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if !strings.HasPrefix(output, "# Task report\n") {
		t.Errorf("output = %q", output)
	}
	if strings.Contains(output, "\x1b[") {
		t.Error("escape sequences written to a pipe")
	}
}
