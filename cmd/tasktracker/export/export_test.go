// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package export

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bureau-foundation/tasktracker/cmd/tasktracker/cli"
	"github.com/bureau-foundation/tasktracker/lib/config"
	"github.com/bureau-foundation/tasktracker/lib/schema"
	"github.com/bureau-foundation/tasktracker/lib/snapshot"
	"github.com/bureau-foundation/tasktracker/lib/testutil"
)

var ann = schema.User{Code: 1, Name: "Ann", Email: "ann@example.com", Password: "pw1"}

var fixture = testutil.Fixture{
	Tasks: []string{"1,docs,1,2", "2,build,0,1"},
	Log:   []string{"1,1,1,2026-03-04"},
}

func setup(t *testing.T, loggedIn bool) string {
	t.Helper()
	t.Setenv(config.EnvConfigPath, "")
	sessionPath := filepath.Join(t.TempDir(), "session.json")
	t.Setenv(cli.EnvSessionFile, sessionPath)
	if loggedIn {
		if err := cli.SaveSessionTo(cli.NewSession(ann, time.Now()), sessionPath); err != nil {
			t.Fatalf("saving session: %v", err)
		}
	}
	return testutil.DataDir(t, fixture)
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
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

func inspectJSON(t *testing.T, args ...string) inspectResult {
	t.Helper()
	output, err := run(t, append([]string{"inspect", "--json"}, args...)...)
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	var result inspectResult
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Fatalf("parsing inspect output %q: %v", output, err)
	}
	return result
}

func TestExportInspect_FormatsAndCompressions(t *testing.T) {
	for _, format := range []string{"json", "cbor"} {
		for _, compression := range []string{"none", "zstd", "lz4"} {
			t.Run(format+"/"+compression, func(t *testing.T) {
				dataDir := setup(t, true)
				path := filepath.Join(t.TempDir(), "tracker.snapshot")

				output, err := run(t, "--data-dir", dataDir, "--output", path,
					"--format", format, "--compression", compression)
				if err != nil {
					t.Fatalf("export: %v", err)
				}
				if !strings.Contains(output, "Exported 2 users, 2 tasks, and 1 log entries") {
					t.Errorf("export output = %q", output)
				}

				result := inspectJSON(t, path)
				if string(result.Info.Format) != format {
					t.Errorf("format = %q, want %q", result.Info.Format, format)
				}
				// lz4 stores input it cannot shrink uncompressed.
				applied := string(result.Info.Compression)
				if applied != compression && !(compression == "lz4" && applied == "none") {
					t.Errorf("compression = %q, want %q", applied, compression)
				}
				want := snapshot.Counts{Users: 2, Tasks: 2, LogEntries: 1}
				if result.Counts != want {
					t.Errorf("counts = %+v, want %+v", result.Counts, want)
				}
				if result.Info.Encrypted {
					t.Error("plain export reported as encrypted")
				}
			})
		}
	}
}

func TestExport_LeavesDataUnchangedAndOmitsPasswords(t *testing.T) {
	dataDir := setup(t, true)
	before := testutil.ReadFile(t, filepath.Join(dataDir, "tasks.csv"))
	path := filepath.Join(t.TempDir(), "tracker.snapshot")

	if _, err := run(t, "--data-dir", dataDir, "--output", path); err != nil {
		t.Fatalf("export: %v", err)
	}
	if after := testutil.ReadFile(t, filepath.Join(dataDir, "tasks.csv")); after != before {
		t.Errorf("tasks.csv changed:\n%s\nwant:\n%s", after, before)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading snapshot: %v", err)
	}
	if strings.Contains(string(data), "pw1") {
		t.Error("snapshot contains a password")
	}
	decoded, _, err := snapshot.Decode(data, nil)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if decoded.Tasks[0].Name != "docs" || decoded.Tasks[0].Status != schema.StatusInProgress {
		t.Errorf("first task = %+v", decoded.Tasks[0])
	}
	if decoded.Log[0].Date != "2026-03-04" {
		t.Errorf("log date = %q", decoded.Log[0].Date)
	}
}

func TestExport_Sealed(t *testing.T) {
	dataDir := setup(t, true)
	keyPath := filepath.Join(t.TempDir(), "key.txt")

	publicKey, err := run(t, "keygen", "--output", keyPath)
	if err != nil {
		t.Fatalf("keygen: %v", err)
	}
	publicKey = strings.TrimSpace(publicKey)
	if !strings.HasPrefix(publicKey, "age1") {
		t.Fatalf("public key = %q", publicKey)
	}
	info, err := os.Stat(keyPath)
	if err != nil {
		t.Fatalf("stat identity: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("identity mode = %v, want 0600", info.Mode().Perm())
	}

	for _, armor := range []bool{false, true} {
		path := filepath.Join(t.TempDir(), "tracker.age")
		args := []string{"--data-dir", dataDir, "--output", path, "--recipient", publicKey, "--format", "cbor"}
		if armor {
			args = append(args, "--armor")
		}
		if _, err := run(t, args...); err != nil {
			t.Fatalf("sealed export (armor=%v): %v", armor, err)
		}

		_, err := run(t, "inspect", path)
		requireCategory(t, err, cli.CategoryValidation)
		if !strings.Contains(err.Error(), "--identity") {
			t.Errorf("error %q lacks the --identity hint", err)
		}

		result := inspectJSON(t, path, "--identity", keyPath)
		if !result.Info.Encrypted {
			t.Errorf("armor=%v: sealed export not reported as encrypted", armor)
		}
		if result.Counts.Tasks != 2 {
			t.Errorf("armor=%v: tasks = %d, want 2", armor, result.Counts.Tasks)
		}
	}
}

func TestInspect_TextAndDiagnose(t *testing.T) {
	dataDir := setup(t, true)
	path := filepath.Join(t.TempDir(), "tracker.snapshot")
	if _, err := run(t, "--data-dir", dataDir, "--output", path, "--format", "cbor", "--compression", "zstd"); err != nil {
		t.Fatalf("export: %v", err)
	}

	output, err := run(t, "inspect", path, "--diagnose", "--color", "never")
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	for _, want := range []string{"Format:", "cbor", "zstd", "Encrypted:", "Tasks:", `"docs"`, `"users"`} {
		if !strings.Contains(output, want) {
			t.Errorf("output lacks %q:\n%s", want, output)
		}
	}
	if strings.Contains(output, "\x1b[") {
		t.Error("--color never output contains escape sequences")
	}
}

func TestInspect_Corrupt(t *testing.T) {
	dataDir := setup(t, true)
	path := filepath.Join(t.TempDir(), "tracker.snapshot")
	if _, err := run(t, "--data-dir", dataDir, "--output", path); err != nil {
		t.Fatalf("export: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading snapshot: %v", err)
	}
	data[len(data)-2] ^= 0x01
	if err := os.WriteFile(path, data, 0600); err != nil {
		t.Fatalf("rewriting snapshot: %v", err)
	}

	output, err := run(t, "inspect", path)
	var exitError *cli.ExitError
	if !errors.As(err, &exitError) || exitError.Code != 2 {
		t.Fatalf("err = %v, want exit code 2", err)
	}
	if !strings.Contains(output, "corrupt") {
		t.Errorf("output = %q, want a corruption report", output)
	}
}

func TestInspect_MissingFile(t *testing.T) {
	_, err := run(t, "inspect", filepath.Join(t.TempDir(), "absent"))
	requireCategory(t, err, cli.CategoryNotFound)
}

func TestExport_Rejections(t *testing.T) {
	dataDir := setup(t, true)
	path := filepath.Join(t.TempDir(), "out")

	tests := []struct {
		name string
		args []string
	}{
		{"missing output", []string{"--data-dir", dataDir}},
		{"bad format", []string{"--data-dir", dataDir, "--output", path, "--format", "xml"}},
		{"bad compression", []string{"--data-dir", dataDir, "--output", path, "--compression", "gzip"}},
		{"armor without recipient", []string{"--data-dir", dataDir, "--output", path, "--armor"}},
		{"bad recipient", []string{"--data-dir", dataDir, "--output", path, "--recipient", "not-a-key"}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := run(t, test.args...)
			requireCategory(t, err, cli.CategoryValidation)
		})
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("rejected export left a file behind (stat err %v)", err)
	}
}

func TestExport_RequiresLogin(t *testing.T) {
	dataDir := setup(t, false)
	_, err := run(t, "--data-dir", dataDir, "--output", filepath.Join(t.TempDir(), "out"))
	requireCategory(t, err, cli.CategoryForbidden)
}

func TestKeygen_RefusesOverwrite(t *testing.T) {
	keyPath := filepath.Join(t.TempDir(), "key.txt")
	if err := os.WriteFile(keyPath, []byte("keep me\n"), 0600); err != nil {
		t.Fatalf("writing placeholder: %v", err)
	}
	_, err := run(t, "keygen", "--output", keyPath)
	requireCategory(t, err, cli.CategoryConflict)
	if content := testutil.ReadFile(t, keyPath); content != "keep me\n" {
		t.Errorf("identity overwritten: %q", content)
	}
}

func TestKeygen_Stdout(t *testing.T) {
	output, err := run(t, "keygen")
	if err != nil {
		t.Fatalf("keygen: %v", err)
	}
	if !strings.Contains(output, "# public key: age1") || !strings.Contains(output, "AGE-SECRET-KEY-1") {
		t.Errorf("keygen output = %q", output)
	}
}
