// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package account

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bureau-foundation/tasktracker/cmd/tasktracker/cli"
	"github.com/bureau-foundation/tasktracker/lib/config"
	"github.com/bureau-foundation/tasktracker/lib/credential"
	"github.com/bureau-foundation/tasktracker/lib/testutil"
)

// setup returns a data directory with one plain and one bcrypt user,
// and the session path the commands will use.
func setup(t *testing.T) (string, string) {
	t.Helper()
	t.Setenv(config.EnvConfigPath, "")
	sessionPath := filepath.Join(t.TempDir(), "session.json")
	t.Setenv(cli.EnvSessionFile, sessionPath)

	hashed, err := credential.Hash("s3cret")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	dataDir := testutil.DataDir(t, testutil.Fixture{Users: []string{
		"1,Ann,ann@example.com,pw1",
		"2,Bob,bob@example.com," + hashed,
	}})
	return dataDir, sessionPath
}

func writePasswordFile(t *testing.T, password string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "password")
	if err := os.WriteFile(path, []byte(password+"\n"), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func execute(t *testing.T, command *cli.Command, args ...string) (string, error) {
	t.Helper()
	return testutil.CaptureStdout(t, func() error {
		return command.ExecuteContext(context.Background(), args)
	})
}

func requireCategory(t *testing.T, err error, want cli.ErrorCategory) {
	t.Helper()
	var toolError *cli.ToolError
	if !errors.As(err, &toolError) || toolError.Category != want {
		t.Fatalf("err = %v, want a %s ToolError", err, want)
	}
}

func TestLoginWhoamiLogout(t *testing.T) {
	dataDir, sessionPath := setup(t)

	_, err := execute(t, LoginCommand(),
		"--email", "ann@example.com",
		"--password-file", writePasswordFile(t, "pw1"),
		"--data-dir", dataDir)
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	session, err := cli.LoadSessionFrom(sessionPath)
	if err != nil {
		t.Fatalf("LoadSessionFrom: %v", err)
	}
	if session.UserCode != 1 {
		t.Errorf("session user = %d, want 1", session.UserCode)
	}

	output, err := execute(t, WhoAmICommand(), "--data-dir", dataDir)
	if err != nil {
		t.Fatalf("whoami: %v", err)
	}
	if output != "Ann <ann@example.com> (user 1)\n" {
		t.Errorf("whoami = %q", output)
	}

	output, err = execute(t, WhoAmICommand(), "--data-dir", dataDir, "--json")
	if err != nil {
		t.Fatalf("whoami --json: %v", err)
	}
	var result map[string]any
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Fatalf("decoding %q: %v", output, err)
	}
	if result["email"] != "ann@example.com" || result["session"] != sessionPath {
		t.Errorf("whoami --json = %v", result)
	}
	if _, present := result["password"]; present {
		t.Error("whoami --json exposes the password")
	}

	if _, err := execute(t, LogoutCommand()); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := os.Stat(sessionPath); !os.IsNotExist(err) {
		t.Errorf("session file still present after logout: %v", err)
	}
	if _, err := execute(t, LogoutCommand()); err != nil {
		t.Errorf("second logout: %v", err)
	}

	_, err = execute(t, WhoAmICommand(), "--data-dir", dataDir)
	requireCategory(t, err, cli.CategoryForbidden)
}

func TestLogin_BcryptUserFromStdin(t *testing.T) {
	dataDir, sessionPath := setup(t)

	err := testutil.WithStdin(t, "s3cret\n", func() error {
		_, err := execute(t, LoginCommand(),
			"--email", "bob@example.com", "--password-file", "-", "--data-dir", dataDir)
		return err
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	session, err := cli.LoadSessionFrom(sessionPath)
	if err != nil {
		t.Fatalf("LoadSessionFrom: %v", err)
	}
	if session.UserCode != 2 {
		t.Errorf("session user = %d, want 2", session.UserCode)
	}
}

func TestLogin_Rejected(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"wrong password", "ann@example.com", "nope"},
		{"unknown email", "zed@example.com", "pw1"},
		{"case differs", "ANN@example.com", "pw1"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			dataDir, sessionPath := setup(t)
			_, err := execute(t, LoginCommand(),
				"--email", test.email,
				"--password-file", writePasswordFile(t, test.password),
				"--data-dir", dataDir)
			requireCategory(t, err, cli.CategoryForbidden)
			if _, statErr := os.Stat(sessionPath); !os.IsNotExist(statErr) {
				t.Error("session saved for a rejected login")
			}
		})
	}
}

func TestLogin_RequiresEmail(t *testing.T) {
	dataDir, _ := setup(t)
	_, err := execute(t, LoginCommand(), "--data-dir", dataDir)
	requireCategory(t, err, cli.CategoryValidation)
}

func TestLogin_MissingUsersFile(t *testing.T) {
	_, _ = setup(t)
	_, err := execute(t, LoginCommand(),
		"--email", "ann@example.com",
		"--password-file", writePasswordFile(t, "pw1"),
		"--data-dir", t.TempDir())
	requireCategory(t, err, cli.CategoryInternal)
	if !cli.IsStorageError(err) {
		t.Errorf("err = %v, want a storage error", err)
	}
}

func TestHashPassword(t *testing.T) {
	output, err := execute(t, HashPasswordCommand(), "--password-file", writePasswordFile(t, "hunter2"))
	if err != nil {
		t.Fatalf("hash-password: %v", err)
	}
	hash := strings.TrimSpace(output)
	if !credential.IsHashed(hash) {
		t.Fatalf("output %q is not a bcrypt hash", hash)
	}
	if !credential.Verify(hash, "hunter2") {
		t.Error("hash does not verify against the original password")
	}
}
