// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/bureau-foundation/tasktracker/cmd/tasktracker/cli"
	"github.com/bureau-foundation/tasktracker/lib/testutil"
	"github.com/bureau-foundation/tasktracker/lib/version"
)

// walkCommands visits every command in the tree with its path.
func walkCommands(command *cli.Command, path []string, visit func(*cli.Command, []string)) {
	current := make([]string, len(path)+1)
	copy(current, path)
	current[len(path)] = command.Name
	visit(command, current)
	for _, sub := range command.Subcommands {
		walkCommands(sub, current, visit)
	}
}

func TestCommandTree(t *testing.T) {
	walkCommands(Root(), nil, func(command *cli.Command, path []string) {
		name := strings.Join(path, " ")
		if len(path) > 1 && command.Summary == "" {
			t.Errorf("%s: missing Summary", name)
		}
		if command.Run == nil && len(command.Subcommands) == 0 {
			t.Errorf("%s: neither Run nor Subcommands", name)
		}
		seen := make(map[string]bool)
		for _, sub := range command.Subcommands {
			if seen[sub.Name] {
				t.Errorf("%s: duplicate subcommand %q", name, sub.Name)
			}
			seen[sub.Name] = true
		}
		// Binding panics or fails on an unsupported field type.
		if command.Params != nil {
			if flagSet := cli.FlagsFromParams(command.Name, command.Params()); flagSet == nil {
				t.Errorf("%s: Params bound no flag set", name)
			}
		}
	})
}

func TestVersion(t *testing.T) {
	output, err := testutil.CaptureStdout(t, func() error {
		return Root().ExecuteContext(context.Background(), []string{"version"})
	})
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(output, "tasktracker "+version.Info()) {
		t.Errorf("output = %q", output)
	}

	output, err = testutil.CaptureStdout(t, func() error {
		return Root().ExecuteContext(context.Background(), []string{"version", "--json"})
	})
	if err != nil {
		t.Fatalf("version --json: %v", err)
	}
	var details version.Details
	if err := json.Unmarshal([]byte(output), &details); err != nil {
		t.Fatalf("parsing %q: %v", output, err)
	}
	if details != version.Describe() {
		t.Errorf("details = %+v, want %+v", details, version.Describe())
	}
}

func TestVersionShort(t *testing.T) {
	output, err := testutil.CaptureStdout(t, func() error {
		return Root().ExecuteContext(context.Background(), []string{"version", "--short"})
	})
	if err != nil {
		t.Fatalf("version --short: %v", err)
	}
	if output != version.Version+"\n" {
		t.Errorf("output = %q, want %q", output, version.Version+"\n")
	}
}

func TestUnknownCommandSuggests(t *testing.T) {
	err := Root().ExecuteContext(context.Background(), []string{"tsak"})
	if err == nil || !strings.Contains(err.Error(), `did you mean "task"`) {
		t.Errorf("err = %v, want a suggestion for task", err)
	}
}
