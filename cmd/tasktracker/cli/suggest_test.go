// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"testing"

	"github.com/spf13/pflag"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"list", "list", 0},
		{"lst", "list", 1},
		{"advnace", "advance", 2},
		{"", "show", 4},
		{"kitten", "sitting", 3},
	}
	for _, test := range tests {
		if got := levenshtein(test.a, test.b); got != test.want {
			t.Errorf("levenshtein(%q, %q) = %d, want %d", test.a, test.b, got, test.want)
		}
	}
}

func TestSuggestCommand(t *testing.T) {
	commands := []*Command{{Name: "create"}, {Name: "advance"}, {Name: "history"}}

	if got := suggestCommand("advence", commands); got != "advance" {
		t.Errorf("suggestCommand(advence) = %q, want advance", got)
	}
	if got := suggestCommand("export", commands); got != "" {
		t.Errorf("suggestCommand(export) = %q, want no suggestion", got)
	}
}

func TestSuggestFlag(t *testing.T) {
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flagSet.String("assignee", "", "")
	flagSet.BoolP("mine", "m", false, "")

	if got := suggestFlag([]string{"7", "--asignee=3"}, flagSet); got != "--assignee" {
		t.Errorf("suggestFlag = %q, want --assignee", got)
	}
	if got := suggestFlag([]string{"-m", "--zzzzzzzz"}, flagSet); got != "" {
		t.Errorf("suggestFlag = %q, want no suggestion", got)
	}
}
