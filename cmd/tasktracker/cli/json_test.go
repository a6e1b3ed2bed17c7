// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"strings"
	"testing"

	"github.com/bureau-foundation/tasktracker/lib/testutil"
)

func TestEmitJSON(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		var output JSONOutput
		printed, err := testutil.CaptureStdout(t, func() error {
			done, err := output.EmitJSON([]string{"x"})
			if done {
				t.Error("EmitJSON handled output without --json")
			}
			return err
		})
		if err != nil || printed != "" {
			t.Errorf("printed %q, err %v", printed, err)
		}
	})

	t.Run("nil slice", func(t *testing.T) {
		output := JSONOutput{OutputJSON: true}
		var tasks []string
		printed, err := testutil.CaptureStdout(t, func() error {
			_, err := output.EmitJSON(tasks)
			return err
		})
		if err != nil {
			t.Fatalf("EmitJSON: %v", err)
		}
		if strings.TrimSpace(printed) != "[]" {
			t.Errorf("printed %q, want []", printed)
		}
	})

	t.Run("html kept", func(t *testing.T) {
		output := JSONOutput{OutputJSON: true}
		printed, err := testutil.CaptureStdout(t, func() error {
			_, err := output.EmitJSON(map[string]string{"name": "a<b&c"})
			return err
		})
		if err != nil {
			t.Fatalf("EmitJSON: %v", err)
		}
		if !strings.Contains(printed, `"a<b&c"`) {
			t.Errorf("printed %q, want the name unescaped", printed)
		}
	})

	t.Run("unencodable", func(t *testing.T) {
		output := JSONOutput{OutputJSON: true}
		_, err := testutil.CaptureStdout(t, func() error {
			_, err := output.EmitJSON(make(chan int))
			return err
		})
		var toolError *ToolError
		if !errors.As(err, &toolError) || toolError.Category != CategoryInternal {
			t.Errorf("err = %v, want an internal ToolError", err)
		}
	})
}
