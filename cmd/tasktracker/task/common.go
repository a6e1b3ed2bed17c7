// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package task

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/bureau-foundation/tasktracker/cmd/tasktracker/cli"
	"github.com/bureau-foundation/tasktracker/lib/schema"
	"github.com/bureau-foundation/tasktracker/lib/tui"
)

// openAs opens the environment and resolves the logged-in user.
func openAs(flags *cli.DataFlags, logger *slog.Logger) (*cli.Environment, schema.User, error) {
	env, err := flags.Open(logger)
	if err != nil {
		return nil, schema.User{}, err
	}
	user, err := env.CurrentUser()
	if err != nil {
		return nil, schema.User{}, err
	}
	return env, user, nil
}

// parseCode parses the single positional task code argument.
func parseCode(args []string, usage string) (int, error) {
	if len(args) == 0 {
		return 0, cli.Validation("task code is required\n\nUsage: %s", usage)
	}
	if len(args) > 1 {
		return 0, cli.Validation("expected 1 positional argument, got %d", len(args))
	}
	code, err := strconv.Atoi(args[0])
	if err != nil || code < 0 {
		return 0, cli.Validation("task code must be a non-negative integer, got %q", args[0])
	}
	return code, nil
}

// userNames maps every user code to its name for display of audit
// actors.
func userNames(env *cli.Environment) (map[int]string, error) {
	users, err := env.Users.All()
	if err != nil {
		return nil, cli.Classify(err)
	}
	names := make(map[int]string, len(users))
	for _, user := range users {
		names[user.Code] = user.Name
	}
	return names, nil
}

func actorName(names map[int]string, code int) string {
	if name, ok := names[code]; ok {
		return name
	}
	return fmt.Sprintf("user %d", code)
}

// writeTable writes rows under header with columns padded to their
// widest cell. Widths are measured in terminal cells so styled cells
// line up.
func writeTable(w io.Writer, headerStyle lipgloss.Style, header []string, rows [][]string) error {
	widths := make([]int, len(header))
	for column, title := range header {
		widths[column] = ansi.StringWidth(title)
	}
	for _, row := range rows {
		for column, cell := range row {
			widths[column] = max(widths[column], ansi.StringWidth(cell))
		}
	}

	writeLine := func(cells []string) error {
		var builder strings.Builder
		for column, cell := range cells {
			if column == len(cells)-1 {
				builder.WriteString(cell)
				break
			}
			builder.WriteString(tui.PadRight(cell, widths[column]))
			builder.WriteString("   ")
		}
		builder.WriteByte('\n')
		_, err := io.WriteString(w, builder.String())
		return err
	}

	styled := make([]string, len(header))
	for column, title := range header {
		styled[column] = tui.PadRight(headerStyle.Render(title), widths[column])
	}
	if err := writeLine(styled); err != nil {
		return err
	}
	for _, row := range rows {
		if err := writeLine(row); err != nil {
			return err
		}
	}
	return nil
}
