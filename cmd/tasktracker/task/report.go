// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package task

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/bureau-foundation/tasktracker/cmd/tasktracker/cli"
	"github.com/bureau-foundation/tasktracker/lib/report"
)

type reportParams struct {
	cli.DataFlags
	HTML   bool   `json:"html"   flag:"html"     desc:"render the report as HTML"`
	Output string `json:"output" flag:"output,o" desc:"write the report to this file instead of stdout"`
}

func reportCommand() *cli.Command {
	var params reportParams

	return &cli.Command{
		Name:    "report",
		Summary: "Write a status report",
		Description: `Produce a Markdown report of every task grouped by status, with a
summary table of counts. Tasks assigned to you are marked "(you)".

On a terminal the Markdown is syntax-highlighted. With --html the
report is rendered to an HTML fragment instead.`,
		Usage: "tasktracker task report [flags]",
		Examples: []cli.Example{
			{
				Description: "Read the report in the terminal",
				Command:     "tasktracker task report",
			},
			{
				Description: "Publish an HTML version",
				Command:     "tasktracker task report --html --output report.html",
			},
		},
		Params: func() any { return &params },
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0])
			}
			env, user, err := openAs(&params.DataFlags, logger)
			if err != nil {
				return err
			}
			views, err := env.Service.ListAll(user)
			if err != nil {
				return cli.Classify(err)
			}

			built := report.Build(views, user, env.Clock.Now())
			markdown := report.Markdown(built)

			var output []byte
			if params.HTML {
				output, err = report.HTML(markdown)
				if err != nil {
					return cli.Internal("rendering HTML: %w", err)
				}
			} else {
				output = []byte(markdown)
			}

			if params.Output != "" {
				if err := os.WriteFile(params.Output, output, 0o644); err != nil {
					return cli.Internal("writing report: %w", err)
				}
				logger.Info("report written", "path", params.Output, "tasks", built.Total(), "html", params.HTML)
				return nil
			}

			if params.HTML {
				_, err = os.Stdout.Write(output)
				return err
			}
			styles, err := env.Styles(os.Stdout)
			if err != nil {
				return err
			}
			fmt.Print(styles.HighlightCode(markdown, "markdown"))
			return nil
		},
	}
}
