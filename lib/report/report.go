// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"bytes"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/bureau-foundation/tasktracker/lib/schema"
)

// Section is the set of tasks currently in one status.
type Section struct {
	Status schema.Status
	Tasks  []schema.TaskView
}

// Report is a point-in-time grouping of task views by status.
type Report struct {
	GeneratedAt time.Time
	ViewerName  string
	Sections    []Section
}

// Build groups views by status in lifecycle order, keeping file order
// within each status. Every status gets a section, empty or not.
func Build(views []schema.TaskView, viewer schema.User, generatedAt time.Time) Report {
	report := Report{
		GeneratedAt: generatedAt,
		ViewerName:  viewer.Name,
	}
	for _, status := range []schema.Status{schema.StatusUnstarted, schema.StatusInProgress, schema.StatusDone} {
		section := Section{Status: status}
		for _, view := range views {
			if view.Task.Status == status {
				section.Tasks = append(section.Tasks, view)
			}
		}
		report.Sections = append(report.Sections, section)
	}
	return report
}

// Total returns the number of tasks across all sections.
func (r Report) Total() int {
	total := 0
	for _, section := range r.Sections {
		total += len(section.Tasks)
	}
	return total
}

// Markdown renders r.
func Markdown(r Report) string {
	var builder strings.Builder

	builder.WriteString("# Task report\n\n")
	fmt.Fprintf(&builder, "Generated %s", r.GeneratedAt.Format(schema.DateLayout))
	if r.ViewerName != "" {
		fmt.Fprintf(&builder, " for %s", escapeCell(r.ViewerName))
	}
	fmt.Fprintf(&builder, ". %d tasks in total.\n\n", r.Total())

	builder.WriteString("| Status | Tasks |\n|---|---:|\n")
	for _, section := range r.Sections {
		fmt.Fprintf(&builder, "| %s | %d |\n", section.Status.Label(), len(section.Tasks))
	}

	for _, section := range r.Sections {
		fmt.Fprintf(&builder, "\n## %s\n\n", section.Status.Label())
		if len(section.Tasks) == 0 {
			builder.WriteString("_No tasks._\n")
			continue
		}
		builder.WriteString("| Code | Name | Assignee |\n|---:|---|---|\n")
		for _, view := range section.Tasks {
			fmt.Fprintf(&builder, "| %d | %s | %s |\n",
				view.Task.Code, escapeCell(view.Task.Name), assigneeCell(view))
		}
	}
	return builder.String()
}

func assigneeCell(view schema.TaskView) string {
	switch {
	case view.AssigneeName == "":
		return fmt.Sprintf("_user %d (missing)_", view.Task.AssigneeCode)
	case view.AssignedToViewer:
		return escapeCell(view.AssigneeName) + " (you)"
	default:
		return escapeCell(view.AssigneeName)
	}
}

// escapeCell keeps user text from breaking table structure or being
// read as inline markup.
var cellEscaper = strings.NewReplacer(
	`\`, `\\`,
	`|`, `\|`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"<", "&lt;",
	"\n", " ",
	"\r", "",
)

func escapeCell(text string) string {
	return cellEscaper.Replace(text)
}

var (
	markdownInstance goldmark.Markdown
	markdownOnce     sync.Once
)

func markdownConverter() goldmark.Markdown {
	markdownOnce.Do(func() {
		markdownInstance = goldmark.New(goldmark.WithExtensions(extension.GFM))
	})
	return markdownInstance
}

// HTML converts Markdown to an HTML fragment. Raw HTML in the input is
// omitted by goldmark's default (unsafe-off) renderer.
func HTML(markdown string) ([]byte, error) {
	var buffer bytes.Buffer
	if err := markdownConverter().Convert([]byte(markdown), &buffer); err != nil {
		return nil, fmt.Errorf("rendering report HTML: %w", err)
	}
	return buffer.Bytes(), nil
}
