// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package taskui implements the interactive task viewer behind
// "tasktracker task view".
//
// The viewer is a bubbletea [Model] with two panes: a task list on the
// left and a scrollable detail pane (task fields plus audit history)
// on the right. Tab switches keyboard focus between them.
//
// Keys:
//
//	j/k, ↑/↓     move the cursor or scroll the detail pane
//	g/G          jump to the top or bottom
//	/            fuzzy filter over code, name, and assignee
//	m            toggle "my tasks only"
//	a            advance the selected task to its next status (asks first)
//	r            reload from disk
//	q            quit
//
// All reads and writes go through a [Service], normally the
// lifecycle service, so the viewer enforces exactly the same
// transition rules and audit logging as the command-line operations.
package taskui
