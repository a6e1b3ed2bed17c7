// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package report renders a status report of all tasks as GitHub
// Flavored Markdown, and converts that Markdown to HTML.
//
// The Markdown form is meant to be pasted into a ticket or chat; the
// HTML form is a standalone fragment for mail or a static page.
package report
