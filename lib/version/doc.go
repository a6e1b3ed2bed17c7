// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package version provides build version information for the
// tasktracker binary.
//
// Four package-level variables are injected at build time via
// -ldflags -X:
//
//	go build -ldflags "-X github.com/bureau-foundation/tasktracker/lib/version.GitCommit=$(git rev-parse --short HEAD)"
//
// When they are not injected, the VCS stamp recorded by the Go
// toolchain fills GitCommit, GitDirty, and BuildTime where available.
// Version stays "0.1.0-dev" until set for a release.
package version
