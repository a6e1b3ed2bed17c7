// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for the task tracker.
//
// Configuration comes from a single file named by the --config flag or,
// when the flag is absent, the TASKTRACKER_CONFIG environment variable.
// With neither set, [Default] is used unchanged. There is no directory
// search: the file in effect is always the one the operator named.
//
// Files are YAML. Files ending in .json or .jsonc are also accepted;
// comments and trailing commas are stripped before decoding.
//
// Variable expansion is performed on path fields after loading:
// ${HOME}, ${TASKTRACKER_DATA}, and ${VAR:-default} patterns are
// expanded. Relative store file names resolve under DataDir.
//
// Key exports:
//
//   - [Config] -- master struct with Files, Tasks, Log, Display
//   - [Default] -- returns a Config with built-in defaults
//   - [Load] and [LoadFile] -- the two entry points for loading
//
// This package depends on no other tracker packages.
package config
