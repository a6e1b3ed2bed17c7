// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package tui provides the terminal presentation pieces shared by the
// tracker's table output and its interactive viewer: the color theme,
// a color-profile aware style set, fuzzy matching for task filters,
// and ANSI-aware layout helpers (truncation, scrollbar, overlays).
//
// Nothing here touches the stores. Callers pass in already-loaded
// values and get back rendered strings.
package tui
