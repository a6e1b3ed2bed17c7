// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/muesli/termenv"
)

// HighlightCode syntax-highlights code in language (a chroma lexer name
// such as "json" or "markdown") when the renderer emits color. Without
// color, or when chroma cannot handle the input, code comes back
// unchanged.
func (styles Styles) HighlightCode(code, language string) string {
	if styles.renderer == nil || styles.renderer.ColorProfile() == termenv.Ascii {
		return code
	}
	var buffer strings.Builder
	if err := quick.Highlight(&buffer, code, language, "terminal256", "monokai"); err != nil {
		return code
	}
	return buffer.String()
}
