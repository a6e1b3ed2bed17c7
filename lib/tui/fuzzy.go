// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"sort"
	"strings"
	"sync"
	"unicode"

	"github.com/charmbracelet/lipgloss"
	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
)

var initScoring sync.Once

// FuzzyResult is the outcome of matching one text against a pattern.
// Score is zero when the text does not match.
type FuzzyResult struct {
	Score     int
	Positions []int
}

// Matched reports whether the pattern matched.
func (result FuzzyResult) Matched() bool { return result.Score > 0 }

// FuzzyMatch runs fzf's v2 algorithm over text, case-insensitively.
// Positions are rune indexes into text in ascending order. slab may be
// nil; passing one reuses scratch memory across calls.
func FuzzyMatch(text string, pattern []rune, slab *util.Slab) FuzzyResult {
	if len(pattern) == 0 {
		return FuzzyResult{}
	}
	initScoring.Do(func() { algo.Init("default") })

	lowered := make([]rune, len(pattern))
	for index, r := range pattern {
		lowered[index] = unicode.ToLower(r)
	}

	chars := util.ToChars([]byte(text))
	result, positions := algo.FuzzyMatchV2(false, true, true, &chars, lowered, true, slab)
	if result.Start < 0 || result.Score <= 0 {
		return FuzzyResult{}
	}

	matched := FuzzyResult{Score: result.Score}
	if positions != nil {
		matched.Positions = append([]int(nil), *positions...)
		sort.Ints(matched.Positions)
	}
	return matched
}

// Highlight renders text with the runes at positions in style.
func Highlight(text string, positions []int, style lipgloss.Style) string {
	if len(positions) == 0 {
		return text
	}
	marked := make(map[int]bool, len(positions))
	for _, position := range positions {
		marked[position] = true
	}

	var builder strings.Builder
	for index, r := range []rune(text) {
		if marked[index] {
			builder.WriteString(style.Render(string(r)))
		} else {
			builder.WriteRune(r)
		}
	}
	return builder.String()
}
