// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import "time"

// Clock abstracts reading the current time. Every production function
// that would call time.Now should accept a Clock parameter (or be a
// method on a struct with a Clock field) instead.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// Today returns midnight of the current calendar day in the location
// of c.Now().
func Today(c Clock) time.Time {
	now := c.Now()
	year, month, day := now.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, now.Location())
}
