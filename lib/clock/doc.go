// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable time source for testability.
//
// Production code accepts a [Clock] instead of calling time.Now
// directly. [Real] returns the standard library behavior; [Fake]
// returns a clock that stands still until the test moves it with
// [FakeClock.Set] or [FakeClock.Advance].
//
// # Wiring Pattern
//
//	service := lifecycle.New(lifecycle.Config{Clock: clock.Real(), ...})
//
// In tests:
//
//	fake := clock.Fake(time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC))
//	service := lifecycle.New(lifecycle.Config{Clock: fake, ...})
//	fake.Advance(24 * time.Hour)
//
// [Today] truncates the clock's current instant to a calendar date in
// the clock's location, which is the granularity the audit log records.
package clock
