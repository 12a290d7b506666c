// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: pace/backoff.go
// Summary: Fixed backoff table used to slow the redraw cadence over time.

package pace

import (
	"fmt"
	"time"
)

// DefaultBackoffTable returns the standard redraw interval sequence: two fast
// frames for immediate responsiveness, then roughly doubling intervals down
// to a one second floor.
func DefaultBackoffTable() []time.Duration {
	return []time.Duration{
		16 * time.Millisecond,
		16 * time.Millisecond,
		33 * time.Millisecond,
		66 * time.Millisecond,
		133 * time.Millisecond,
		266 * time.Millisecond,
		533 * time.Millisecond,
		1000 * time.Millisecond,
	}
}

// backoffTable is an ordered, non-decreasing sequence of redraw intervals.
// The last entry is the permanent floor once the cursor saturates.
type backoffTable []time.Duration

func newBackoffTable(intervals []time.Duration) (backoffTable, error) {
	if len(intervals) == 0 {
		return nil, fmt.Errorf("backoff table cannot be empty")
	}
	for i, d := range intervals {
		if d <= 0 {
			return nil, fmt.Errorf("backoff interval %d must be positive, got %v", i, d)
		}
		if i > 0 && d < intervals[i-1] {
			return nil, fmt.Errorf("backoff table must be non-decreasing: interval %d (%v) < interval %d (%v)",
				i, d, i-1, intervals[i-1])
		}
	}
	t := make(backoffTable, len(intervals))
	copy(t, intervals)
	return t, nil
}

// interval returns the delay at cursor. An out-of-range cursor falls back to
// the floor entry; correct cursor logic never produces one, but a missing
// interval must never happen.
func (t backoffTable) interval(cursor int) time.Duration {
	if cursor < 0 {
		return t[0]
	}
	if cursor >= len(t) {
		return t[len(t)-1]
	}
	return t[cursor]
}

// advance returns the next cursor position, saturating at the last index.
func (t backoffTable) advance(cursor int) int {
	if cursor < len(t)-1 {
		return cursor + 1
	}
	return len(t) - 1
}

// saturated reports whether the cursor has reached the floor interval.
func (t backoffTable) saturated(cursor int) bool {
	return cursor >= len(t)-1
}
