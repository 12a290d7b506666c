// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: pace/backoff_test.go
// Summary: Tests for the backoff table.

package pace

import (
	"testing"
	"time"
)

func TestBackoffTable_RejectsEmpty(t *testing.T) {
	if _, err := newBackoffTable(nil); err == nil {
		t.Fatal("expected error for empty table")
	}
}

func TestBackoffTable_RejectsNonPositive(t *testing.T) {
	_, err := newBackoffTable([]time.Duration{16 * time.Millisecond, 0})
	if err == nil {
		t.Fatal("expected error for non-positive interval")
	}
}

func TestBackoffTable_RejectsDecreasing(t *testing.T) {
	_, err := newBackoffTable([]time.Duration{33 * time.Millisecond, 16 * time.Millisecond})
	if err == nil {
		t.Fatal("expected error for decreasing table")
	}
}

func TestBackoffTable_AllowsRepeats(t *testing.T) {
	tbl, err := newBackoffTable([]time.Duration{16 * time.Millisecond, 16 * time.Millisecond})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := tbl.interval(1); got != 16*time.Millisecond {
		t.Errorf("expected 16ms, got %v", got)
	}
}

func TestBackoffTable_IntervalClampsToFloor(t *testing.T) {
	tbl, err := newBackoffTable([]time.Duration{10 * time.Millisecond, 20 * time.Millisecond})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// One past the last valid index falls back to the floor interval.
	if got := tbl.interval(2); got != 20*time.Millisecond {
		t.Errorf("expected floor 20ms for out-of-range cursor, got %v", got)
	}
	if got := tbl.interval(100); got != 20*time.Millisecond {
		t.Errorf("expected floor 20ms for far out-of-range cursor, got %v", got)
	}
	if got := tbl.interval(-1); got != 10*time.Millisecond {
		t.Errorf("expected first interval for negative cursor, got %v", got)
	}
}

func TestBackoffTable_AdvanceSaturates(t *testing.T) {
	tbl, err := newBackoffTable([]time.Duration{10 * time.Millisecond, 20 * time.Millisecond, 40 * time.Millisecond})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cursor := 0
	for i := 0; i < 10; i++ {
		cursor = tbl.advance(cursor)
	}
	if cursor != 2 {
		t.Errorf("expected cursor saturated at 2, got %d", cursor)
	}
	if !tbl.saturated(cursor) {
		t.Error("expected saturated cursor")
	}
	if tbl.saturated(0) {
		t.Error("cursor 0 should not be saturated")
	}
}

func TestBackoffTable_SingleEntry(t *testing.T) {
	tbl, err := newBackoffTable([]time.Duration{time.Second})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := tbl.advance(0); got != 0 {
		t.Errorf("expected single-entry cursor to stay 0, got %d", got)
	}
	if !tbl.saturated(0) {
		t.Error("single-entry table starts saturated")
	}
}

func TestDefaultBackoffTable(t *testing.T) {
	table := DefaultBackoffTable()
	if len(table) != 8 {
		t.Fatalf("expected 8 entries, got %d", len(table))
	}
	if table[0] != 16*time.Millisecond {
		t.Errorf("expected fastest interval 16ms, got %v", table[0])
	}
	if table[len(table)-1] != time.Second {
		t.Errorf("expected floor interval 1s, got %v", table[len(table)-1])
	}
	for i := 1; i < len(table); i++ {
		if table[i] < table[i-1] {
			t.Errorf("default table decreases at %d: %v < %v", i, table[i], table[i-1])
		}
	}
}
