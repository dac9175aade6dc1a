package domain

import (
	"testing"
	"time"
)

func TestDayKey(t *testing.T) {
	t.Parallel()

	// The bucket is the UTC date regardless of the local zone.
	utc := time.Date(2026, 8, 29, 15, 30, 0, 0, time.UTC)
	if got := DayKey(utc); got != "2026-08-29" {
		t.Errorf("Expected 2026-08-29, got %s", got)
	}

	// Late evening east of UTC is already the next UTC-day's morning
	// on some clocks; only the UTC date matters.
	east := time.Date(2026, 8, 30, 1, 30, 0, 0, time.FixedZone("UTC+3", 3*60*60))
	if got := DayKey(east); got != "2026-08-29" {
		t.Errorf("Expected 2026-08-29, got %s", got)
	}

	west := time.Date(2026, 8, 29, 22, 0, 0, 0, time.FixedZone("UTC-5", -5*60*60))
	if got := DayKey(west); got != "2026-08-30" {
		t.Errorf("Expected 2026-08-30, got %s", got)
	}
}
