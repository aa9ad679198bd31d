package timezone

import (
	"testing"
	"time"
)

func TestLocationFallsBackToDefault(t *testing.T) {
	loc := Location("Mars/Olympus")
	if loc.String() != DefaultTimezone {
		t.Errorf("Location = %s, want %s", loc, DefaultTimezone)
	}
	if Location("UTC").String() != "UTC" {
		t.Error("a valid timezone should be honored")
	}
}

func TestStartOfDay(t *testing.T) {
	loc := Location(DefaultTimezone)

	// 01:30 local is still before UTC midnight; the calendar date must
	// not shift back a day.
	early := time.Date(2026, 9, 1, 1, 30, 0, 0, loc)

	got := StartOfDay(early)
	want := time.Date(2026, 9, 1, 0, 0, 0, 0, loc)
	if !got.Equal(want) {
		t.Errorf("StartOfDay(%v) = %v, want %v", early, got, want)
	}
	if got.Day() != 1 {
		t.Errorf("StartOfDay landed on day %d, want 1", got.Day())
	}
}
