package scheduling

import (
	"fmt"
	"time"

	"github.com/legalconnect/schedule-service/internal/apperr"
)

// TimeRange is a half-open [Start, End) interval in minutes since midnight.
type TimeRange struct {
	Start int
	End   int
}

// ParseClock converts a "15:04" string to minutes since midnight.
func ParseClock(hm string) (int, error) {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return 0, apperr.Validation("invalid_time", fmt.Sprintf("invalid time %q, expected HH:mm", hm))
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatClock renders minutes since midnight back to "15:04".
func FormatClock(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// NewTimeRange parses and validates a start/end pair. Start must be
// strictly before end.
func NewTimeRange(start, end string) (TimeRange, error) {
	s, err := ParseClock(start)
	if err != nil {
		return TimeRange{}, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return TimeRange{}, err
	}
	if s >= e {
		return TimeRange{}, apperr.Validation("invalid_time_range", "start time must be before end time")
	}
	return TimeRange{Start: s, End: e}, nil
}

// RangeFrom builds the occupied range [start, start+duration).
func RangeFrom(start string, durationMin int) (TimeRange, error) {
	s, err := ParseClock(start)
	if err != nil {
		return TimeRange{}, err
	}
	if durationMin <= 0 {
		return TimeRange{}, apperr.Validation("invalid_duration", "duration must be positive")
	}
	return TimeRange{Start: s, End: s + durationMin}, nil
}

// Overlaps is the shared conflict predicate. Ranges are half-open, so a
// booking ending exactly when another begins is not a conflict.
func Overlaps(a, b TimeRange) bool {
	return a.Start < b.End && b.Start < a.End
}

// Contains reports whether o lies entirely inside r.
func (r TimeRange) Contains(o TimeRange) bool {
	return o.Start >= r.Start && o.End <= r.End
}

// ISOWeekday maps Go's Sunday-zero weekday to ISO numbering,
// 1 = Monday .. 7 = Sunday.
func ISOWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// ValidDayOfWeek checks the ISO range.
func ValidDayOfWeek(day int) bool {
	return day >= 1 && day <= 7
}
