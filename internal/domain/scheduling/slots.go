package scheduling

// DefaultSlotMinutes applies when a slot query does not name a duration.
const DefaultSlotMinutes = 60

// GenerateSlots derives the bookable candidate slots for one day.
// A cursor steps through each window in duration increments and a slot is
// emitted while it still fits inside that window; slots never span two
// windows even when they touch. Any candidate overlapping a booked range
// is discarded.
func GenerateSlots(windows []TimeRange, booked []TimeRange, durationMin int) []TimeRange {
	if durationMin <= 0 {
		durationMin = DefaultSlotMinutes
	}

	var slots []TimeRange
	for _, w := range windows {
		for cur := w.Start; cur+durationMin <= w.End; cur += durationMin {
			candidate := TimeRange{Start: cur, End: cur + durationMin}

			conflict := false
			for _, b := range booked {
				if Overlaps(candidate, b) {
					conflict = true
					break
				}
			}

			if !conflict {
				slots = append(slots, candidate)
			}
		}
	}

	return slots
}
