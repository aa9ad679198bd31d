package scheduling

import (
	"time"

	"github.com/legalconnect/schedule-service/internal/apperr"
)

// CancellationNotice is how far ahead of the start time a citizen may
// still self-cancel. Lawyers are not restricted.
const CancellationNotice = 2 * time.Hour

// CanCitizenCancel reports whether the 2-hour rule allows a citizen to
// cancel. An appointment that already started is not blocked by the hard
// rule; only the window strictly inside the notice period is.
func CanCitizenCancel(appointmentAt, now time.Time) bool {
	if !appointmentAt.After(now) {
		return true
	}
	return appointmentAt.Sub(now) >= CancellationNotice
}

// CitizenCancellationError is the uniform violation returned when the
// policy blocks a cancellation.
func CitizenCancellationError() error {
	return apperr.BusinessRule(
		"cancellation_window_closed",
		"appointments cannot be cancelled less than 2 hours before the scheduled time; please contact support directly",
	)
}
