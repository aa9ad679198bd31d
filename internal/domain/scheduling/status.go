package scheduling

import "github.com/legalconnect/schedule-service/internal/apperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusRejected  Status = "REJECTED"
	StatusCancelled Status = "CANCELLED"
	StatusCompleted Status = "COMPLETED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusRejected, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

func (s Status) Terminal() bool {
	switch s {
	case StatusRejected, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

func InitialStatus() Status {
	return StatusPending
}

// ===============================
// Transition rules
// ===============================

// CanConfirm: only a PENDING appointment may be confirmed.
func CanConfirm(current Status) error {
	if current != StatusPending {
		return apperr.BusinessRule("invalid_state", "only a pending appointment can be confirmed")
	}
	return nil
}

// CanReject: only a PENDING appointment may be rejected.
func CanReject(current Status) error {
	if current != StatusPending {
		return apperr.BusinessRule("invalid_state", "only a pending appointment can be rejected")
	}
	return nil
}

// CanCancel: cancellation is allowed from PENDING or CONFIRMED only.
// Terminal states stay terminal.
func CanCancel(current Status) error {
	if current != StatusPending && current != StatusConfirmed {
		return apperr.BusinessRule("invalid_state", "the appointment can no longer be cancelled")
	}
	return nil
}

// CanComplete: only a CONFIRMED appointment may be completed.
func CanComplete(current Status) error {
	if current != StatusConfirmed {
		return apperr.BusinessRule("invalid_state", "only a confirmed appointment can be completed")
	}
	return nil
}

// CanRate: a rating attaches only once the appointment is COMPLETED.
func CanRate(current Status) error {
	if current != StatusCompleted {
		return apperr.BusinessRule("not_completed", "only a completed appointment can be rated")
	}
	return nil
}
