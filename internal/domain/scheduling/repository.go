package scheduling

import (
	"context"
	"time"

	"github.com/legalconnect/schedule-service/internal/models"
)

// Repository is the persistence port of the scheduling engine. InTx runs
// fn against a transaction-bound Repository; the booking critical section
// (locked conflict scan + insert) lives inside it.
type Repository interface {
	// -------- Availability windows --------
	CreateWindow(
		ctx context.Context,
		w *models.AvailabilityWindow,
	) error

	CreateWindows(
		ctx context.Context,
		ws []models.AvailabilityWindow,
	) error

	GetWindow(
		ctx context.Context,
		id uint,
	) (*models.AvailabilityWindow, error)

	SaveWindow(
		ctx context.Context,
		w *models.AvailabilityWindow,
	) error

	DeleteWindow(
		ctx context.Context,
		id uint,
	) error

	ListWindows(
		ctx context.Context,
		lawyerID uint,
		activeOnly bool,
	) ([]models.AvailabilityWindow, error)

	ListActiveWindowsForDay(
		ctx context.Context,
		lawyerID uint,
		dayOfWeek int,
	) ([]models.AvailabilityWindow, error)

	// -------- Appointments (create / conflict) --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// ListActiveForDate returns the lawyer's appointments on date that
	// still occupy their slot (everything but CANCELLED and REJECTED).
	ListActiveForDate(
		ctx context.Context,
		lawyerID uint,
		date time.Time,
	) ([]models.Appointment, error)

	// ListActiveForDateLocked is the same scan with row locks held, for
	// use inside InTx.
	ListActiveForDateLocked(
		ctx context.Context,
		lawyerID uint,
		date time.Time,
	) ([]models.Appointment, error)

	// -------- Appointments (state change) --------
	GetAppointment(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	// SaveAppointment persists a mutation with an optimistic version
	// check; a concurrent transition surfaces as a conflict error.
	SaveAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Listings --------
	ListForCitizen(
		ctx context.Context,
		citizenID uint,
		status Status,
		limit int,
		offset int,
	) ([]models.Appointment, int64, error)

	ListForLawyer(
		ctx context.Context,
		lawyerID uint,
		status Status,
		limit int,
		offset int,
	) ([]models.Appointment, int64, error)

	// ListLiveForLawyerBetween returns PENDING/CONFIRMED appointments with
	// dates in [from, to], used by the window deletion guard.
	ListLiveForLawyerBetween(
		ctx context.Context,
		lawyerID uint,
		from time.Time,
		to time.Time,
	) ([]models.Appointment, error)

	// ListConfirmedOnDate feeds the reminder worker.
	ListConfirmedOnDate(
		ctx context.Context,
		date time.Time,
	) ([]models.Appointment, error)

	InTx(
		ctx context.Context,
		fn func(tx Repository) error,
	) error
}
