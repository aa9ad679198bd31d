package appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/legalconnect/schedule-service/internal/apperr"
	"github.com/legalconnect/schedule-service/internal/audit"
	"github.com/legalconnect/schedule-service/internal/domain/scheduling"
	"github.com/legalconnect/schedule-service/internal/identity"
	"github.com/legalconnect/schedule-service/internal/lock"
	"github.com/legalconnect/schedule-service/internal/models"
	"github.com/legalconnect/schedule-service/internal/notification"
	"github.com/legalconnect/schedule-service/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateInput struct {
	CitizenID uint
	LawyerID  uint

	Date        string // YYYY-MM-DD
	Time        string // HH:mm
	DurationMin int

	ConsultationType string
	MeetingLocation  string
	Description      string
}

// ======================================================
// USE CASE
// ======================================================

// CreateAppointment is the booking coordinator. The keyed locker
// serializes bookings per (lawyer, date), which is what excludes two
// overlapping requests from both committing: the row-locked conflict
// scan inside the transaction cannot stop a concurrent insert when the
// predicate matches no rows yet. Do not drop the lock on the strength
// of the transaction alone.
type CreateAppointment struct {
	repo   scheduling.Repository
	ids    identity.Client
	locker lock.Locker
	notify *notification.Dispatcher
	audit  *audit.Dispatcher
}

func NewCreateAppointment(
	repo scheduling.Repository,
	ids identity.Client,
	locker lock.Locker,
	notify *notification.Dispatcher,
	auditDisp *audit.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:   repo,
		ids:    ids,
		locker: locker,
		notify: notify,
		audit:  auditDisp,
	}
}

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateInput,
) (*models.Appointment, error) {

	citizen, err := uc.ids.GetUser(ctx, in.CitizenID)
	if err != nil {
		return nil, err
	}

	lawyer, err := uc.ids.GetLawyer(ctx, in.LawyerID)
	if err != nil {
		return nil, err
	}

	date, err := time.ParseInLocation("2006-01-02", in.Date, timezone.Location(""))
	if err != nil {
		return nil, apperr.Validation("invalid_date", "invalid date, expected YYYY-MM-DD")
	}

	duration := in.DurationMin
	if duration <= 0 {
		duration = scheduling.DefaultSlotMinutes
	}

	requested, err := scheduling.RangeFrom(in.Time, duration)
	if err != nil {
		return nil, err
	}

	// The requested range must sit inside one of the lawyer's active
	// windows for that weekday.
	windows, err := uc.repo.ListActiveWindowsForDay(ctx, in.LawyerID, scheduling.ISOWeekday(date))
	if err != nil {
		return nil, err
	}

	within := false
	for _, w := range windows {
		wr, err := scheduling.NewTimeRange(w.StartTime, w.EndTime)
		if err != nil {
			continue
		}
		if wr.Contains(requested) {
			within = true
			break
		}
	}
	if !within {
		return nil, apperr.BusinessRule(
			"outside_working_hours",
			"the requested time is outside the lawyer's working hours, please pick another time",
		)
	}

	var created *models.Appointment

	err = uc.locker.WithLock(ctx, lock.BookingKey(in.LawyerID, date), func(lockCtx context.Context) error {
		return uc.repo.InTx(lockCtx, func(tx scheduling.Repository) error {

			existing, err := tx.ListActiveForDateLocked(lockCtx, in.LawyerID, date)
			if err != nil {
				return err
			}

			for _, other := range existing {
				occupied, err := scheduling.RangeFrom(other.StartTime, other.DurationMin)
				if err != nil {
					continue
				}
				if scheduling.Overlaps(requested, occupied) {
					return apperr.Conflict(
						"time_conflict",
						fmt.Sprintf("the slot overlaps an existing appointment (%s-%s)",
							other.StartTime, scheduling.FormatClock(occupied.End)),
					)
				}
			}

			ap := &models.Appointment{
				CitizenID:        in.CitizenID,
				LawyerID:         in.LawyerID,
				Date:             date,
				StartTime:        in.Time,
				DurationMin:      duration,
				ConsultationType: in.ConsultationType,
				MeetingLocation:  in.MeetingLocation,
				Description:      in.Description,
				Status:           string(scheduling.InitialStatus()),
			}

			if err := tx.CreateAppointment(lockCtx, ap); err != nil {
				return err
			}

			created = ap
			return nil
		})
	})

	if err != nil {
		if errors.Is(err, lock.ErrNotAcquired) {
			return nil, apperr.Conflict("slot_being_booked", "the slot is currently being booked, please retry")
		}
		return nil, err
	}

	uc.notify.Dispatch(bookingRequestedMail(lawyer.Email, citizen.FullName, created))

	uc.audit.Dispatch(audit.Event{
		ActorID:   &in.CitizenID,
		ActorRole: "citizen",
		Action:    "appointment_created",
		Entity:    "appointment",
		EntityID:  &created.ID,
	})

	return created, nil
}
