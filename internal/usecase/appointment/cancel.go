package appointment

import (
	"context"

	"github.com/legalconnect/schedule-service/internal/apperr"
	"github.com/legalconnect/schedule-service/internal/audit"
	"github.com/legalconnect/schedule-service/internal/domain/scheduling"
	"github.com/legalconnect/schedule-service/internal/identity"
	"github.com/legalconnect/schedule-service/internal/models"
	"github.com/legalconnect/schedule-service/internal/notification"
	"github.com/legalconnect/schedule-service/internal/timezone"
)

type CancelAppointment struct {
	repo   scheduling.Repository
	ids    identity.Client
	notify *notification.Dispatcher
	audit  *audit.Dispatcher
}

func NewCancelAppointment(
	repo scheduling.Repository,
	ids identity.Client,
	notify *notification.Dispatcher,
	auditDisp *audit.Dispatcher,
) *CancelAppointment {
	return &CancelAppointment{
		repo:   repo,
		ids:    ids,
		notify: notify,
		audit:  auditDisp,
	}
}

// Execute cancels on behalf of either party. Lawyers may cancel any time;
// citizens are bound by the 2-hour notice policy.
func (uc *CancelAppointment) Execute(
	ctx context.Context,
	appointmentID uint,
	actorID uint,
	isLawyer bool,
	reason string,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	if isLawyer {
		if ap.LawyerID != actorID {
			return nil, apperr.Forbidden("not_assigned_lawyer", "only the assigned lawyer can cancel this appointment")
		}
	} else {
		if ap.CitizenID != actorID {
			return nil, apperr.Forbidden("not_appointment_owner", "only the citizen who booked can cancel this appointment")
		}
	}

	if err := scheduling.CanCancel(scheduling.Status(ap.Status)); err != nil {
		return nil, err
	}

	if !isLawyer {
		loc := timezone.Location("")
		if !scheduling.CanCitizenCancel(ap.StartsAt(loc), timezone.Now()) {
			return nil, scheduling.CitizenCancellationError()
		}
	}

	ap.Status = string(scheduling.StatusCancelled)
	ap.CancellationReason = reason

	if err := uc.repo.SaveAppointment(ctx, ap); err != nil {
		return nil, err
	}

	// Tell the counterpart, not the actor.
	if isLawyer {
		if citizen, err := uc.ids.GetUser(ctx, ap.CitizenID); err == nil {
			uc.notify.Dispatch(cancelledMail(citizen.Email, ap))
		}
	} else {
		if lawyer, err := uc.ids.GetLawyer(ctx, ap.LawyerID); err == nil {
			uc.notify.Dispatch(cancelledMail(lawyer.Email, ap))
		}
	}

	role := "citizen"
	if isLawyer {
		role = "lawyer"
	}
	uc.audit.Dispatch(audit.Event{
		ActorID:   &actorID,
		ActorRole: role,
		Action:    "appointment_cancelled",
		Entity:    "appointment",
		EntityID:  &ap.ID,
	})

	return ap, nil
}
