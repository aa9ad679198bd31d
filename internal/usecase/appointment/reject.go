package appointment

import (
	"context"
	"strings"

	"github.com/legalconnect/schedule-service/internal/apperr"
	"github.com/legalconnect/schedule-service/internal/audit"
	"github.com/legalconnect/schedule-service/internal/domain/scheduling"
	"github.com/legalconnect/schedule-service/internal/identity"
	"github.com/legalconnect/schedule-service/internal/models"
	"github.com/legalconnect/schedule-service/internal/notification"
)

type RejectAppointment struct {
	repo   scheduling.Repository
	ids    identity.Client
	notify *notification.Dispatcher
	audit  *audit.Dispatcher
}

func NewRejectAppointment(
	repo scheduling.Repository,
	ids identity.Client,
	notify *notification.Dispatcher,
	auditDisp *audit.Dispatcher,
) *RejectAppointment {
	return &RejectAppointment{
		repo:   repo,
		ids:    ids,
		notify: notify,
		audit:  auditDisp,
	}
}

func (uc *RejectAppointment) Execute(
	ctx context.Context,
	appointmentID uint,
	lawyerID uint,
	reason string,
) (*models.Appointment, error) {

	if strings.TrimSpace(reason) == "" {
		return nil, apperr.Validation("reason_required", "a rejection reason is required")
	}

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	if ap.LawyerID != lawyerID {
		return nil, apperr.Forbidden("not_assigned_lawyer", "only the assigned lawyer can reject this appointment")
	}

	if err := scheduling.CanReject(scheduling.Status(ap.Status)); err != nil {
		return nil, err
	}

	ap.Status = string(scheduling.StatusRejected)
	ap.RejectionReason = reason

	if err := uc.repo.SaveAppointment(ctx, ap); err != nil {
		return nil, err
	}

	if citizen, err := uc.ids.GetUser(ctx, ap.CitizenID); err == nil {
		uc.notify.Dispatch(rejectedMail(citizen.Email, ap))
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:   &lawyerID,
		ActorRole: "lawyer",
		Action:    "appointment_rejected",
		Entity:    "appointment",
		EntityID:  &ap.ID,
	})

	return ap, nil
}
