package appointment

import (
	"context"

	"github.com/legalconnect/schedule-service/internal/apperr"
	"github.com/legalconnect/schedule-service/internal/audit"
	"github.com/legalconnect/schedule-service/internal/domain/scheduling"
	"github.com/legalconnect/schedule-service/internal/identity"
	"github.com/legalconnect/schedule-service/internal/models"
	"github.com/legalconnect/schedule-service/internal/notification"
)

type ConfirmAppointment struct {
	repo   scheduling.Repository
	ids    identity.Client
	notify *notification.Dispatcher
	audit  *audit.Dispatcher
}

func NewConfirmAppointment(
	repo scheduling.Repository,
	ids identity.Client,
	notify *notification.Dispatcher,
	auditDisp *audit.Dispatcher,
) *ConfirmAppointment {
	return &ConfirmAppointment{
		repo:   repo,
		ids:    ids,
		notify: notify,
		audit:  auditDisp,
	}
}

func (uc *ConfirmAppointment) Execute(
	ctx context.Context,
	appointmentID uint,
	lawyerID uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	if ap.LawyerID != lawyerID {
		return nil, apperr.Forbidden("not_assigned_lawyer", "only the assigned lawyer can confirm this appointment")
	}

	if err := scheduling.CanConfirm(scheduling.Status(ap.Status)); err != nil {
		return nil, err
	}

	ap.Status = string(scheduling.StatusConfirmed)

	if err := uc.repo.SaveAppointment(ctx, ap); err != nil {
		return nil, err
	}

	if citizen, err := uc.ids.GetUser(ctx, ap.CitizenID); err == nil {
		uc.notify.Dispatch(confirmedMail(citizen.Email, ap))
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:   &lawyerID,
		ActorRole: "lawyer",
		Action:    "appointment_confirmed",
		Entity:    "appointment",
		EntityID:  &ap.ID,
	})

	return ap, nil
}
