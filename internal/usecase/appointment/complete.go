package appointment

import (
	"context"

	"github.com/legalconnect/schedule-service/internal/apperr"
	"github.com/legalconnect/schedule-service/internal/audit"
	"github.com/legalconnect/schedule-service/internal/domain/scheduling"
	"github.com/legalconnect/schedule-service/internal/models"
)

type CompleteAppointment struct {
	repo  scheduling.Repository
	audit *audit.Dispatcher
}

func NewCompleteAppointment(
	repo scheduling.Repository,
	auditDisp *audit.Dispatcher,
) *CompleteAppointment {
	return &CompleteAppointment{
		repo:  repo,
		audit: auditDisp,
	}
}

func (uc *CompleteAppointment) Execute(
	ctx context.Context,
	appointmentID uint,
	lawyerID uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	if ap.LawyerID != lawyerID {
		return nil, apperr.Forbidden("not_assigned_lawyer", "only the assigned lawyer can complete this appointment")
	}

	if err := scheduling.CanComplete(scheduling.Status(ap.Status)); err != nil {
		return nil, err
	}

	ap.Status = string(scheduling.StatusCompleted)

	if err := uc.repo.SaveAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:   &lawyerID,
		ActorRole: "lawyer",
		Action:    "appointment_completed",
		Entity:    "appointment",
		EntityID:  &ap.ID,
	})

	return ap, nil
}
