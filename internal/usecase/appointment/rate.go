package appointment

import (
	"context"

	"github.com/legalconnect/schedule-service/internal/apperr"
	"github.com/legalconnect/schedule-service/internal/audit"
	"github.com/legalconnect/schedule-service/internal/domain/scheduling"
	"github.com/legalconnect/schedule-service/internal/models"
	"github.com/legalconnect/schedule-service/internal/timezone"
)

type RateAppointment struct {
	repo  scheduling.Repository
	audit *audit.Dispatcher
}

func NewRateAppointment(
	repo scheduling.Repository,
	auditDisp *audit.Dispatcher,
) *RateAppointment {
	return &RateAppointment{
		repo:  repo,
		audit: auditDisp,
	}
}

func (uc *RateAppointment) Execute(
	ctx context.Context,
	appointmentID uint,
	citizenID uint,
	rating int,
	comment string,
) (*models.Appointment, error) {

	if rating < 1 || rating > 5 {
		return nil, apperr.Validation("invalid_rating", "rating must be between 1 and 5")
	}

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	if ap.CitizenID != citizenID {
		return nil, apperr.Forbidden("not_appointment_owner", "only the citizen who booked can rate this appointment")
	}

	if err := scheduling.CanRate(scheduling.Status(ap.Status)); err != nil {
		return nil, err
	}

	now := timezone.Now()
	ap.Rating = &rating
	ap.ReviewComment = comment
	ap.ReviewedAt = &now

	if err := uc.repo.SaveAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:   &citizenID,
		ActorRole: "citizen",
		Action:    "appointment_rated",
		Entity:    "appointment",
		EntityID:  &ap.ID,
		Metadata:  map[string]any{"rating": rating},
	})

	return ap, nil
}
