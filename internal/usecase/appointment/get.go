package appointment

import (
	"context"

	"github.com/legalconnect/schedule-service/internal/apperr"
	"github.com/legalconnect/schedule-service/internal/domain/scheduling"
	"github.com/legalconnect/schedule-service/internal/dto"
	"github.com/legalconnect/schedule-service/internal/identity"
)

// GetAppointment returns one appointment enriched with counterpart
// contact details, scoped to the requesting party.
type GetAppointment struct {
	repo scheduling.Repository
	ids  identity.Client
}

func NewGetAppointment(repo scheduling.Repository, ids identity.Client) *GetAppointment {
	return &GetAppointment{repo: repo, ids: ids}
}

func (uc *GetAppointment) Execute(
	ctx context.Context,
	appointmentID uint,
	actorID uint,
	isLawyer bool,
) (*dto.AppointmentDetail, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	if isLawyer {
		if ap.LawyerID != actorID {
			return nil, apperr.Forbidden("not_assigned_lawyer", "this appointment belongs to another lawyer")
		}
	} else {
		if ap.CitizenID != actorID {
			return nil, apperr.Forbidden("not_appointment_owner", "this appointment belongs to another citizen")
		}
	}

	detail := &dto.AppointmentDetail{Appointment: *ap}

	if citizen, err := uc.ids.GetUser(ctx, ap.CitizenID); err == nil {
		detail.CitizenName = citizen.FullName
		detail.CitizenPhone = citizen.Phone
	}
	if lawyer, err := uc.ids.GetLawyer(ctx, ap.LawyerID); err == nil {
		detail.LawyerName = lawyer.FullName
	}

	return detail, nil
}
