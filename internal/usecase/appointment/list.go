package appointment

import (
	"context"

	"github.com/legalconnect/schedule-service/internal/apperr"
	"github.com/legalconnect/schedule-service/internal/domain/scheduling"
	"github.com/legalconnect/schedule-service/internal/models"
)

type ListInput struct {
	Status string
	Limit  int
	Offset int
}

type ListOutput struct {
	Appointments []models.Appointment `json:"appointments"`
	Total        int64                `json:"total"`
}

// ListAppointments serves both parties' history views, newest first.
type ListAppointments struct {
	repo scheduling.Repository
}

func NewListAppointments(repo scheduling.Repository) *ListAppointments {
	return &ListAppointments{repo: repo}
}

func (uc *ListAppointments) ForCitizen(
	ctx context.Context,
	citizenID uint,
	in ListInput,
) (*ListOutput, error) {

	status, err := parseStatusFilter(in.Status)
	if err != nil {
		return nil, err
	}

	apps, total, err := uc.repo.ListForCitizen(ctx, citizenID, status, in.Limit, in.Offset)
	if err != nil {
		return nil, err
	}
	return &ListOutput{Appointments: apps, Total: total}, nil
}

func (uc *ListAppointments) ForLawyer(
	ctx context.Context,
	lawyerID uint,
	in ListInput,
) (*ListOutput, error) {

	status, err := parseStatusFilter(in.Status)
	if err != nil {
		return nil, err
	}

	apps, total, err := uc.repo.ListForLawyer(ctx, lawyerID, status, in.Limit, in.Offset)
	if err != nil {
		return nil, err
	}
	return &ListOutput{Appointments: apps, Total: total}, nil
}

func parseStatusFilter(s string) (scheduling.Status, error) {
	if s == "" {
		return "", nil
	}
	status := scheduling.Status(s)
	if !status.Valid() {
		return "", apperr.Validation("invalid_status", "unknown appointment status filter")
	}
	return status, nil
}
