package availability

import (
	"context"
	"fmt"

	"github.com/legalconnect/schedule-service/internal/apperr"
	"github.com/legalconnect/schedule-service/internal/audit"
	"github.com/legalconnect/schedule-service/internal/domain/scheduling"
	"github.com/legalconnect/schedule-service/internal/models"
	"github.com/legalconnect/schedule-service/internal/timezone"
)

type UpdateWindowInput struct {
	WindowID  uint
	LawyerID  uint
	DayOfWeek int
	StartTime string
	EndTime   string
	Active    *bool
	Timezone  string
}

type UpdateWindow struct {
	repo  scheduling.Repository
	audit *audit.Dispatcher
}

func NewUpdateWindow(
	repo scheduling.Repository,
	audit *audit.Dispatcher,
) *UpdateWindow {
	return &UpdateWindow{
		repo:  repo,
		audit: audit,
	}
}

func (uc *UpdateWindow) Execute(
	ctx context.Context,
	in UpdateWindowInput,
) (*models.AvailabilityWindow, error) {

	w, err := uc.repo.GetWindow(ctx, in.WindowID)
	if err != nil {
		return nil, err
	}

	if w.LawyerID != in.LawyerID {
		return nil, apperr.Forbidden("not_window_owner", "you may only modify your own availability")
	}

	if !scheduling.ValidDayOfWeek(in.DayOfWeek) {
		return nil, apperr.Validation("invalid_day_of_week", "day of week must be between 1 (Monday) and 7 (Sunday)")
	}

	rng, err := scheduling.NewTimeRange(in.StartTime, in.EndTime)
	if err != nil {
		return nil, err
	}

	if err := ensureNoWindowOverlap(ctx, uc.repo, in.LawyerID, in.DayOfWeek, rng, w.ID); err != nil {
		return nil, err
	}

	w.DayOfWeek = in.DayOfWeek
	w.StartTime = in.StartTime
	w.EndTime = in.EndTime
	if in.Active != nil {
		w.Active = *in.Active
	}
	if in.Timezone != "" {
		if !timezone.IsValid(in.Timezone) {
			return nil, apperr.Validation("invalid_timezone", fmt.Sprintf("unknown timezone %q", in.Timezone))
		}
		w.Timezone = in.Timezone
	}

	if err := uc.repo.SaveWindow(ctx, w); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:   &in.LawyerID,
		ActorRole: "lawyer",
		Action:    "availability_updated",
		Entity:    "availability_window",
		EntityID:  &w.ID,
	})

	return w, nil
}
