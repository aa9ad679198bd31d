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

// ======================================================
// INPUT
// ======================================================

type CreateWindowInput struct {
	LawyerID  uint
	DayOfWeek int
	StartTime string
	EndTime   string
	Active    *bool
	Timezone  string
}

// ======================================================
// USE CASE
// ======================================================

type CreateWindow struct {
	repo  scheduling.Repository
	audit *audit.Dispatcher
}

func NewCreateWindow(
	repo scheduling.Repository,
	audit *audit.Dispatcher,
) *CreateWindow {
	return &CreateWindow{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CreateWindow) Execute(
	ctx context.Context,
	in CreateWindowInput,
) (*models.AvailabilityWindow, error) {

	if !scheduling.ValidDayOfWeek(in.DayOfWeek) {
		return nil, apperr.Validation("invalid_day_of_week", "day of week must be between 1 (Monday) and 7 (Sunday)")
	}

	rng, err := scheduling.NewTimeRange(in.StartTime, in.EndTime)
	if err != nil {
		return nil, err
	}

	if err := ensureNoWindowOverlap(ctx, uc.repo, in.LawyerID, in.DayOfWeek, rng, 0); err != nil {
		return nil, err
	}

	active := true
	if in.Active != nil {
		active = *in.Active
	}

	tz := in.Timezone
	if tz == "" {
		tz = timezone.DefaultTimezone
	}
	if !timezone.IsValid(tz) {
		return nil, apperr.Validation("invalid_timezone", fmt.Sprintf("unknown timezone %q", tz))
	}

	w := &models.AvailabilityWindow{
		LawyerID:  in.LawyerID,
		DayOfWeek: in.DayOfWeek,
		StartTime: in.StartTime,
		EndTime:   in.EndTime,
		Active:    active,
		Timezone:  tz,
	}

	if err := uc.repo.CreateWindow(ctx, w); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:   &in.LawyerID,
		ActorRole: "lawyer",
		Action:    "availability_created",
		Entity:    "availability_window",
		EntityID:  &w.ID,
	})

	return w, nil
}

// ======================================================
// SHARED VALIDATION
// ======================================================

// ensureNoWindowOverlap enforces that a lawyer's active windows for one
// weekday never overlap. excludeID skips the window being updated.
func ensureNoWindowOverlap(
	ctx context.Context,
	repo scheduling.Repository,
	lawyerID uint,
	dayOfWeek int,
	rng scheduling.TimeRange,
	excludeID uint,
) error {

	existing, err := repo.ListActiveWindowsForDay(ctx, lawyerID, dayOfWeek)
	if err != nil {
		return err
	}

	for _, w := range existing {
		if w.ID == excludeID {
			continue
		}

		wr, err := scheduling.NewTimeRange(w.StartTime, w.EndTime)
		if err != nil {
			continue
		}

		if scheduling.Overlaps(rng, wr) {
			return apperr.Conflict(
				"window_overlap",
				fmt.Sprintf("the window overlaps an existing one (%s-%s)", w.StartTime, w.EndTime),
			)
		}
	}

	return nil
}
