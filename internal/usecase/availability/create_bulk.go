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

type CreateBulkWindowsInput struct {
	LawyerID   uint
	DayOfWeeks []int
	StartTime  string
	EndTime    string
	Active     *bool
	Timezone   string
}

// CreateBulkWindows applies one time range to several weekdays at once.
type CreateBulkWindows struct {
	repo  scheduling.Repository
	audit *audit.Dispatcher
}

func NewCreateBulkWindows(
	repo scheduling.Repository,
	audit *audit.Dispatcher,
) *CreateBulkWindows {
	return &CreateBulkWindows{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CreateBulkWindows) Execute(
	ctx context.Context,
	in CreateBulkWindowsInput,
) ([]models.AvailabilityWindow, error) {

	if len(in.DayOfWeeks) == 0 {
		return nil, apperr.Validation("empty_day_list", "at least one day of week is required")
	}

	seen := make(map[int]bool, len(in.DayOfWeeks))
	for _, day := range in.DayOfWeeks {
		if !scheduling.ValidDayOfWeek(day) {
			return nil, apperr.Validation("invalid_day_of_week", "day of week must be between 1 (Monday) and 7 (Sunday)")
		}
		if seen[day] {
			return nil, apperr.Validation("duplicate_day_of_week", "the day list contains duplicates")
		}
		seen[day] = true
	}

	rng, err := scheduling.NewTimeRange(in.StartTime, in.EndTime)
	if err != nil {
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

	ws := make([]models.AvailabilityWindow, 0, len(in.DayOfWeeks))
	for _, day := range in.DayOfWeeks {
		if err := ensureNoWindowOverlap(ctx, uc.repo, in.LawyerID, day, rng, 0); err != nil {
			return nil, err
		}

		ws = append(ws, models.AvailabilityWindow{
			LawyerID:  in.LawyerID,
			DayOfWeek: day,
			StartTime: in.StartTime,
			EndTime:   in.EndTime,
			Active:    active,
			Timezone:  tz,
		})
	}

	if err := uc.repo.CreateWindows(ctx, ws); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:   &in.LawyerID,
		ActorRole: "lawyer",
		Action:    "availability_bulk_created",
		Entity:    "availability_window",
		Metadata:  map[string]any{"days": in.DayOfWeeks},
	})

	return ws, nil
}
