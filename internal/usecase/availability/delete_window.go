package availability

import (
	"context"

	"github.com/legalconnect/schedule-service/internal/apperr"
	"github.com/legalconnect/schedule-service/internal/audit"
	"github.com/legalconnect/schedule-service/internal/domain/scheduling"
	"github.com/legalconnect/schedule-service/internal/timezone"
)

// DeletionGuardDays is how far ahead the deletion guard scans for booked
// appointments that still depend on the window.
const DeletionGuardDays = 90

type DeleteWindow struct {
	repo  scheduling.Repository
	audit *audit.Dispatcher
}

func NewDeleteWindow(
	repo scheduling.Repository,
	audit *audit.Dispatcher,
) *DeleteWindow {
	return &DeleteWindow{
		repo:  repo,
		audit: audit,
	}
}

func (uc *DeleteWindow) Execute(
	ctx context.Context,
	windowID uint,
	lawyerID uint,
) error {

	w, err := uc.repo.GetWindow(ctx, windowID)
	if err != nil {
		return err
	}

	if w.LawyerID != lawyerID {
		return apperr.Forbidden("not_window_owner", "you may only delete your own availability")
	}

	windowRange, err := scheduling.NewTimeRange(w.StartTime, w.EndTime)
	if err != nil {
		return err
	}

	// Citizens with booked slots inside the window keep it alive.
	today := timezone.StartOfDay(timezone.Now())
	horizon := today.AddDate(0, 0, DeletionGuardDays)

	upcoming, err := uc.repo.ListLiveForLawyerBetween(ctx, lawyerID, today, horizon)
	if err != nil {
		return err
	}

	for _, ap := range upcoming {
		if scheduling.ISOWeekday(ap.Date) != w.DayOfWeek {
			continue
		}

		occupied, err := scheduling.RangeFrom(ap.StartTime, ap.DurationMin)
		if err != nil {
			continue
		}

		if scheduling.Overlaps(occupied, windowRange) {
			return apperr.Conflict(
				"window_in_use",
				"the window has upcoming booked appointments and cannot be deleted",
			)
		}
	}

	if err := uc.repo.DeleteWindow(ctx, windowID); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:   &lawyerID,
		ActorRole: "lawyer",
		Action:    "availability_deleted",
		Entity:    "availability_window",
		EntityID:  &windowID,
	})

	return nil
}
