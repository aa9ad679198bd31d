package appointment

import (
	"context"
	"time"

	"github.com/legalconnect/schedule-service/internal/apperr"
	"github.com/legalconnect/schedule-service/internal/domain/scheduling"
	"github.com/legalconnect/schedule-service/internal/identity"
	"github.com/legalconnect/schedule-service/internal/timezone"
)

// ======================================================
// OUTPUT
// ======================================================

type SlotView struct {
	Start       string `json:"start_time"`
	End         string `json:"end_time"`
	DurationMin int    `json:"duration_minutes"`
}

type BookedView struct {
	AppointmentID uint   `json:"appointment_id"`
	Start         string `json:"start_time"`
	End           string `json:"end_time"`
	Status        string `json:"status"`
	DurationMin   int    `json:"duration_minutes"`
}

type SlotsOutput struct {
	Date           string       `json:"date"`
	LawyerID       uint         `json:"lawyer_id"`
	LawyerName     string       `json:"lawyer_name"`
	HasSchedule    bool         `json:"has_working_schedule"`
	TotalAvailable int          `json:"total_available_slots"`
	Slots          []SlotView   `json:"available_slots"`
	Booked         []BookedView `json:"booked_slots"`
	Message        string       `json:"message,omitempty"`
}

// ======================================================
// USE CASE
// ======================================================

type GetSlots struct {
	repo scheduling.Repository
	ids  identity.Client
}

func NewGetSlots(repo scheduling.Repository, ids identity.Client) *GetSlots {
	return &GetSlots{repo: repo, ids: ids}
}

func (uc *GetSlots) Execute(
	ctx context.Context,
	lawyerID uint,
	dateStr string,
	durationMin int,
) (*SlotsOutput, error) {

	lawyer, err := uc.ids.GetLawyer(ctx, lawyerID)
	if err != nil {
		return nil, err
	}

	date, err := time.ParseInLocation("2006-01-02", dateStr, timezone.Location(""))
	if err != nil {
		return nil, apperr.Validation("invalid_date", "invalid date, expected YYYY-MM-DD")
	}

	if durationMin <= 0 {
		durationMin = scheduling.DefaultSlotMinutes
	}

	out := &SlotsOutput{
		Date:       dateStr,
		LawyerID:   lawyerID,
		LawyerName: lawyer.FullName,
		Slots:      []SlotView{},
		Booked:     []BookedView{},
	}

	windows, err := uc.repo.ListActiveWindowsForDay(ctx, lawyerID, scheduling.ISOWeekday(date))
	if err != nil {
		return nil, err
	}

	// No published schedule is a legitimate state, not an error.
	if len(windows) == 0 {
		out.Message = "the lawyer has not published a working schedule for this day yet, please check back later"
		return out, nil
	}
	out.HasSchedule = true

	appointments, err := uc.repo.ListActiveForDate(ctx, lawyerID, date)
	if err != nil {
		return nil, err
	}

	windowRanges := make([]scheduling.TimeRange, 0, len(windows))
	for _, w := range windows {
		wr, err := scheduling.NewTimeRange(w.StartTime, w.EndTime)
		if err != nil {
			continue
		}
		windowRanges = append(windowRanges, wr)
	}

	bookedRanges := make([]scheduling.TimeRange, 0, len(appointments))
	for _, ap := range appointments {
		occupied, err := scheduling.RangeFrom(ap.StartTime, ap.DurationMin)
		if err != nil {
			continue
		}
		bookedRanges = append(bookedRanges, occupied)

		out.Booked = append(out.Booked, BookedView{
			AppointmentID: ap.ID,
			Start:         scheduling.FormatClock(occupied.Start),
			End:           scheduling.FormatClock(occupied.End),
			Status:        ap.Status,
			DurationMin:   ap.DurationMin,
		})
	}

	for _, s := range scheduling.GenerateSlots(windowRanges, bookedRanges, durationMin) {
		out.Slots = append(out.Slots, SlotView{
			Start:       scheduling.FormatClock(s.Start),
			End:         scheduling.FormatClock(s.End),
			DurationMin: durationMin,
		})
	}
	out.TotalAvailable = len(out.Slots)

	if out.TotalAvailable == 0 {
		out.Message = "the lawyer is fully booked on this day, please pick another date"
	}

	return out, nil
}
