package availability

import (
	"context"
	"testing"
	"time"

	"github.com/legalconnect/schedule-service/internal/apperr"
	"github.com/legalconnect/schedule-service/internal/audit"
	"github.com/legalconnect/schedule-service/internal/domain/scheduling"
	"github.com/legalconnect/schedule-service/internal/domain/scheduling/schedulingtest"
	"github.com/legalconnect/schedule-service/internal/models"
	"github.com/legalconnect/schedule-service/internal/timezone"
)

type nullSink struct{}

func (nullSink) Log(actorID *uint, actorRole, action, entity string, entityID *uint, metadata any) error {
	return nil
}

func newDeps() (*schedulingtest.Repo, *audit.Dispatcher) {
	return schedulingtest.NewRepo(), audit.NewDispatcher(nullSink{})
}

func TestCreateWindow(t *testing.T) {
	repo, auditDisp := newDeps()
	uc := NewCreateWindow(repo, auditDisp)

	w, err := uc.Execute(context.Background(), CreateWindowInput{
		LawyerID:  10,
		DayOfWeek: 1,
		StartTime: "09:00",
		EndTime:   "17:00",
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if w.ID == 0 {
		t.Error("expected a persisted window with an ID")
	}
	if !w.Active {
		t.Error("expected the window to default to active")
	}
	if w.Timezone != timezone.DefaultTimezone {
		t.Errorf("timezone = %q, want the default", w.Timezone)
	}
}

func TestCreateWindowValidation(t *testing.T) {
	repo, auditDisp := newDeps()
	uc := NewCreateWindow(repo, auditDisp)

	cases := []struct {
		name string
		in   CreateWindowInput
		code string
	}{
		{
			"day below range",
			CreateWindowInput{LawyerID: 10, DayOfWeek: 0, StartTime: "09:00", EndTime: "17:00"},
			"invalid_day_of_week",
		},
		{
			"day above range",
			CreateWindowInput{LawyerID: 10, DayOfWeek: 8, StartTime: "09:00", EndTime: "17:00"},
			"invalid_day_of_week",
		},
		{
			"inverted range",
			CreateWindowInput{LawyerID: 10, DayOfWeek: 1, StartTime: "17:00", EndTime: "09:00"},
			"invalid_time_range",
		},
		{
			"malformed time",
			CreateWindowInput{LawyerID: 10, DayOfWeek: 1, StartTime: "9am", EndTime: "5pm"},
			"invalid_time",
		},
		{
			"unknown timezone",
			CreateWindowInput{LawyerID: 10, DayOfWeek: 1, StartTime: "09:00", EndTime: "17:00", Timezone: "Mars/Olympus"},
			"invalid_timezone",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := uc.Execute(context.Background(), tc.in); !apperr.IsCode(err, tc.code) {
				t.Errorf("got %v, want %s", err, tc.code)
			}
		})
	}
}

func TestCreateWindowOverlap(t *testing.T) {
	repo, auditDisp := newDeps()
	uc := NewCreateWindow(repo, auditDisp)

	if _, err := uc.Execute(context.Background(), CreateWindowInput{
		LawyerID: 10, DayOfWeek: 1, StartTime: "09:00", EndTime: "12:00",
	}); err != nil {
		t.Fatalf("first window: %v", err)
	}

	_, err := uc.Execute(context.Background(), CreateWindowInput{
		LawyerID: 10, DayOfWeek: 1, StartTime: "11:00", EndTime: "14:00",
	})
	if !apperr.IsCode(err, "window_overlap") {
		t.Fatalf("overlapping window: got %v, want window_overlap", err)
	}

	// touching windows are fine, and other days never clash
	if _, err := uc.Execute(context.Background(), CreateWindowInput{
		LawyerID: 10, DayOfWeek: 1, StartTime: "12:00", EndTime: "14:00",
	}); err != nil {
		t.Errorf("touching window: %v", err)
	}
	if _, err := uc.Execute(context.Background(), CreateWindowInput{
		LawyerID: 10, DayOfWeek: 2, StartTime: "09:00", EndTime: "12:00",
	}); err != nil {
		t.Errorf("same range on another day: %v", err)
	}
}

func TestCreateBulkWindows(t *testing.T) {
	repo, auditDisp := newDeps()
	uc := NewCreateBulkWindows(repo, auditDisp)

	ws, err := uc.Execute(context.Background(), CreateBulkWindowsInput{
		LawyerID:   10,
		DayOfWeeks: []int{1, 3, 5},
		StartTime:  "09:00",
		EndTime:    "12:00",
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if len(ws) != 3 {
		t.Fatalf("created %d windows, want 3", len(ws))
	}
	for _, w := range ws {
		if w.ID == 0 {
			t.Errorf("window for day %d was not persisted", w.DayOfWeek)
		}
	}
}

func TestCreateBulkWindowsRejectsDuplicates(t *testing.T) {
	repo, auditDisp := newDeps()
	uc := NewCreateBulkWindows(repo, auditDisp)

	_, err := uc.Execute(context.Background(), CreateBulkWindowsInput{
		LawyerID:   10,
		DayOfWeeks: []int{1, 3, 1},
		StartTime:  "09:00",
		EndTime:    "12:00",
	})
	if !apperr.IsCode(err, "duplicate_day_of_week") {
		t.Errorf("got %v, want duplicate_day_of_week", err)
	}

	_, err = uc.Execute(context.Background(), CreateBulkWindowsInput{
		LawyerID:  10,
		StartTime: "09:00",
		EndTime:   "12:00",
	})
	if !apperr.IsCode(err, "empty_day_list") {
		t.Errorf("empty list: got %v, want empty_day_list", err)
	}
}

func TestUpdateWindow(t *testing.T) {
	repo, auditDisp := newDeps()
	create := NewCreateWindow(repo, auditDisp)
	update := NewUpdateWindow(repo, auditDisp)

	w, err := create.Execute(context.Background(), CreateWindowInput{
		LawyerID: 10, DayOfWeek: 1, StartTime: "09:00", EndTime: "12:00",
	})
	if err != nil {
		t.Fatalf("seed window: %v", err)
	}

	// growing the window over its own old range is not a self-overlap
	updated, err := update.Execute(context.Background(), UpdateWindowInput{
		WindowID: w.ID, LawyerID: 10, DayOfWeek: 1, StartTime: "08:00", EndTime: "13:00",
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if updated.StartTime != "08:00" || updated.EndTime != "13:00" {
		t.Errorf("window = %s-%s, want 08:00-13:00", updated.StartTime, updated.EndTime)
	}

	if _, err := update.Execute(context.Background(), UpdateWindowInput{
		WindowID: w.ID, LawyerID: 11, DayOfWeek: 1, StartTime: "08:00", EndTime: "13:00",
	}); !apperr.IsKind(err, apperr.KindForbidden) {
		t.Errorf("other lawyer: got %v, want forbidden", err)
	}
}

func TestUpdateWindowOverlapsSibling(t *testing.T) {
	repo, auditDisp := newDeps()
	create := NewCreateWindow(repo, auditDisp)
	update := NewUpdateWindow(repo, auditDisp)

	if _, err := create.Execute(context.Background(), CreateWindowInput{
		LawyerID: 10, DayOfWeek: 1, StartTime: "09:00", EndTime: "12:00",
	}); err != nil {
		t.Fatalf("seed window: %v", err)
	}
	w, err := create.Execute(context.Background(), CreateWindowInput{
		LawyerID: 10, DayOfWeek: 1, StartTime: "13:00", EndTime: "17:00",
	})
	if err != nil {
		t.Fatalf("seed window: %v", err)
	}

	if _, err := update.Execute(context.Background(), UpdateWindowInput{
		WindowID: w.ID, LawyerID: 10, DayOfWeek: 1, StartTime: "11:00", EndTime: "17:00",
	}); !apperr.IsCode(err, "window_overlap") {
		t.Errorf("got %v, want window_overlap", err)
	}
}

// nextDateFor returns the next calendar date falling on the given ISO
// weekday, within the deletion guard horizon.
func nextDateFor(day int) time.Time {
	d := timezone.Now()
	for scheduling.ISOWeekday(d) != day {
		d = d.AddDate(0, 0, 1)
	}
	return d
}

func TestDeleteWindow(t *testing.T) {
	repo, auditDisp := newDeps()
	create := NewCreateWindow(repo, auditDisp)
	del := NewDeleteWindow(repo, auditDisp)

	w, err := create.Execute(context.Background(), CreateWindowInput{
		LawyerID: 10, DayOfWeek: 2, StartTime: "09:00", EndTime: "12:00",
	})
	if err != nil {
		t.Fatalf("seed window: %v", err)
	}

	if err := del.Execute(context.Background(), w.ID, 11); !apperr.IsKind(err, apperr.KindForbidden) {
		t.Errorf("other lawyer: got %v, want forbidden", err)
	}

	if err := del.Execute(context.Background(), w.ID, 10); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if _, err := repo.GetWindow(context.Background(), w.ID); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("window still present after delete: %v", err)
	}
}

func TestDeleteWindowGuardedByBookings(t *testing.T) {
	repo, auditDisp := newDeps()
	create := NewCreateWindow(repo, auditDisp)
	del := NewDeleteWindow(repo, auditDisp)

	w, err := create.Execute(context.Background(), CreateWindowInput{
		LawyerID: 10, DayOfWeek: 2, StartTime: "09:00", EndTime: "12:00",
	})
	if err != nil {
		t.Fatalf("seed window: %v", err)
	}

	ap := &models.Appointment{
		CitizenID:   1,
		LawyerID:    10,
		Date:        nextDateFor(2),
		StartTime:   "10:00",
		DurationMin: 60,
		Status:      string(scheduling.StatusConfirmed),
	}
	if err := repo.CreateAppointment(context.Background(), ap); err != nil {
		t.Fatalf("seed appointment: %v", err)
	}

	if err := del.Execute(context.Background(), w.ID, 10); !apperr.IsCode(err, "window_in_use") {
		t.Fatalf("got %v, want window_in_use", err)
	}

	// a cancelled booking no longer keeps the window alive
	ap.Status = string(scheduling.StatusCancelled)
	if err := repo.SaveAppointment(context.Background(), ap); err != nil {
		t.Fatalf("cancel appointment: %v", err)
	}
	if err := del.Execute(context.Background(), w.ID, 10); err != nil {
		t.Errorf("Execute after cancellation: %v", err)
	}
}
