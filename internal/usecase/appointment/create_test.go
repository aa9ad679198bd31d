package appointment

import (
	"context"
	"sync"
	"testing"

	"github.com/legalconnect/schedule-service/internal/apperr"
	"github.com/legalconnect/schedule-service/internal/domain/scheduling"
)

func newCreate(e *env) *CreateAppointment {
	return NewCreateAppointment(e.repo, e.ids, e.locker, e.notify, e.audit)
}

func TestCreateAppointmentBooksFreeSlot(t *testing.T) {
	e := newEnv()
	seedWindow(t, e, 10, 1, "09:00", "17:00")

	ap, err := newCreate(e).Execute(context.Background(), CreateInput{
		CitizenID:        1,
		LawyerID:         10,
		Date:             testDate,
		Time:             "10:00",
		DurationMin:      60,
		ConsultationType: "ONLINE",
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if ap.ID == 0 {
		t.Error("expected a persisted appointment with an ID")
	}
	if ap.Status != string(scheduling.StatusPending) {
		t.Errorf("status = %s, want PENDING", ap.Status)
	}
	if ap.DurationMin != 60 {
		t.Errorf("duration = %d, want 60", ap.DurationMin)
	}
}

func TestCreateAppointmentDefaultsDuration(t *testing.T) {
	e := newEnv()
	seedWindow(t, e, 10, 1, "09:00", "17:00")

	ap, err := newCreate(e).Execute(context.Background(), CreateInput{
		CitizenID: 1,
		LawyerID:  10,
		Date:      testDate,
		Time:      "09:00",
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if ap.DurationMin != scheduling.DefaultSlotMinutes {
		t.Errorf("duration = %d, want the %d-minute default", ap.DurationMin, scheduling.DefaultSlotMinutes)
	}
}

func TestCreateAppointmentRejectsOverlap(t *testing.T) {
	e := newEnv()
	seedWindow(t, e, 10, 1, "09:00", "17:00")
	seedAppointment(t, e, 1, 10, testDate, "10:00", scheduling.StatusConfirmed)

	uc := newCreate(e)

	_, err := uc.Execute(context.Background(), CreateInput{
		CitizenID: 2,
		LawyerID:  10,
		Date:      testDate,
		Time:      "10:30",
	})
	if !apperr.IsCode(err, "time_conflict") {
		t.Fatalf("overlapping booking: got %v, want time_conflict", err)
	}

	// back-to-back is fine, ranges are half-open
	if _, err := uc.Execute(context.Background(), CreateInput{
		CitizenID: 2,
		LawyerID:  10,
		Date:      testDate,
		Time:      "11:00",
	}); err != nil {
		t.Fatalf("back-to-back booking: %v", err)
	}
}

func TestCreateAppointmentIgnoresReleasedSlots(t *testing.T) {
	e := newEnv()
	seedWindow(t, e, 10, 1, "09:00", "17:00")
	seedAppointment(t, e, 1, 10, testDate, "10:00", scheduling.StatusCancelled)
	seedAppointment(t, e, 1, 10, testDate, "11:00", scheduling.StatusRejected)

	if _, err := newCreate(e).Execute(context.Background(), CreateInput{
		CitizenID: 2,
		LawyerID:  10,
		Date:      testDate,
		Time:      "10:00",
	}); err != nil {
		t.Fatalf("cancelled and rejected slots should be bookable again: %v", err)
	}
}

func TestCreateAppointmentOutsideWorkingHours(t *testing.T) {
	e := newEnv()
	seedWindow(t, e, 10, 1, "09:00", "12:00")

	uc := newCreate(e)

	cases := []struct {
		name string
		time string
	}{
		{"after the window", "14:00"},
		{"sticking out of the window", "11:30"},
		{"before the window", "08:00"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), CreateInput{
				CitizenID: 1,
				LawyerID:  10,
				Date:      testDate,
				Time:      tc.time,
			})
			if !apperr.IsCode(err, "outside_working_hours") {
				t.Errorf("got %v, want outside_working_hours", err)
			}
		})
	}
}

func TestCreateAppointmentNoScheduleThatDay(t *testing.T) {
	e := newEnv()
	seedWindow(t, e, 10, 2, "09:00", "17:00") // Tuesday only

	_, err := newCreate(e).Execute(context.Background(), CreateInput{
		CitizenID: 1,
		LawyerID:  10,
		Date:      testDate, // a Monday
		Time:      "10:00",
	})
	if !apperr.IsCode(err, "outside_working_hours") {
		t.Fatalf("got %v, want outside_working_hours", err)
	}
}

func TestCreateAppointmentUnknownParties(t *testing.T) {
	e := newEnv()
	e.ids.missingLawyers = map[uint]bool{99: true}
	e.ids.missingUsers = map[uint]bool{77: true}
	seedWindow(t, e, 10, 1, "09:00", "17:00")

	uc := newCreate(e)

	_, err := uc.Execute(context.Background(), CreateInput{
		CitizenID: 1, LawyerID: 99, Date: testDate, Time: "10:00",
	})
	if !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("unknown lawyer: got %v, want not found", err)
	}

	_, err = uc.Execute(context.Background(), CreateInput{
		CitizenID: 77, LawyerID: 10, Date: testDate, Time: "10:00",
	})
	if !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("unknown citizen: got %v, want not found", err)
	}
}

func TestCreateAppointmentInvalidInput(t *testing.T) {
	e := newEnv()
	seedWindow(t, e, 10, 1, "09:00", "17:00")

	uc := newCreate(e)

	_, err := uc.Execute(context.Background(), CreateInput{
		CitizenID: 1, LawyerID: 10, Date: "07/09/2026", Time: "10:00",
	})
	if !apperr.IsCode(err, "invalid_date") {
		t.Errorf("bad date: got %v, want invalid_date", err)
	}

	_, err = uc.Execute(context.Background(), CreateInput{
		CitizenID: 1, LawyerID: 10, Date: testDate, Time: "25:99",
	})
	if !apperr.IsKind(err, apperr.KindValidation) {
		t.Errorf("bad time: got %v, want validation error", err)
	}
}

func TestCreateAppointmentConcurrentSameSlot(t *testing.T) {
	e := newEnv()
	seedWindow(t, e, 10, 1, "09:00", "17:00")

	uc := newCreate(e)

	const attempts = 8
	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.Execute(context.Background(), CreateInput{
				CitizenID: uint(i + 1),
				LawyerID:  10,
				Date:      testDate,
				Time:      "10:00",
			})
		}(i)
	}
	wg.Wait()

	won := 0
	for _, err := range errs {
		switch {
		case err == nil:
			won++
		case apperr.IsCode(err, "time_conflict"):
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}

	if won != 1 {
		t.Errorf("%d bookings won the slot, want exactly 1", won)
	}
	if n := e.repo.CountAppointments(); n != 1 {
		t.Errorf("%d appointments persisted, want 1", n)
	}
}
