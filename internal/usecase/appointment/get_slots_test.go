package appointment

import (
	"context"
	"testing"

	"github.com/legalconnect/schedule-service/internal/apperr"
	"github.com/legalconnect/schedule-service/internal/domain/scheduling"
)

func TestGetSlotsNoSchedule(t *testing.T) {
	e := newEnv()

	out, err := NewGetSlots(e.repo, e.ids).Execute(context.Background(), 10, testDate, 0)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if out.HasSchedule {
		t.Error("expected has_working_schedule to be false")
	}
	if out.Message == "" {
		t.Error("expected an explanatory message for the missing schedule")
	}
	if len(out.Slots) != 0 {
		t.Errorf("expected no slots, got %d", len(out.Slots))
	}
}

func TestGetSlotsExcludesBooked(t *testing.T) {
	e := newEnv()
	seedWindow(t, e, 10, 1, "09:00", "17:00")
	seedAppointment(t, e, 1, 10, testDate, "10:00", scheduling.StatusConfirmed)
	// a cancelled slot is free again
	seedAppointment(t, e, 1, 10, testDate, "12:00", scheduling.StatusCancelled)

	out, err := NewGetSlots(e.repo, e.ids).Execute(context.Background(), 10, testDate, 0)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if !out.HasSchedule {
		t.Fatal("expected has_working_schedule to be true")
	}
	if out.TotalAvailable != 7 {
		t.Errorf("total available = %d, want 7", out.TotalAvailable)
	}
	for _, s := range out.Slots {
		if s.Start == "10:00" {
			t.Error("the booked 10:00 slot should not be offered")
		}
	}

	if len(out.Booked) != 1 {
		t.Fatalf("booked views = %d, want 1", len(out.Booked))
	}
	if out.Booked[0].Start != "10:00" || out.Booked[0].End != "11:00" {
		t.Errorf("booked view = %s-%s, want 10:00-11:00", out.Booked[0].Start, out.Booked[0].End)
	}
}

func TestGetSlotsFullyBooked(t *testing.T) {
	e := newEnv()
	seedWindow(t, e, 10, 1, "09:00", "10:00")
	seedAppointment(t, e, 1, 10, testDate, "09:00", scheduling.StatusPending)

	out, err := NewGetSlots(e.repo, e.ids).Execute(context.Background(), 10, testDate, 0)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if out.TotalAvailable != 0 {
		t.Errorf("total available = %d, want 0", out.TotalAvailable)
	}
	if out.Message == "" {
		t.Error("expected a fully-booked message")
	}
}

func TestGetSlotsUnknownLawyer(t *testing.T) {
	e := newEnv()
	e.ids.missingLawyers = map[uint]bool{99: true}

	if _, err := NewGetSlots(e.repo, e.ids).Execute(context.Background(), 99, testDate, 0); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("got %v, want not found", err)
	}
}

func TestGetSlotsInvalidDate(t *testing.T) {
	e := newEnv()

	if _, err := NewGetSlots(e.repo, e.ids).Execute(context.Background(), 10, "next monday", 0); !apperr.IsCode(err, "invalid_date") {
		t.Errorf("got %v, want invalid_date", err)
	}
}
