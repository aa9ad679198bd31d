package appointment

import (
	"context"
	"testing"

	"github.com/legalconnect/schedule-service/internal/apperr"
	"github.com/legalconnect/schedule-service/internal/domain/scheduling"
)

func TestListAppointmentsForCitizen(t *testing.T) {
	e := newEnv()
	seedAppointment(t, e, 1, 10, testDate, "09:00", scheduling.StatusPending)
	seedAppointment(t, e, 1, 10, testDate, "10:00", scheduling.StatusConfirmed)
	seedAppointment(t, e, 2, 10, testDate, "11:00", scheduling.StatusPending)

	uc := NewListAppointments(e.repo)

	out, err := uc.ForCitizen(context.Background(), 1, ListInput{})
	if err != nil {
		t.Fatalf("ForCitizen: %v", err)
	}
	if out.Total != 2 || len(out.Appointments) != 2 {
		t.Errorf("total = %d, rows = %d, want 2/2", out.Total, len(out.Appointments))
	}

	out, err = uc.ForCitizen(context.Background(), 1, ListInput{Status: "CONFIRMED"})
	if err != nil {
		t.Fatalf("ForCitizen filtered: %v", err)
	}
	if out.Total != 1 {
		t.Errorf("confirmed total = %d, want 1", out.Total)
	}
}

func TestListAppointmentsForLawyerPaged(t *testing.T) {
	e := newEnv()
	for _, start := range []string{"09:00", "10:00", "11:00"} {
		seedAppointment(t, e, 1, 10, testDate, start, scheduling.StatusPending)
	}

	out, err := NewListAppointments(e.repo).ForLawyer(context.Background(), 10, ListInput{Limit: 2, Offset: 2})
	if err != nil {
		t.Fatalf("ForLawyer: %v", err)
	}
	if out.Total != 3 {
		t.Errorf("total = %d, want 3", out.Total)
	}
	if len(out.Appointments) != 1 {
		t.Errorf("page rows = %d, want 1", len(out.Appointments))
	}
}

func TestListAppointmentsInvalidStatus(t *testing.T) {
	e := newEnv()

	_, err := NewListAppointments(e.repo).ForCitizen(context.Background(), 1, ListInput{Status: "SOMEDAY"})
	if !apperr.IsCode(err, "invalid_status") {
		t.Errorf("got %v, want invalid_status", err)
	}
}

func TestGetAppointmentScoped(t *testing.T) {
	e := newEnv()
	id := seedAppointment(t, e, 1, 10, testDate, "09:00", scheduling.StatusPending)

	uc := NewGetAppointment(e.repo, e.ids)

	detail, err := uc.Execute(context.Background(), id, 1, false)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if detail.CitizenName == "" || detail.LawyerName == "" {
		t.Errorf("expected enriched names, got citizen %q lawyer %q", detail.CitizenName, detail.LawyerName)
	}

	if _, err := uc.Execute(context.Background(), id, 2, false); !apperr.IsKind(err, apperr.KindForbidden) {
		t.Errorf("other citizen: got %v, want forbidden", err)
	}
	if _, err := uc.Execute(context.Background(), id, 11, true); !apperr.IsKind(err, apperr.KindForbidden) {
		t.Errorf("other lawyer: got %v, want forbidden", err)
	}
	if _, err := uc.Execute(context.Background(), 404, 1, false); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("missing appointment: got %v, want not found", err)
	}
}
