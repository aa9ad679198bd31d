package appointment

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/legalconnect/schedule-service/internal/apperr"
	"github.com/legalconnect/schedule-service/internal/audit"
	"github.com/legalconnect/schedule-service/internal/domain/scheduling"
	"github.com/legalconnect/schedule-service/internal/domain/scheduling/schedulingtest"
	"github.com/legalconnect/schedule-service/internal/identity"
	"github.com/legalconnect/schedule-service/internal/lock"
	"github.com/legalconnect/schedule-service/internal/models"
	"github.com/legalconnect/schedule-service/internal/notification"
	"github.com/legalconnect/schedule-service/internal/timezone"
)

// stubIdentity resolves every ID except the ones listed as missing.
type stubIdentity struct {
	missingUsers   map[uint]bool
	missingLawyers map[uint]bool
}

func (s *stubIdentity) GetUser(ctx context.Context, id uint) (*identity.User, error) {
	if s.missingUsers[id] {
		return nil, apperr.NotFound("citizen_not_found", fmt.Sprintf("citizen %d not found", id))
	}
	return &identity.User{
		ID:       id,
		FullName: fmt.Sprintf("Citizen %d", id),
		Email:    fmt.Sprintf("citizen%d@example.com", id),
		Phone:    "0900000000",
	}, nil
}

func (s *stubIdentity) GetLawyer(ctx context.Context, id uint) (*identity.Lawyer, error) {
	if s.missingLawyers[id] {
		return nil, apperr.NotFound("lawyer_not_found", fmt.Sprintf("lawyer %d not found", id))
	}
	return &identity.Lawyer{
		ID:       id,
		FullName: fmt.Sprintf("Lawyer %d", id),
		Email:    fmt.Sprintf("lawyer%d@example.com", id),
	}, nil
}

type discardMailer struct{}

func (discardMailer) Send(to, subject, body string) error { return nil }

type nullSink struct{}

func (nullSink) Log(actorID *uint, actorRole, action, entity string, entityID *uint, metadata any) error {
	return nil
}

type env struct {
	repo   *schedulingtest.Repo
	ids    *stubIdentity
	locker *lock.KeyedMutex
	notify *notification.Dispatcher
	audit  *audit.Dispatcher
}

func newEnv() *env {
	return &env{
		repo:   schedulingtest.NewRepo(),
		ids:    &stubIdentity{},
		locker: lock.NewKeyedMutex(),
		notify: notification.NewDispatcher(discardMailer{}),
		audit:  audit.NewDispatcher(nullSink{}),
	}
}

// testDate is a Monday, matching windows seeded on ISO day 1.
const testDate = "2026-09-07"

func seedWindow(t *testing.T, e *env, lawyerID uint, day int, start, end string) uint {
	t.Helper()

	w := &models.AvailabilityWindow{
		LawyerID:  lawyerID,
		DayOfWeek: day,
		StartTime: start,
		EndTime:   end,
		Active:    true,
		Timezone:  timezone.DefaultTimezone,
	}
	if err := e.repo.CreateWindow(context.Background(), w); err != nil {
		t.Fatalf("seed window: %v", err)
	}
	return w.ID
}

func seedAppointment(t *testing.T, e *env, citizenID, lawyerID uint, date, start string, status scheduling.Status) uint {
	t.Helper()

	d, err := time.ParseInLocation("2006-01-02", date, timezone.Location(""))
	if err != nil {
		t.Fatalf("seed appointment: %v", err)
	}
	ap := &models.Appointment{
		CitizenID:   citizenID,
		LawyerID:    lawyerID,
		Date:        d,
		StartTime:   start,
		DurationMin: 60,
		Status:      string(status),
	}
	if err := e.repo.CreateAppointment(context.Background(), ap); err != nil {
		t.Fatalf("seed appointment: %v", err)
	}
	return ap.ID
}

// seedAppointmentIn stores an appointment starting the given duration
// from now, for cancellation-notice cases.
func seedAppointmentIn(t *testing.T, e *env, citizenID, lawyerID uint, in time.Duration, status scheduling.Status) uint {
	t.Helper()

	at := timezone.Now().Add(in)
	return seedAppointment(t, e, citizenID, lawyerID, at.Format("2006-01-02"), at.Format("15:04"), status)
}
