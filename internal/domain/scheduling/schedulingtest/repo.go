// Package schedulingtest provides an in-memory scheduling.Repository for
// use in tests. InTx serializes transactions on a single mutex, which
// gives the same atomicity the row-locked scan provides in postgres.
package schedulingtest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/legalconnect/schedule-service/internal/apperr"
	"github.com/legalconnect/schedule-service/internal/domain/scheduling"
	"github.com/legalconnect/schedule-service/internal/models"
)

type Repo struct {
	mu   sync.Mutex
	txMu sync.Mutex

	nextWindowID      uint
	nextAppointmentID uint

	windows      map[uint]models.AvailabilityWindow
	appointments map[uint]models.Appointment
}

var _ scheduling.Repository = (*Repo)(nil)

func NewRepo() *Repo {
	return &Repo{
		windows:      make(map[uint]models.AvailabilityWindow),
		appointments: make(map[uint]models.Appointment),
	}
}

func dateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// -------- Availability windows --------

func (r *Repo) CreateWindow(ctx context.Context, w *models.AvailabilityWindow) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextWindowID++
	w.ID = r.nextWindowID
	r.windows[w.ID] = *w
	return nil
}

func (r *Repo) CreateWindows(ctx context.Context, ws []models.AvailabilityWindow) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range ws {
		r.nextWindowID++
		ws[i].ID = r.nextWindowID
		r.windows[ws[i].ID] = ws[i]
	}
	return nil
}

func (r *Repo) GetWindow(ctx context.Context, id uint) (*models.AvailabilityWindow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	w, ok := r.windows[id]
	if !ok {
		return nil, apperr.NotFound("window_not_found", "availability window not found")
	}
	return &w, nil
}

func (r *Repo) SaveWindow(ctx context.Context, w *models.AvailabilityWindow) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.windows[w.ID]; !ok {
		return apperr.NotFound("window_not_found", "availability window not found")
	}
	r.windows[w.ID] = *w
	return nil
}

func (r *Repo) DeleteWindow(ctx context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.windows[id]; !ok {
		return apperr.NotFound("window_not_found", "availability window not found")
	}
	delete(r.windows, id)
	return nil
}

func (r *Repo) ListWindows(ctx context.Context, lawyerID uint, activeOnly bool) ([]models.AvailabilityWindow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.AvailabilityWindow
	for _, w := range r.windows {
		if w.LawyerID != lawyerID {
			continue
		}
		if activeOnly && !w.Active {
			continue
		}
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *Repo) ListActiveWindowsForDay(ctx context.Context, lawyerID uint, dayOfWeek int) ([]models.AvailabilityWindow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.AvailabilityWindow
	for _, w := range r.windows {
		if w.LawyerID == lawyerID && w.DayOfWeek == dayOfWeek && w.Active {
			out = append(out, w)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// -------- Appointments --------

func (r *Repo) CreateAppointment(ctx context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextAppointmentID++
	ap.ID = r.nextAppointmentID
	if ap.Status == "" {
		ap.Status = string(scheduling.InitialStatus())
	}
	if ap.Version == 0 {
		ap.Version = 1
	}
	r.appointments[ap.ID] = *ap
	return nil
}

func (r *Repo) ListActiveForDate(ctx context.Context, lawyerID uint, date time.Time) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.LawyerID != lawyerID || dateKey(ap.Date) != dateKey(date) {
			continue
		}
		s := scheduling.Status(ap.Status)
		if s == scheduling.StatusCancelled || s == scheduling.StatusRejected {
			continue
		}
		out = append(out, ap)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *Repo) ListActiveForDateLocked(ctx context.Context, lawyerID uint, date time.Time) ([]models.Appointment, error) {
	return r.ListActiveForDate(ctx, lawyerID, date)
}

func (r *Repo) GetAppointment(ctx context.Context, id uint) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ap, ok := r.appointments[id]
	if !ok {
		return nil, apperr.NotFound("appointment_not_found", "appointment not found")
	}
	return &ap, nil
}

func (r *Repo) SaveAppointment(ctx context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.appointments[ap.ID]
	if !ok {
		return apperr.NotFound("appointment_not_found", "appointment not found")
	}
	if stored.Version != ap.Version {
		return apperr.Conflict("stale_appointment", "the appointment was modified concurrently, please retry")
	}
	ap.Version++
	r.appointments[ap.ID] = *ap
	return nil
}

func (r *Repo) ListForCitizen(ctx context.Context, citizenID uint, status scheduling.Status, limit, offset int) ([]models.Appointment, int64, error) {
	return r.list(func(ap models.Appointment) bool { return ap.CitizenID == citizenID }, status, limit, offset)
}

func (r *Repo) ListForLawyer(ctx context.Context, lawyerID uint, status scheduling.Status, limit, offset int) ([]models.Appointment, int64, error) {
	return r.list(func(ap models.Appointment) bool { return ap.LawyerID == lawyerID }, status, limit, offset)
}

func (r *Repo) list(match func(models.Appointment) bool, status scheduling.Status, limit, offset int) ([]models.Appointment, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Appointment
	for _, ap := range r.appointments {
		if !match(ap) {
			continue
		}
		if status != "" && ap.Status != string(status) {
			continue
		}
		out = append(out, ap)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })

	total := int64(len(out))
	if offset > 0 {
		if offset >= len(out) {
			out = nil
		} else {
			out = out[offset:]
		}
	}
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, total, nil
}

func (r *Repo) ListLiveForLawyerBetween(ctx context.Context, lawyerID uint, from, to time.Time) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.LawyerID != lawyerID {
			continue
		}
		s := scheduling.Status(ap.Status)
		if s != scheduling.StatusPending && s != scheduling.StatusConfirmed {
			continue
		}
		d := dateKey(ap.Date)
		if d < dateKey(from) || d > dateKey(to) {
			continue
		}
		out = append(out, ap)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *Repo) ListConfirmedOnDate(ctx context.Context, date time.Time) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.Status == string(scheduling.StatusConfirmed) && dateKey(ap.Date) == dateKey(date) {
			out = append(out, ap)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *Repo) InTx(ctx context.Context, fn func(tx scheduling.Repository) error) error {
	r.txMu.Lock()
	defer r.txMu.Unlock()

	return fn(r)
}

// CountAppointments reports how many appointments are stored, for
// concurrency assertions.
func (r *Repo) CountAppointments() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.appointments)
}
