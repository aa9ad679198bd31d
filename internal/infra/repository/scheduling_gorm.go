package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/legalconnect/schedule-service/internal/apperr"
	"github.com/legalconnect/schedule-service/internal/domain/scheduling"
	"github.com/legalconnect/schedule-service/internal/models"
)

type SchedulingGormRepository struct {
	db *gorm.DB
}

func NewSchedulingGormRepository(db *gorm.DB) *SchedulingGormRepository {
	return &SchedulingGormRepository{db: db}
}

// --------------------------------------------------
// Availability windows
// --------------------------------------------------

func (r *SchedulingGormRepository) CreateWindow(
	ctx context.Context,
	w *models.AvailabilityWindow,
) error {
	return r.db.WithContext(ctx).Create(w).Error
}

func (r *SchedulingGormRepository) CreateWindows(
	ctx context.Context,
	ws []models.AvailabilityWindow,
) error {
	if len(ws) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&ws).Error
}

func (r *SchedulingGormRepository) GetWindow(
	ctx context.Context,
	id uint,
) (*models.AvailabilityWindow, error) {

	var w models.AvailabilityWindow
	if err := r.db.WithContext(ctx).First(&w, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("window_not_found", "availability window not found")
		}
		return nil, err
	}
	return &w, nil
}

func (r *SchedulingGormRepository) SaveWindow(
	ctx context.Context,
	w *models.AvailabilityWindow,
) error {
	return r.db.WithContext(ctx).Save(w).Error
}

func (r *SchedulingGormRepository) DeleteWindow(
	ctx context.Context,
	id uint,
) error {
	return r.db.WithContext(ctx).Delete(&models.AvailabilityWindow{}, id).Error
}

func (r *SchedulingGormRepository) ListWindows(
	ctx context.Context,
	lawyerID uint,
	activeOnly bool,
) ([]models.AvailabilityWindow, error) {

	q := r.db.WithContext(ctx).Where("lawyer_id = ?", lawyerID)
	if activeOnly {
		q = q.Where("active = true")
	}

	var ws []models.AvailabilityWindow
	if err := q.
		Order("day_of_week ASC, start_time ASC").
		Find(&ws).Error; err != nil {
		return nil, err
	}
	return ws, nil
}

func (r *SchedulingGormRepository) ListActiveWindowsForDay(
	ctx context.Context,
	lawyerID uint,
	dayOfWeek int,
) ([]models.AvailabilityWindow, error) {

	var ws []models.AvailabilityWindow
	if err := r.db.WithContext(ctx).
		Where("lawyer_id = ? AND day_of_week = ? AND active = true", lawyerID, dayOfWeek).
		Order("start_time ASC").
		Find(&ws).Error; err != nil {
		return nil, err
	}
	return ws, nil
}

// --------------------------------------------------
// Appointments (create / conflict)
// --------------------------------------------------

func (r *SchedulingGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Create(ap).Error
}

func (r *SchedulingGormRepository) ListActiveForDate(
	ctx context.Context,
	lawyerID uint,
	date time.Time,
) ([]models.Appointment, error) {
	return r.listActiveForDate(ctx, lawyerID, date, false)
}

func (r *SchedulingGormRepository) ListActiveForDateLocked(
	ctx context.Context,
	lawyerID uint,
	date time.Time,
) ([]models.Appointment, error) {
	return r.listActiveForDate(ctx, lawyerID, date, true)
}

func (r *SchedulingGormRepository) listActiveForDate(
	ctx context.Context,
	lawyerID uint,
	date time.Time,
	locked bool,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Where(
			"lawyer_id = ? AND date = ? AND status NOT IN ?",
			lawyerID,
			date.Format("2006-01-02"),
			[]string{string(scheduling.StatusCancelled), string(scheduling.StatusRejected)},
		)

	if locked {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var apps []models.Appointment
	if err := q.Order("start_time ASC").Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// --------------------------------------------------
// Appointments (state change)
// --------------------------------------------------

func (r *SchedulingGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).First(&ap, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("appointment_not_found", "appointment not found")
		}
		return nil, err
	}
	return &ap, nil
}

func (r *SchedulingGormRepository) SaveAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ? AND version = ?", ap.ID, ap.Version).
		Updates(map[string]any{
			"status":              ap.Status,
			"rejection_reason":    ap.RejectionReason,
			"cancellation_reason": ap.CancellationReason,
			"rating":              ap.Rating,
			"review_comment":      ap.ReviewComment,
			"reviewed_at":         ap.ReviewedAt,
			"version":             ap.Version + 1,
			"updated_at":          time.Now(),
		})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.Conflict("stale_appointment", "the appointment was modified concurrently, please retry")
	}

	ap.Version++
	return nil
}

// --------------------------------------------------
// Listings
// --------------------------------------------------

func (r *SchedulingGormRepository) ListForCitizen(
	ctx context.Context,
	citizenID uint,
	status scheduling.Status,
	limit int,
	offset int,
) ([]models.Appointment, int64, error) {

	q := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("citizen_id = ?", citizenID)
	if status != "" {
		q = q.Where("status = ?", string(status))
	}

	return r.pageAppointments(q, limit, offset)
}

func (r *SchedulingGormRepository) ListForLawyer(
	ctx context.Context,
	lawyerID uint,
	status scheduling.Status,
	limit int,
	offset int,
) ([]models.Appointment, int64, error) {

	q := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("lawyer_id = ?", lawyerID)
	if status != "" {
		q = q.Where("status = ?", string(status))
	}

	return r.pageAppointments(q, limit, offset)
}

func (r *SchedulingGormRepository) pageAppointments(
	q *gorm.DB,
	limit int,
	offset int,
) ([]models.Appointment, int64, error) {

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if limit <= 0 {
		limit = 20
	}

	var apps []models.Appointment
	if err := q.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&apps).Error; err != nil {
		return nil, 0, err
	}

	return apps, total, nil
}

func (r *SchedulingGormRepository) ListLiveForLawyerBetween(
	ctx context.Context,
	lawyerID uint,
	from time.Time,
	to time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where(
			"lawyer_id = ? AND date >= ? AND date <= ? AND status IN ?",
			lawyerID,
			from.Format("2006-01-02"),
			to.Format("2006-01-02"),
			[]string{string(scheduling.StatusPending), string(scheduling.StatusConfirmed)},
		).
		Order("date ASC, start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *SchedulingGormRepository) ListConfirmedOnDate(
	ctx context.Context,
	date time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where(
			"date = ? AND status = ?",
			date.Format("2006-01-02"),
			string(scheduling.StatusConfirmed),
		).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// --------------------------------------------------
// Transactions
// --------------------------------------------------

func (r *SchedulingGormRepository) InTx(
	ctx context.Context,
	fn func(tx scheduling.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&SchedulingGormRepository{db: tx})
	})
}

// Compile-time check
var _ scheduling.Repository = (*SchedulingGormRepository)(nil)
