package models

import "time"

// Appointment references citizen and lawyer by ID only; profile data lives
// in the user service.
type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CitizenID uint `gorm:"index" json:"citizen_id"`
	LawyerID  uint `gorm:"index" json:"lawyer_id"`

	Date        time.Time `gorm:"type:date" json:"date"`
	StartTime   string    `gorm:"size:5" json:"start_time"`
	DurationMin int       `gorm:"default:60" json:"duration_minutes"`

	ConsultationType string `gorm:"size:50" json:"consultation_type"`
	MeetingLocation  string `gorm:"size:255" json:"meeting_location"`
	Description      string `gorm:"size:500" json:"description"`

	Status string `gorm:"size:20;default:'PENDING'" json:"status"`

	RejectionReason    string `gorm:"size:255" json:"rejection_reason,omitempty"`
	CancellationReason string `gorm:"size:255" json:"cancellation_reason,omitempty"`

	Rating        *int       `json:"rating,omitempty"`
	ReviewComment string     `gorm:"size:500" json:"review_comment,omitempty"`
	ReviewedAt    *time.Time `json:"reviewed_at,omitempty"`

	// Version guards status transitions; a stale save fails instead of
	// overwriting a concurrent one.
	Version int `gorm:"default:1" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StartsAt combines the calendar date and the "15:04" start time in loc.
func (a *Appointment) StartsAt(loc *time.Location) time.Time {
	t, err := time.Parse("15:04", a.StartTime)
	if err != nil {
		return time.Date(a.Date.Year(), a.Date.Month(), a.Date.Day(), 0, 0, 0, 0, loc)
	}
	return time.Date(
		a.Date.Year(), a.Date.Month(), a.Date.Day(),
		t.Hour(), t.Minute(), 0, 0,
		loc,
	)
}
