package models

import "time"

// AvailabilityWindow is one recurring weekly working block of a lawyer.
// DayOfWeek is ISO numbering: 1 = Monday .. 7 = Sunday.
type AvailabilityWindow struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	LawyerID uint `gorm:"index" json:"lawyer_id"`

	DayOfWeek int `json:"day_of_week"`

	StartTime string `gorm:"size:5" json:"start_time"`
	EndTime   string `gorm:"size:5" json:"end_time"`

	Active   bool   `gorm:"default:true" json:"active"`
	Timezone string `gorm:"size:64" json:"timezone"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
