package dto

import "github.com/legalconnect/schedule-service/internal/models"

type AppointmentDetail struct {
	models.Appointment

	CitizenName  string `json:"citizen_name,omitempty"`
	CitizenPhone string `json:"citizen_phone,omitempty"`
	LawyerName   string `json:"lawyer_name,omitempty"`
}
