package models

import "time"

const (
	AppointmentScheduled = "Scheduled"
	AppointmentCompleted = "Completed"
	AppointmentCancelled = "Cancelled"
)

type Appointment struct {
	BaseUUIDModel
	PatientName     string    `gorm:"type:varchar(255);not null"                  json:"patientName"`
	Date            time.Time `gorm:"not null"                                    json:"date"`
	AppointmentType *string   `gorm:"type:varchar(100)"                           json:"appointmentType"`
	Status          string    `gorm:"type:varchar(20);not null;default:Scheduled" json:"status"`
	HospitalName    *string   `gorm:"type:varchar(255)"                           json:"hospitalName"`

	ProviderID *string `gorm:"type:varchar(64);index" json:"providerId"`
	Provider   *User   `gorm:"foreignKey:ProviderID"  json:"provider,omitempty"`
}

func ValidAppointmentStatus(status string) bool {
	switch status {
	case AppointmentScheduled, AppointmentCompleted, AppointmentCancelled:
		return true
	}
	return false
}

type BookAppointmentRequest struct {
	PatientName     string    `json:"patient_name"`
	Date            time.Time `json:"date"`
	AppointmentType *string   `json:"appointment_type"`
	Status          string    `json:"status"`
	HospitalName    *string   `json:"hospital_name"`
	ProviderID      string    `json:"provider_id"`
	ProviderEmail   string    `json:"provider_email"`
}

type AppointmentResponse struct {
	ID              string    `json:"id"`
	PatientName     string    `json:"patient_name"`
	Date            time.Time `json:"date"`
	AppointmentType *string   `json:"appointment_type"`
	Status          string    `json:"status"`
	HospitalName    *string   `json:"hospital_name"`
	ProviderID      *string   `json:"provider_id"`
	ProviderName    *string   `json:"provider_name"`
}
