package models

import "time"

const RiskLevelUnknown = "Unknown"

type Patient struct {
	BaseUUIDModel
	FullName string `gorm:"type:varchar(255);not null" json:"fullName"`

	// Static clinical fields. Nil means "never reported"; once set they are
	// never overwritten by assessment submissions (first write wins).
	Age                   *int    `gorm:"type:int"          json:"age"`
	PreExistingDiabetes   *string `gorm:"type:varchar(10)"  json:"preExistingDiabetes"`
	GestationalDiabetes   *string `gorm:"type:varchar(10)"  json:"gestationalDiabetes"`
	PreviousComplications *string `gorm:"type:varchar(10)"  json:"previousComplications"`

	// Denormalized cache of the latest risk history entry.
	RiskLevel        string     `gorm:"type:varchar(20);not null;default:Unknown" json:"riskLevel"`
	LastAssessmentAt *time.Time `gorm:""                                          json:"lastAssessmentAt"`

	HospitalName string `gorm:"type:varchar(255);not null" json:"hospitalName"`

	ProviderID *string `gorm:"type:varchar(64);index" json:"providerId"`
	Provider   *User   `gorm:"foreignKey:ProviderID"  json:"provider,omitempty"`

	UserID string `gorm:"type:varchar(64);uniqueIndex;not null" json:"userId"`
	User   *User  `gorm:"foreignKey:UserID"                     json:"-"`

	RiskHistory []RiskHistory `gorm:"foreignKey:PatientID;constraint:OnDelete:CASCADE" json:"-"`
}

type PatientDashboard struct {
	PatientID             string     `json:"patient_id"`
	FullName              string     `json:"full_name"`
	Email                 string     `json:"email"`
	HospitalName          string     `json:"hospital_name"`
	ProviderName          string     `json:"provider_name"`
	ProviderID            *string    `json:"provider_id"`
	CurrentRiskLevel      string     `json:"current_risk_level"`
	LastAssessmentDate    *time.Time `json:"last_assessment_date"`
	NextAppointment       *string    `json:"next_appointment"`
	Age                   *int       `json:"age"`
	PreExistingDiabetes   string     `json:"pre_existing_diabetes"`
	GestationalDiabetes   string     `json:"gestational_diabetes"`
	PreviousComplications string     `json:"previous_complications"`
}

type UpdateStaticInfoRequest struct {
	Age                   *int    `json:"age"`
	PreExistingDiabetes   *string `json:"pre_existing_diabetes"`
	GestationalDiabetes   *string `json:"gestational_diabetes"`
	PreviousComplications *string `json:"previous_complications"`
}
