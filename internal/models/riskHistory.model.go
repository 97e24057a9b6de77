package models

// RiskHistory is an append-only log of completed assessments. Rows are never
// updated or deleted individually; they go away only when the owning patient
// record is removed.
type RiskHistory struct {
	BaseUUIDModel
	PatientID string   `gorm:"type:varchar(64);not null;index"                  json:"patientId"`
	Patient   *Patient `gorm:"foreignKey:PatientID"                             json:"-"`

	RiskLevel           string  `gorm:"type:varchar(20);not null" json:"riskLevel"`
	HighRiskProbability float64 `gorm:"not null"                  json:"highRiskProbability"`
	LowRiskProbability  float64 `gorm:"not null"                  json:"lowRiskProbability"`

	// JSON object of display-name -> contribution, ordered by |contribution|.
	ContributingFactors string `gorm:"type:text" json:"contributingFactors"`

	// The vitals that went into the scored feature vector.
	SystolicBP  float64 `gorm:"not null" json:"systolicBp"`
	DiastolicBP float64 `gorm:"not null" json:"diastolicBp"`
	BloodSugar  float64 `gorm:"not null" json:"bloodSugar"`
	BodyTemp    float64 `gorm:"not null" json:"bodyTemp"`
	HeartRate   float64 `gorm:"not null" json:"heartRate"`
}
