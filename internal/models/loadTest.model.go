package models

type LoadTest struct {
	BaseUUIDModel
	Iterations    int     `gorm:"not null"                  json:"iterations"`
	Status        string  `gorm:"type:varchar(20);not null" json:"status"` // 'running', 'completed', 'failed'
	TotalTimeMs   *int    `gorm:"type:int"                  json:"totalTimeMs"`
	AvgLatencyUs  *int    `gorm:"type:int"                  json:"avgLatencyUs"`
	HighRiskCount *int    `gorm:"type:int"                  json:"highRiskCount"`
	ErrorMessage  *string `gorm:"type:text"                 json:"errorMessage,omitempty"`
}

type CreateLoadTestRequest struct {
	Iterations int `json:"iterations"`
}
