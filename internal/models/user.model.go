package models

const (
	HospitalAgaKhan      = "Aga Khan Hospital"
	HospitalNairobiWomen = "Nairobi Women's Hospital"
	HospitalMediCare     = "MediCare Clinic"
	HospitalUzaziSafe    = "UzaziSafe Health Center"
)

const (
	RoleDoctor  = "Doctor"
	RoleNurse   = "Nurse"
	RoleMidwife = "Midwife"
)

type User struct {
	BaseUUIDModel
	FullName       string  `gorm:"type:varchar(255);not null"              json:"fullName"`
	Email          string  `gorm:"type:varchar(255);uniqueIndex;not null"  json:"email"`
	HashedPassword string  `gorm:"type:varchar(255);not null"              json:"-"`
	IsProvider     bool    `gorm:"not null;default:false"                  json:"isProvider"`
	Role           *string `gorm:"type:varchar(50)"                        json:"role,omitempty"`
	HospitalName   string  `gorm:"type:varchar(255);not null"              json:"hospitalName"`
}

func ValidHospital(name string) bool {
	switch name {
	case HospitalAgaKhan, HospitalNairobiWomen, HospitalMediCare, HospitalUzaziSafe:
		return true
	}
	return false
}

func ValidProviderRole(role string) bool {
	switch role {
	case RoleDoctor, RoleNurse, RoleMidwife:
		return true
	}
	return false
}

type SignupProviderRequest struct {
	FullName     string `json:"full_name"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	HospitalName string `json:"hospital_name"`
	Role         string `json:"role"`
}

type SignupPatientRequest struct {
	FullName     string `json:"full_name"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	HospitalName string `json:"hospital_name"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken  string  `json:"access_token"`
	TokenType    string  `json:"token_type"`
	IsProvider   bool    `json:"is_provider"`
	Role         *string `json:"role"`
	HospitalName string  `json:"hospital_name"`
	FullName     string  `json:"full_name"`
	Email        string  `json:"email"`
}
