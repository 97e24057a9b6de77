package seed

import (
	"server/config"
	"server/internal/logger"
	. "server/internal/models"
	"server/internal/services"

	"gorm.io/gorm"
)

func stringPtr(s string) *string {
	return &s
}

// Seed creates demo provider accounts across the supported hospitals plus one
// demo patient, skipping anything that already exists.
func Seed(db *gorm.DB, config config.Config, log logger.Logger) error {
	log = log.Function("seed")
	log.Info("Seeding development data")

	password, err := services.HashPassword("password")
	if err != nil {
		return log.Err("failed to hash seed password", err)
	}

	providers := []User{
		{
			FullName:       "Dr. Amina Otieno",
			Email:          "amina.otieno@example.com",
			HashedPassword: password,
			IsProvider:     true,
			Role:           stringPtr(RoleDoctor),
			HospitalName:   HospitalAgaKhan,
		}, {
			FullName:       "Nurse Grace Wanjiru",
			Email:          "grace.wanjiru@example.com",
			HashedPassword: password,
			IsProvider:     true,
			Role:           stringPtr(RoleNurse),
			HospitalName:   HospitalNairobiWomen,
		}, {
			FullName:       "Midwife Esther Njeri",
			Email:          "esther.njeri@example.com",
			HashedPassword: password,
			IsProvider:     true,
			Role:           stringPtr(RoleMidwife),
			HospitalName:   HospitalMediCare,
		}, {
			FullName:       "Dr. Daniel Kiprop",
			Email:          "daniel.kiprop@example.com",
			HashedPassword: password,
			IsProvider:     true,
			Role:           stringPtr(RoleDoctor),
			HospitalName:   HospitalUzaziSafe,
		},
	}

	for _, provider := range providers {
		var existing User
		if err := db.First(&existing, "email = ?", provider.Email).Error; err == nil {
			log.Info("Provider already exists", "email", provider.Email)
			continue
		}
		log.Info("Seeding provider", "email", provider.Email)
		if err := db.Create(&provider).Error; err != nil {
			log.Er("failed to create provider", err, "email", provider.Email)
		}
	}

	demoEmail := "mary.akinyi@example.com"
	var existing User
	if err := db.First(&existing, "email = ?", demoEmail).Error; err == nil {
		log.Info("Demo patient already exists", "email", demoEmail)
		return nil
	}

	patientUser := User{
		FullName:       "Mary Akinyi",
		Email:          demoEmail,
		HashedPassword: password,
		IsProvider:     false,
		HospitalName:   HospitalAgaKhan,
	}
	if err := db.Create(&patientUser).Error; err != nil {
		return log.Err("failed to create demo patient user", err)
	}

	var assigned User
	var providerID *string
	if err := db.First(&assigned, "is_provider = ? AND hospital_name = ?",
		true, patientUser.HospitalName).Error; err == nil {
		providerID = &assigned.ID
	}

	patient := Patient{
		FullName:     patientUser.FullName,
		UserID:       patientUser.ID,
		HospitalName: patientUser.HospitalName,
		RiskLevel:    RiskLevelUnknown,
		ProviderID:   providerID,
	}
	if err := db.Create(&patient).Error; err != nil {
		return log.Err("failed to create demo patient profile", err)
	}

	log.Info("Seeding complete")
	return nil
}
