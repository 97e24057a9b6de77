package repositories

import (
	"context"
	"time"

	"server/internal/database"
	"server/internal/logger"
	. "server/internal/models"
	"server/internal/services"

	"gorm.io/gorm"
)

type PatientRepository interface {
	GetByID(ctx context.Context, id string) (*Patient, error)
	GetByUserID(ctx context.Context, userID string) (*Patient, error)
	GetByFullName(ctx context.Context, fullName string) (*Patient, error)
	Create(ctx context.Context, patient *Patient) error
	Update(ctx context.Context, patient *Patient) error
	Delete(ctx context.Context, id string) error
	GetByProvider(ctx context.Context, providerID string) ([]*Patient, error)
	CountByProvider(ctx context.Context, providerID string) (int64, error)
	CountByProviderAndRisk(ctx context.Context, providerID, riskLevel string) (int64, error)
	GetRecentByProvider(ctx context.Context, providerID string, since time.Time, limit int) ([]*Patient, error)
}

type patientRepository struct {
	db  database.DB
	log logger.Logger
}

func NewPatient(db database.DB) PatientRepository {
	return &patientRepository{
		db:  db,
		log: logger.New("patientRepository"),
	}
}

func (r *patientRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := services.GetTransaction(ctx); ok {
		return tx
	}
	return r.db.SQLWithContext(ctx)
}

func (r *patientRepository) GetByID(ctx context.Context, id string) (*Patient, error) {
	var patient Patient
	if err := r.getDB(ctx).First(&patient, "id = ?", id).Error; err != nil {
		return nil, r.log.Function("GetByID").Err("failed to get patient by id", err, "id", id)
	}

	return &patient, nil
}

func (r *patientRepository) GetByUserID(ctx context.Context, userID string) (*Patient, error) {
	var patient Patient
	if err := r.getDB(ctx).First(&patient, "user_id = ?", userID).Error; err != nil {
		return nil, r.log.Function("GetByUserID").
			Err("failed to get patient by user id", err, "userID", userID)
	}

	return &patient, nil
}

func (r *patientRepository) GetByFullName(ctx context.Context, fullName string) (*Patient, error) {
	var patient Patient
	if err := r.getDB(ctx).First(&patient, "full_name = ?", fullName).Error; err != nil {
		return nil, r.log.Function("GetByFullName").
			Err("failed to get patient by name", err, "fullName", fullName)
	}

	return &patient, nil
}

func (r *patientRepository) Create(ctx context.Context, patient *Patient) error {
	if err := r.getDB(ctx).Create(patient).Error; err != nil {
		return r.log.Function("Create").
			Err("failed to create patient", err, "userID", patient.UserID)
	}

	return nil
}

func (r *patientRepository) Update(ctx context.Context, patient *Patient) error {
	if err := r.getDB(ctx).Save(patient).Error; err != nil {
		return r.log.Function("Update").
			Err("failed to update patient", err, "patientID", patient.ID)
	}

	r.invalidateDashboardCache(ctx, patient.ID)

	return nil
}

func (r *patientRepository) Delete(ctx context.Context, id string) error {
	log := r.log.Function("Delete")

	// History rows go with the patient; unscoped so the cascade fires.
	if err := r.getDB(ctx).Unscoped().Where("patient_id = ?", id).Delete(&RiskHistory{}).Error; err != nil {
		return log.Err("failed to delete patient risk history", err, "patientID", id)
	}

	if err := r.getDB(ctx).Unscoped().Delete(&Patient{}, "id = ?", id).Error; err != nil {
		return log.Err("failed to delete patient", err, "patientID", id)
	}

	r.invalidateDashboardCache(ctx, id)

	return nil
}

func (r *patientRepository) GetByProvider(ctx context.Context, providerID string) ([]*Patient, error) {
	var patients []*Patient
	if err := r.getDB(ctx).Where("provider_id = ?", providerID).Find(&patients).Error; err != nil {
		return nil, r.log.Function("GetByProvider").
			Err("failed to get patients by provider", err, "providerID", providerID)
	}

	return patients, nil
}

func (r *patientRepository) CountByProvider(ctx context.Context, providerID string) (int64, error) {
	var count int64
	err := r.getDB(ctx).Model(&Patient{}).
		Where("provider_id = ?", providerID).
		Count(&count).Error
	if err != nil {
		return 0, r.log.Function("CountByProvider").
			Err("failed to count patients", err, "providerID", providerID)
	}

	return count, nil
}

func (r *patientRepository) CountByProviderAndRisk(ctx context.Context, providerID, riskLevel string) (int64, error) {
	var count int64
	err := r.getDB(ctx).Model(&Patient{}).
		Where("provider_id = ? AND risk_level = ?", providerID, riskLevel).
		Count(&count).Error
	if err != nil {
		return 0, r.log.Function("CountByProviderAndRisk").
			Err("failed to count patients by risk", err, "providerID", providerID)
	}

	return count, nil
}

func (r *patientRepository) GetRecentByProvider(
	ctx context.Context,
	providerID string,
	since time.Time,
	limit int,
) ([]*Patient, error) {
	var patients []*Patient
	err := r.getDB(ctx).
		Where("provider_id = ? AND created_at >= ?", providerID, since).
		Order("created_at DESC").
		Limit(limit).
		Find(&patients).Error
	if err != nil {
		return nil, r.log.Function("GetRecentByProvider").
			Err("failed to get recent patients", err, "providerID", providerID)
	}

	return patients, nil
}

func (r *patientRepository) invalidateDashboardCache(ctx context.Context, patientID string) {
	if err := database.NewCacheBuilder(r.db.Cache.Patient, patientID).
		WithContext(ctx).
		Delete(); err != nil {
		r.log.Function("invalidateDashboardCache").
			Warn("failed to invalidate patient dashboard cache", "patientID", patientID, "error", err)
	}
}
