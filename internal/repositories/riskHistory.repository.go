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

// RiskHistoryRepository exposes append and read operations only: history rows
// are immutable once written.
type RiskHistoryRepository interface {
	Create(ctx context.Context, record *RiskHistory) error
	GetLatestByPatient(ctx context.Context, patientID string) (*RiskHistory, error)
	GetByPatient(ctx context.Context, patientID string) ([]*RiskHistory, error)
	GetByProviderSince(ctx context.Context, providerID string, since time.Time) ([]*RiskHistory, error)
	GetRecentByProvider(ctx context.Context, providerID string, since time.Time, limit int) ([]*RiskHistory, error)
}

type riskHistoryRepository struct {
	db  database.DB
	log logger.Logger
}

func NewRiskHistory(db database.DB) RiskHistoryRepository {
	return &riskHistoryRepository{
		db:  db,
		log: logger.New("riskHistoryRepository"),
	}
}

func (r *riskHistoryRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := services.GetTransaction(ctx); ok {
		return tx
	}
	return r.db.SQLWithContext(ctx)
}

func (r *riskHistoryRepository) Create(ctx context.Context, record *RiskHistory) error {
	if err := r.getDB(ctx).Create(record).Error; err != nil {
		return r.log.Function("Create").
			Err("failed to append risk history", err, "patientID", record.PatientID)
	}

	return nil
}

func (r *riskHistoryRepository) GetLatestByPatient(ctx context.Context, patientID string) (*RiskHistory, error) {
	var record RiskHistory
	err := r.getDB(ctx).
		Where("patient_id = ?", patientID).
		Order("created_at DESC").
		First(&record).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, r.log.Function("GetLatestByPatient").
			Err("failed to get latest risk record", err, "patientID", patientID)
	}

	return &record, nil
}

func (r *riskHistoryRepository) GetByPatient(ctx context.Context, patientID string) ([]*RiskHistory, error) {
	var records []*RiskHistory
	err := r.getDB(ctx).
		Where("patient_id = ?", patientID).
		Order("created_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, r.log.Function("GetByPatient").
			Err("failed to get risk history", err, "patientID", patientID)
	}

	return records, nil
}

func (r *riskHistoryRepository) GetByProviderSince(
	ctx context.Context,
	providerID string,
	since time.Time,
) ([]*RiskHistory, error) {
	var records []*RiskHistory
	err := r.getDB(ctx).
		Joins("JOIN patients ON patients.id = risk_histories.patient_id").
		Where("patients.provider_id = ? AND risk_histories.created_at >= ?", providerID, since).
		Find(&records).Error
	if err != nil {
		return nil, r.log.Function("GetByProviderSince").
			Err("failed to get provider risk history", err, "providerID", providerID)
	}

	return records, nil
}

func (r *riskHistoryRepository) GetRecentByProvider(
	ctx context.Context,
	providerID string,
	since time.Time,
	limit int,
) ([]*RiskHistory, error) {
	var records []*RiskHistory
	err := r.getDB(ctx).
		Preload("Patient").
		Joins("JOIN patients ON patients.id = risk_histories.patient_id").
		Where("patients.provider_id = ? AND risk_histories.created_at >= ?", providerID, since).
		Order("risk_histories.created_at DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, r.log.Function("GetRecentByProvider").
			Err("failed to get recent risk history", err, "providerID", providerID)
	}

	return records, nil
}
