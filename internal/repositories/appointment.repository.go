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

type AppointmentRepository interface {
	GetByID(ctx context.Context, id string) (*Appointment, error)
	Create(ctx context.Context, appointment *Appointment) error
	Update(ctx context.Context, appointment *Appointment) error
	GetByProvider(ctx context.Context, providerID string, newestFirst bool) ([]*Appointment, error)
	GetByPatientName(ctx context.Context, patientName string) ([]*Appointment, error)
	GetNextScheduled(ctx context.Context, patientName string, after time.Time) (*Appointment, error)
	CountScheduledByProvider(ctx context.Context, providerID string) (int64, error)
	GetRecentByProvider(ctx context.Context, providerID string, since time.Time, limit int) ([]*Appointment, error)
}

type appointmentRepository struct {
	db  database.DB
	log logger.Logger
}

func NewAppointment(db database.DB) AppointmentRepository {
	return &appointmentRepository{
		db:  db,
		log: logger.New("appointmentRepository"),
	}
}

func (r *appointmentRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := services.GetTransaction(ctx); ok {
		return tx
	}
	return r.db.SQLWithContext(ctx)
}

func (r *appointmentRepository) GetByID(ctx context.Context, id string) (*Appointment, error) {
	var appointment Appointment
	if err := r.getDB(ctx).First(&appointment, "id = ?", id).Error; err != nil {
		return nil, r.log.Function("GetByID").
			Err("failed to get appointment", err, "id", id)
	}

	return &appointment, nil
}

func (r *appointmentRepository) Create(ctx context.Context, appointment *Appointment) error {
	if err := r.getDB(ctx).Create(appointment).Error; err != nil {
		return r.log.Function("Create").
			Err("failed to create appointment", err, "patientName", appointment.PatientName)
	}

	return nil
}

func (r *appointmentRepository) Update(ctx context.Context, appointment *Appointment) error {
	if err := r.getDB(ctx).Save(appointment).Error; err != nil {
		return r.log.Function("Update").
			Err("failed to update appointment", err, "id", appointment.ID)
	}

	return nil
}

func (r *appointmentRepository) GetByProvider(
	ctx context.Context,
	providerID string,
	newestFirst bool,
) ([]*Appointment, error) {
	order := "date ASC"
	if newestFirst {
		order = "date DESC"
	}

	var appointments []*Appointment
	err := r.getDB(ctx).
		Where("provider_id = ?", providerID).
		Order(order).
		Find(&appointments).Error
	if err != nil {
		return nil, r.log.Function("GetByProvider").
			Err("failed to get appointments by provider", err, "providerID", providerID)
	}

	return appointments, nil
}

func (r *appointmentRepository) GetByPatientName(ctx context.Context, patientName string) ([]*Appointment, error) {
	var appointments []*Appointment
	err := r.getDB(ctx).
		Preload("Provider").
		Where("patient_name = ?", patientName).
		Order("date DESC").
		Find(&appointments).Error
	if err != nil {
		return nil, r.log.Function("GetByPatientName").
			Err("failed to get appointments by patient", err, "patientName", patientName)
	}

	return appointments, nil
}

func (r *appointmentRepository) GetNextScheduled(
	ctx context.Context,
	patientName string,
	after time.Time,
) (*Appointment, error) {
	var appointment Appointment
	err := r.getDB(ctx).
		Where("patient_name = ? AND status = ? AND date > ?",
			patientName, AppointmentScheduled, after).
		Order("date ASC").
		First(&appointment).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, r.log.Function("GetNextScheduled").
			Err("failed to get next appointment", err, "patientName", patientName)
	}

	return &appointment, nil
}

func (r *appointmentRepository) CountScheduledByProvider(ctx context.Context, providerID string) (int64, error) {
	var count int64
	err := r.getDB(ctx).Model(&Appointment{}).
		Where("provider_id = ? AND status = ?", providerID, AppointmentScheduled).
		Count(&count).Error
	if err != nil {
		return 0, r.log.Function("CountScheduledByProvider").
			Err("failed to count scheduled appointments", err, "providerID", providerID)
	}

	return count, nil
}

func (r *appointmentRepository) GetRecentByProvider(
	ctx context.Context,
	providerID string,
	since time.Time,
	limit int,
) ([]*Appointment, error) {
	var appointments []*Appointment
	err := r.getDB(ctx).
		Where("provider_id = ? AND updated_at >= ?", providerID, since).
		Order("updated_at DESC").
		Limit(limit).
		Find(&appointments).Error
	if err != nil {
		return nil, r.log.Function("GetRecentByProvider").
			Err("failed to get recent appointments", err, "providerID", providerID)
	}

	return appointments, nil
}
