package appointmentController

import (
	"context"

	"server/internal/database"
	"server/internal/logger"
	. "server/internal/models"
	"server/internal/repositories"
)

type AppointmentController struct {
	db              database.DB
	appointmentRepo repositories.AppointmentRepository
	patientRepo     repositories.PatientRepository
	userRepo        repositories.UserRepository
	log             logger.Logger
}

func New(
	db database.DB,
	appointmentRepo repositories.AppointmentRepository,
	patientRepo repositories.PatientRepository,
	userRepo repositories.UserRepository,
) *AppointmentController {
	return &AppointmentController{
		db:              db,
		appointmentRepo: appointmentRepo,
		patientRepo:     patientRepo,
		userRepo:        userRepo,
		log:             logger.New("AppointmentController"),
	}
}

// Book creates an appointment between a patient and a provider located by
// email first, then by ID.
func (ac *AppointmentController) Book(
	ctx context.Context,
	request *BookAppointmentRequest,
) (*AppointmentResponse, error) {
	log := ac.log.Function("Book")

	var provider *User
	if request.ProviderEmail != "" {
		if found, err := ac.userRepo.GetProviderByEmail(ctx, request.ProviderEmail); err == nil {
			provider = found
		}
	}
	if provider == nil && request.ProviderID != "" {
		if found, err := ac.userRepo.GetProviderByID(ctx, request.ProviderID); err == nil {
			provider = found
		}
	}
	if provider == nil {
		return nil, log.Error("provider not found",
			"providerEmail", request.ProviderEmail, "providerID", request.ProviderID)
	}

	patient, err := ac.patientRepo.GetByFullName(ctx, request.PatientName)
	if err != nil {
		return nil, log.Err("patient profile not found", err, "patientName", request.PatientName)
	}

	if request.Date.IsZero() {
		return nil, log.Error("appointment date is required")
	}

	status := request.Status
	if status == "" {
		status = AppointmentScheduled
	}
	if !ValidAppointmentStatus(status) {
		return nil, log.Error("invalid appointment status", "status", status)
	}

	hospitalName := request.HospitalName
	if hospitalName == nil {
		hospitalName = &patient.HospitalName
	}

	appointment := &Appointment{
		PatientName:     request.PatientName,
		Date:            request.Date,
		AppointmentType: request.AppointmentType,
		Status:          status,
		HospitalName:    hospitalName,
		ProviderID:      &provider.ID,
	}

	if err := ac.appointmentRepo.Create(ctx, appointment); err != nil {
		return nil, err
	}

	// The next-appointment field on the dashboard is now stale.
	ac.invalidateDashboard(ctx, patient.ID)

	return toResponse(appointment, provider), nil
}

func (ac *AppointmentController) ByProviderEmail(ctx context.Context, email string) ([]AppointmentResponse, error) {
	provider, err := ac.userRepo.GetProviderByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	appointments, err := ac.appointmentRepo.GetByProvider(ctx, provider.ID, true)
	if err != nil {
		return nil, err
	}

	results := make([]AppointmentResponse, 0, len(appointments))
	for _, a := range appointments {
		results = append(results, *toResponse(a, provider))
	}

	return results, nil
}

func (ac *AppointmentController) ByPatientEmail(ctx context.Context, email string) ([]AppointmentResponse, error) {
	log := ac.log.Function("ByPatientEmail")

	user, err := ac.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user.IsProvider {
		return nil, log.Error("user is not a patient", "email", email)
	}

	patient, err := ac.patientRepo.GetByUserID(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	appointments, err := ac.appointmentRepo.GetByPatientName(ctx, patient.FullName)
	if err != nil {
		return nil, err
	}

	results := make([]AppointmentResponse, 0, len(appointments))
	for _, a := range appointments {
		response := toResponse(a, a.Provider)
		if response.HospitalName == nil {
			response.HospitalName = &patient.HospitalName
		}
		results = append(results, *response)
	}

	return results, nil
}

func (ac *AppointmentController) UpdateStatus(
	ctx context.Context,
	appointmentID, status string,
) (*Appointment, error) {
	log := ac.log.Function("UpdateStatus")

	if !ValidAppointmentStatus(status) {
		return nil, log.Error("invalid status value", "status", status)
	}

	appointment, err := ac.appointmentRepo.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	appointment.Status = status
	if err := ac.appointmentRepo.Update(ctx, appointment); err != nil {
		return nil, err
	}

	if patient, err := ac.patientRepo.GetByFullName(ctx, appointment.PatientName); err == nil {
		ac.invalidateDashboard(ctx, patient.ID)
	}

	return appointment, nil
}

func (ac *AppointmentController) invalidateDashboard(ctx context.Context, patientID string) {
	if err := database.NewCacheBuilder(ac.db.Cache.Patient, patientID).
		WithContext(ctx).
		Delete(); err != nil {
		ac.log.Function("invalidateDashboard").
			Warn("failed to invalidate patient dashboard cache", "patientID", patientID, "error", err)
	}
}

func toResponse(a *Appointment, provider *User) *AppointmentResponse {
	response := &AppointmentResponse{
		ID:              a.ID,
		PatientName:     a.PatientName,
		Date:            a.Date,
		AppointmentType: a.AppointmentType,
		Status:          a.Status,
		HospitalName:    a.HospitalName,
		ProviderID:      a.ProviderID,
	}
	if provider != nil {
		response.ProviderName = &provider.FullName
	}
	return response
}
