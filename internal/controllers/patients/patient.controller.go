package patientController

import (
	"context"
	"encoding/json"
	"time"

	"server/internal/database"
	"server/internal/logger"
	. "server/internal/models"
	"server/internal/repositories"
	"server/internal/risk"
)

const DASHBOARD_CACHE_EXPIRY = 5 * time.Minute

type PatientController struct {
	db              database.DB
	patientRepo     repositories.PatientRepository
	userRepo        repositories.UserRepository
	historyRepo     repositories.RiskHistoryRepository
	appointmentRepo repositories.AppointmentRepository
	log             logger.Logger
}

func New(
	db database.DB,
	patientRepo repositories.PatientRepository,
	userRepo repositories.UserRepository,
	historyRepo repositories.RiskHistoryRepository,
	appointmentRepo repositories.AppointmentRepository,
) *PatientController {
	return &PatientController{
		db:              db,
		patientRepo:     patientRepo,
		userRepo:        userRepo,
		historyRepo:     historyRepo,
		appointmentRepo: appointmentRepo,
		log:             logger.New("PatientController"),
	}
}

// Dashboard assembles the logged-in patient's overview. Cached per patient;
// assessment and profile writes invalidate the entry.
func (pc *PatientController) Dashboard(ctx context.Context, user *User) (*PatientDashboard, error) {
	log := pc.log.Function("Dashboard")

	patient, err := pc.patientRepo.GetByUserID(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	var dashboard PatientDashboard
	found, err := database.NewCacheBuilder(pc.db.Cache.Patient, patient.ID).
		WithContext(ctx).
		Get(&dashboard)
	if err != nil {
		log.Warn("failed to read dashboard from cache", "patientID", patient.ID, "error", err)
	}
	if found {
		return &dashboard, nil
	}

	providerName := "Unassigned"
	if patient.ProviderID != nil {
		provider, err := pc.userRepo.GetByID(ctx, *patient.ProviderID)
		if err != nil {
			log.Warn("assigned provider not loadable", "providerID", *patient.ProviderID, "error", err)
		} else {
			providerName = provider.FullName
		}
	}

	latest, err := pc.historyRepo.GetLatestByPatient(ctx, patient.ID)
	if err != nil {
		return nil, err
	}

	currentRisk := RiskLevelUnknown
	var lastAssessment *time.Time
	if latest != nil {
		currentRisk = latest.RiskLevel
		created := latest.CreatedAt
		lastAssessment = &created
	}

	var nextAppointment *string
	next, err := pc.appointmentRepo.GetNextScheduled(ctx, patient.FullName, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if next != nil {
		formatted := next.Date.Format(time.RFC3339)
		nextAppointment = &formatted
	}

	dashboard = PatientDashboard{
		PatientID:             patient.ID,
		FullName:              patient.FullName,
		Email:                 user.Email,
		HospitalName:          patient.HospitalName,
		ProviderName:          providerName,
		ProviderID:            patient.ProviderID,
		CurrentRiskLevel:      currentRisk,
		LastAssessmentDate:    lastAssessment,
		NextAppointment:       nextAppointment,
		Age:                   patient.Age,
		PreExistingDiabetes:   stringValue(patient.PreExistingDiabetes),
		GestationalDiabetes:   stringValue(patient.GestationalDiabetes),
		PreviousComplications: stringValue(patient.PreviousComplications),
	}

	if err := database.NewCacheBuilder(pc.db.Cache.Patient, patient.ID).
		WithStruct(&dashboard).
		WithTTL(DASHBOARD_CACHE_EXPIRY).
		WithContext(ctx).
		Set(); err != nil {
		log.Warn("failed to cache dashboard", "patientID", patient.ID, "error", err)
	}

	return &dashboard, nil
}

// UpdateStaticInfo is the patient-initiated profile edit. Unlike assessment
// submissions it may overwrite already-set fields.
func (pc *PatientController) UpdateStaticInfo(
	ctx context.Context,
	user *User,
	request *UpdateStaticInfoRequest,
) (*Patient, error) {
	patient, err := pc.patientRepo.GetByUserID(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	if request.Age != nil {
		patient.Age = request.Age
	}
	if request.PreExistingDiabetes != nil {
		patient.PreExistingDiabetes = request.PreExistingDiabetes
	}
	if request.GestationalDiabetes != nil {
		patient.GestationalDiabetes = request.GestationalDiabetes
	}
	if request.PreviousComplications != nil {
		patient.PreviousComplications = request.PreviousComplications
	}

	if err := pc.patientRepo.Update(ctx, patient); err != nil {
		return nil, err
	}

	return patient, nil
}

// LatestRisk is the provider-facing view of a patient's newest assessment.
type LatestRisk struct {
	RiskLevel           string          `json:"risk_level"`
	HighRiskProbability float64         `json:"high_risk_probability"`
	LowRiskProbability  float64         `json:"low_risk_probability"`
	ContributingFactors risk.FactorList `json:"contributing_factors"`
	CreatedAt           time.Time       `json:"created_at"`
	Vitals              risk.Vitals     `json:"vitals"`
	PatientInfo         PatientInfo     `json:"patient_info"`
}

type PatientInfo struct {
	Age                   *int    `json:"age"`
	GestationalDiabetes   *string `json:"gestational_diabetes"`
	PreExistingDiabetes   *string `json:"pre_existing_diabetes"`
	PreviousComplications *string `json:"previous_complications"`
}

// ProfileForUser resolves the patient profile owned by a user account.
func (pc *PatientController) ProfileForUser(ctx context.Context, userID string) (*Patient, error) {
	return pc.patientRepo.GetByUserID(ctx, userID)
}

func (pc *PatientController) LatestRisk(ctx context.Context, patientID string) (*LatestRisk, error) {
	log := pc.log.Function("LatestRisk")

	patient, err := pc.patientRepo.GetByID(ctx, patientID)
	if err != nil {
		return nil, err
	}

	record, err := pc.historyRepo.GetLatestByPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, nil
	}

	var factors risk.FactorList
	if err := json.Unmarshal([]byte(record.ContributingFactors), &factors); err != nil {
		log.Warn("stored factors unreadable", "recordID", record.ID, "error", err)
		factors = risk.FactorList{}
	}

	return &LatestRisk{
		RiskLevel:           record.RiskLevel,
		HighRiskProbability: record.HighRiskProbability,
		LowRiskProbability:  record.LowRiskProbability,
		ContributingFactors: factors,
		CreatedAt:           record.CreatedAt,
		Vitals: risk.Vitals{
			SystolicBP:  record.SystolicBP,
			DiastolicBP: record.DiastolicBP,
			BloodSugar:  record.BloodSugar,
			BodyTemp:    record.BodyTemp,
			HeartRate:   record.HeartRate,
		},
		PatientInfo: PatientInfo{
			Age:                   patient.Age,
			GestationalDiabetes:   patient.GestationalDiabetes,
			PreExistingDiabetes:   patient.PreExistingDiabetes,
			PreviousComplications: patient.PreviousComplications,
		},
	}, nil
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
