package providerController

import (
	"context"
	"fmt"
	"sort"
	"time"

	"server/internal/logger"
	. "server/internal/models"
	"server/internal/repositories"
	"server/internal/risk"
)

type ProviderController struct {
	userRepo        repositories.UserRepository
	patientRepo     repositories.PatientRepository
	appointmentRepo repositories.AppointmentRepository
	historyRepo     repositories.RiskHistoryRepository
	log             logger.Logger
}

func New(
	userRepo repositories.UserRepository,
	patientRepo repositories.PatientRepository,
	appointmentRepo repositories.AppointmentRepository,
	historyRepo repositories.RiskHistoryRepository,
) *ProviderController {
	return &ProviderController{
		userRepo:        userRepo,
		patientRepo:     patientRepo,
		appointmentRepo: appointmentRepo,
		historyRepo:     historyRepo,
		log:             logger.New("ProviderController"),
	}
}

type ProviderOverview struct {
	ProviderID            string `json:"provider_id"`
	ProviderName          string `json:"provider_name"`
	Email                 string `json:"email"`
	HospitalName          string `json:"hospital_name"`
	Role                  string `json:"role"`
	TotalPatients         int64  `json:"total_patients"`
	HighRiskPatients      int64  `json:"high_risk_patients"`
	ScheduledAppointments int64  `json:"scheduled_appointments"`
}

func (pc *ProviderController) Overview(ctx context.Context, provider *User) (*ProviderOverview, error) {
	totalPatients, err := pc.patientRepo.CountByProvider(ctx, provider.ID)
	if err != nil {
		return nil, err
	}

	highRisk, err := pc.patientRepo.CountByProviderAndRisk(ctx, provider.ID, risk.LabelHighRisk)
	if err != nil {
		return nil, err
	}

	scheduled, err := pc.appointmentRepo.CountScheduledByProvider(ctx, provider.ID)
	if err != nil {
		return nil, err
	}

	role := "Provider"
	if provider.Role != nil {
		role = *provider.Role
	}

	return &ProviderOverview{
		ProviderID:            provider.ID,
		ProviderName:          provider.FullName,
		Email:                 provider.Email,
		HospitalName:          provider.HospitalName,
		Role:                  role,
		TotalPatients:         totalPatients,
		HighRiskPatients:      highRisk,
		ScheduledAppointments: scheduled,
	}, nil
}

func (pc *ProviderController) Patients(ctx context.Context, providerID string) ([]*Patient, error) {
	if _, err := pc.userRepo.GetProviderByID(ctx, providerID); err != nil {
		return nil, err
	}

	return pc.patientRepo.GetByProvider(ctx, providerID)
}

func (pc *ProviderController) Appointments(ctx context.Context, providerID string) ([]AppointmentResponse, error) {
	provider, err := pc.userRepo.GetProviderByID(ctx, providerID)
	if err != nil {
		return nil, err
	}

	appointments, err := pc.appointmentRepo.GetByProvider(ctx, providerID, false)
	if err != nil {
		return nil, err
	}

	results := make([]AppointmentResponse, 0, len(appointments))
	for _, a := range appointments {
		results = append(results, AppointmentResponse{
			ID:              a.ID,
			PatientName:     a.PatientName,
			Date:            a.Date,
			AppointmentType: a.AppointmentType,
			Status:          a.Status,
			HospitalName:    a.HospitalName,
			ProviderID:      &provider.ID,
			ProviderName:    &provider.FullName,
		})
	}

	return results, nil
}

type DailyRisk struct {
	Date            string  `json:"date"`
	AssessmentCount int     `json:"assessment_count"`
	AvgHighProb     float64 `json:"avg_high_prob"`
}

type RiskSummary struct {
	TotalAssessments int         `json:"total_assessments"`
	HighRiskCount    int         `json:"high_risk_count"`
	LowRiskCount     int         `json:"low_risk_count"`
	AvgRisk          float64     `json:"avg_risk"`
	Weekly           []DailyRisk `json:"weekly"`
}

// RiskSummary aggregates the provider's patients' assessments over the last
// two weeks into totals and a per-day trend.
func (pc *ProviderController) RiskSummary(ctx context.Context, providerID string) (*RiskSummary, error) {
	if _, err := pc.userRepo.GetProviderByID(ctx, providerID); err != nil {
		return nil, err
	}

	since := time.Now().UTC().AddDate(0, 0, -14)
	entries, err := pc.historyRepo.GetByProviderSince(ctx, providerID, since)
	if err != nil {
		return nil, err
	}

	summary := &RiskSummary{Weekly: []DailyRisk{}}
	if len(entries) == 0 {
		return summary, nil
	}

	type dayStats struct {
		count     int
		totalProb float64
	}
	daily := map[string]*dayStats{}

	var totalProb float64
	for _, entry := range entries {
		summary.TotalAssessments++
		totalProb += entry.HighRiskProbability

		switch entry.RiskLevel {
		case risk.LabelHighRisk:
			summary.HighRiskCount++
		case risk.LabelLowRisk:
			summary.LowRiskCount++
		}

		key := entry.CreatedAt.UTC().Format("2006-01-02")
		if daily[key] == nil {
			daily[key] = &dayStats{}
		}
		daily[key].count++
		daily[key].totalProb += entry.HighRiskProbability
	}

	summary.AvgRisk = totalProb / float64(summary.TotalAssessments)

	days := make([]string, 0, len(daily))
	for day := range daily {
		days = append(days, day)
	}
	sort.Strings(days)

	for _, day := range days {
		stats := daily[day]
		summary.Weekly = append(summary.Weekly, DailyRisk{
			Date:            day,
			AssessmentCount: stats.count,
			AvgHighProb:     stats.totalProb / float64(stats.count),
		})
	}

	return summary, nil
}

type ActivityEntry struct {
	ID   string    `json:"id"`
	Kind string    `json:"kind"`
	Text string    `json:"text"`
	Time time.Time `json:"time"`
}

const activityFeedLimit = 5

// Activity merges recent patient additions, risk updates and appointment
// changes into one feed, newest first.
func (pc *ProviderController) Activity(ctx context.Context, providerID string) ([]ActivityEntry, error) {
	if _, err := pc.userRepo.GetProviderByID(ctx, providerID); err != nil {
		return nil, err
	}

	since := time.Now().UTC().AddDate(0, 0, -7)
	var activities []ActivityEntry

	patients, err := pc.patientRepo.GetRecentByProvider(ctx, providerID, since, 10)
	if err != nil {
		return nil, err
	}
	for _, p := range patients {
		activities = append(activities, ActivityEntry{
			ID:   fmt.Sprintf("patient-%s", p.ID),
			Kind: "patient",
			Text: fmt.Sprintf("New patient %s added to your care list.", p.FullName),
			Time: p.CreatedAt,
		})
	}

	risks, err := pc.historyRepo.GetRecentByProvider(ctx, providerID, since, 10)
	if err != nil {
		return nil, err
	}
	for _, r := range risks {
		patientName := r.PatientID
		if r.Patient != nil {
			patientName = r.Patient.FullName
		}
		activities = append(activities, ActivityEntry{
			ID:   fmt.Sprintf("risk-%s", r.ID),
			Kind: "risk",
			Text: fmt.Sprintf("Risk level updated for %s: %s.", patientName, r.RiskLevel),
			Time: r.CreatedAt,
		})
	}

	appointments, err := pc.appointmentRepo.GetRecentByProvider(ctx, providerID, since, 10)
	if err != nil {
		return nil, err
	}
	for _, a := range appointments {
		activities = append(activities, ActivityEntry{
			ID:   fmt.Sprintf("appt-%s", a.ID),
			Kind: "appointment",
			Text: fmt.Sprintf("Appointment with %s: %s.", a.PatientName, a.Status),
			Time: a.UpdatedAt,
		})
	}

	sort.Slice(activities, func(i, j int) bool {
		return activities[i].Time.After(activities[j].Time)
	})

	if len(activities) > activityFeedLimit {
		activities = activities[:activityFeedLimit]
	}

	return activities, nil
}

// Discharge removes a patient from the provider's care. Only the assigned
// provider may do this; the patient's history rows cascade away with them.
func (pc *ProviderController) Discharge(ctx context.Context, provider *User, providerID, patientID string) error {
	log := pc.log.Function("Discharge")

	if !provider.IsProvider || provider.ID != providerID {
		return log.Error("not authorized to remove this patient",
			"providerID", providerID, "userID", provider.ID)
	}

	patient, err := pc.patientRepo.GetByID(ctx, patientID)
	if err != nil {
		return err
	}

	if patient.ProviderID == nil || *patient.ProviderID != providerID {
		return log.Error("patient is not assigned to this provider",
			"patientID", patientID, "providerID", providerID)
	}

	return pc.patientRepo.Delete(ctx, patientID)
}
