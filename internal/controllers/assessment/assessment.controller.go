package assessmentController

import (
	"context"
	"encoding/json"
	"time"

	"server/internal/database"
	"server/internal/events"
	"server/internal/logger"
	. "server/internal/models"
	"server/internal/repositories"
	"server/internal/risk"
	"server/internal/services"

	"github.com/spf13/cast"
)

// AssessmentController records completed risk assessments: the first-write
// fill of static patient fields, the immutable history append and the
// denormalized summary update all commit in one transaction.
type AssessmentController struct {
	db                 database.DB
	assessor           *risk.Assessor
	patientRepo        repositories.PatientRepository
	historyRepo        repositories.RiskHistoryRepository
	transactionService *services.TransactionService
	eventBus           *events.EventBus
	log                logger.Logger
}

func New(
	db database.DB,
	assessor *risk.Assessor,
	patientRepo repositories.PatientRepository,
	historyRepo repositories.RiskHistoryRepository,
	transactionService *services.TransactionService,
	eventBus *events.EventBus,
) *AssessmentController {
	return &AssessmentController{
		db:                 db,
		assessor:           assessor,
		patientRepo:        patientRepo,
		historyRepo:        historyRepo,
		transactionService: transactionService,
		eventBus:           eventBus,
		log:                logger.New("AssessmentController"),
	}
}

// AssessmentRecord is the response for a recorded assessment.
type AssessmentRecord struct {
	RecordID  string      `json:"record_id"`
	PatientID string      `json:"patient_id"`
	Result    risk.Result `json:"risk_result"`
	Vitals    risk.Vitals `json:"saved_vitals"`
}

// AssessAndRecord scores the submission and persists the outcome. Scoring
// happens outside the transaction (it is pure); persistence is
// all-or-nothing. Concurrent submissions for the same patient are not
// serialized here; the store's transaction isolation is the only guard on
// the first-write check.
func (c *AssessmentController) AssessAndRecord(
	ctx context.Context,
	user *User,
	raw map[string]any,
) (*AssessmentRecord, error) {
	log := c.log.Function("AssessAndRecord")

	patient, err := c.patientRepo.GetByUserID(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	result, vector, err := c.assessor.AssessRisk(raw)
	if err != nil {
		return nil, err
	}

	factorsJSON, err := json.Marshal(result.TopContributingFactors)
	if err != nil {
		return nil, log.Err("failed to serialize contributing factors", err)
	}

	vitals := vector.Vitals()
	record := &RiskHistory{
		PatientID:           patient.ID,
		RiskLevel:           result.Prediction,
		HighRiskProbability: result.HighRiskProbability,
		LowRiskProbability:  result.LowRiskProbability,
		ContributingFactors: string(factorsJSON),
		SystolicBP:          vitals.SystolicBP,
		DiastolicBP:         vitals.DiastolicBP,
		BloodSugar:          vitals.BloodSugar,
		BodyTemp:            vitals.BodyTemp,
		HeartRate:           vitals.HeartRate,
	}

	err = c.transactionService.Execute(ctx, func(txCtx context.Context) error {
		applyFirstWriteFields(patient, raw)

		if err := c.historyRepo.Create(txCtx, record); err != nil {
			return err
		}

		now := time.Now().UTC()
		patient.RiskLevel = result.Prediction
		patient.LastAssessmentAt = &now

		return c.patientRepo.Update(txCtx, patient)
	})
	if err != nil {
		return nil, err
	}

	c.publishEvent(ctx, patient, result.Prediction)

	return &AssessmentRecord{
		RecordID:  record.ID,
		PatientID: patient.ID,
		Result:    result,
		Vitals:    vitals,
	}, nil
}

// PatientForUser resolves the patient profile owned by a user account.
func (c *AssessmentController) PatientForUser(ctx context.Context, userID string) (*Patient, error) {
	return c.patientRepo.GetByUserID(ctx, userID)
}

// HistoryEntry is one past assessment as served to dashboards.
type HistoryEntry struct {
	ID              string          `json:"id"`
	PatientID       string          `json:"patientId"`
	Timestamp       time.Time       `json:"timestamp"`
	Risk            string          `json:"risk"`
	ProbabilityHigh float64         `json:"probability_high"`
	ProbabilityLow  float64         `json:"probability_low"`
	Factors         risk.FactorList `json:"factors"`
	Vitals          risk.Vitals     `json:"vitals"`
}

func (c *AssessmentController) History(ctx context.Context, patientID string) ([]HistoryEntry, error) {
	log := c.log.Function("History")

	if _, err := c.patientRepo.GetByID(ctx, patientID); err != nil {
		return nil, err
	}

	records, err := c.historyRepo.GetByPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}

	entries := make([]HistoryEntry, 0, len(records))
	for _, r := range records {
		var factors risk.FactorList
		if err := json.Unmarshal([]byte(r.ContributingFactors), &factors); err != nil {
			log.Warn("stored factors unreadable", "recordID", r.ID, "error", err)
			factors = risk.FactorList{}
		}

		entries = append(entries, HistoryEntry{
			ID:              r.ID,
			PatientID:       r.PatientID,
			Timestamp:       r.CreatedAt,
			Risk:            r.RiskLevel,
			ProbabilityHigh: r.HighRiskProbability,
			ProbabilityLow:  r.LowRiskProbability,
			Factors:         factors,
			Vitals: risk.Vitals{
				SystolicBP:  r.SystolicBP,
				DiastolicBP: r.DiastolicBP,
				BloodSugar:  r.BloodSugar,
				BodyTemp:    r.BodyTemp,
				HeartRate:   r.HeartRate,
			},
		})
	}

	return entries, nil
}

// applyFirstWriteFields fills the four static clinical fields from the
// submission, but only those never set before. Already-populated fields keep
// their original values no matter what the new submission says.
func applyFirstWriteFields(patient *Patient, raw map[string]any) {
	if patient.Age == nil {
		if value, ok := raw["Age"]; ok && value != nil {
			if age, err := cast.ToIntE(value); err == nil {
				patient.Age = &age
			}
		}
	}

	if patient.PreExistingDiabetes == nil {
		if value, ok := raw["Pre_existing_Diabetes"]; ok && value != nil {
			s := cast.ToString(value)
			patient.PreExistingDiabetes = &s
		}
	}

	if patient.GestationalDiabetes == nil {
		if value, ok := raw["Gestational_Diabetes"]; ok && value != nil {
			s := cast.ToString(value)
			patient.GestationalDiabetes = &s
		}
	}

	if patient.PreviousComplications == nil {
		if value, ok := raw["Previous_Complications"]; ok && value != nil {
			s := cast.ToString(value)
			patient.PreviousComplications = &s
		}
	}
}

func (c *AssessmentController) publishEvent(ctx context.Context, patient *Patient, riskLevel string) {
	event := events.AssessmentEvent{
		PatientID:   patient.ID,
		PatientName: patient.FullName,
		RiskLevel:   riskLevel,
		At:          time.Now().UTC(),
	}
	if patient.ProviderID != nil {
		event.ProviderID = *patient.ProviderID
	}

	if err := c.eventBus.Publish(ctx, event); err != nil {
		c.log.Function("publishEvent").
			Warn("failed to publish assessment event", "patientID", patient.ID, "error", err)
	}
}
