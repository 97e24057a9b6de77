package assessmentController

import (
	"context"
	"testing"

	"server/config"
	"server/internal/database"
	"server/internal/events"
	. "server/internal/models"
	"server/internal/repositories"
	"server/internal/risk"
	"server/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedModel always returns the configured outcome.
type fixedModel struct {
	prediction int
	high       float64
}

func (m *fixedModel) Predict(features []float64) (int, error) {
	return m.prediction, nil
}

func (m *fixedModel) PredictProba(features []float64) ([]float64, error) {
	return []float64{m.high}, nil
}

type testEnv struct {
	db          database.DB
	controller  *AssessmentController
	patientRepo repositories.PatientRepository
	historyRepo repositories.RiskHistoryRepository
	user        *User
	patient     *Patient
}

func newTestEnv(t *testing.T, model *fixedModel) *testEnv {
	t.Helper()

	db := database.NewTest(t)

	user := &User{
		FullName:       "Mary Akinyi",
		Email:          "mary@example.com",
		HashedPassword: "x",
		HospitalName:   HospitalAgaKhan,
	}
	require.NoError(t, db.SQL.Create(user).Error)

	patient := &Patient{
		FullName:     user.FullName,
		UserID:       user.ID,
		HospitalName: user.HospitalName,
		RiskLevel:    RiskLevelUnknown,
	}
	require.NoError(t, db.SQL.Create(patient).Error)

	patientRepo := repositories.NewPatient(db)
	historyRepo := repositories.NewRiskHistory(db)
	controller := New(
		db,
		risk.NewAssessor(model, nil),
		patientRepo,
		historyRepo,
		services.NewTransactionService(db),
		events.New(nil, config.Config{}),
	)

	return &testEnv{
		db:          db,
		controller:  controller,
		patientRepo: patientRepo,
		historyRepo: historyRepo,
		user:        user,
		patient:     patient,
	}
}

func highRiskSubmission() map[string]any {
	return map[string]any{
		"Age":                    34,
		"Systolic_BP":            150,
		"Diastolic_BP":           100,
		"Blood_Sugar":            15,
		"Body_Temp":              98,
		"Heart_Rate":             86,
		"Previous_Complications": "Yes",
		"Pre_existing_Diabetes":  "No",
		"Gestational_Diabetes":   "No",
	}
}

func TestAssessAndRecord(t *testing.T) {
	env := newTestEnv(t, &fixedModel{prediction: 1, high: 0.9})
	ctx := context.Background()

	record, err := env.controller.AssessAndRecord(ctx, env.user, highRiskSubmission())
	require.NoError(t, err)
	require.NotEmpty(t, record.RecordID)
	assert.Equal(t, env.patient.ID, record.PatientID)
	assert.Equal(t, risk.LabelHighRisk, record.Result.Prediction)
	assert.Equal(t, 0.9, record.Result.HighRiskProbability)
	assert.Equal(t, 150.0, record.Vitals.SystolicBP)

	// History row persisted with the scored vitals.
	stored, err := env.historyRepo.GetLatestByPatient(ctx, env.patient.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, risk.LabelHighRisk, stored.RiskLevel)
	assert.Equal(t, 15.0, stored.BloodSugar)

	// Denormalized summary updated on the patient.
	patient, err := env.patientRepo.GetByID(ctx, env.patient.ID)
	require.NoError(t, err)
	assert.Equal(t, risk.LabelHighRisk, patient.RiskLevel)
	require.NotNil(t, patient.LastAssessmentAt)

	// Static fields filled from the first submission.
	require.NotNil(t, patient.Age)
	assert.Equal(t, 34, *patient.Age)
	require.NotNil(t, patient.PreviousComplications)
	assert.Equal(t, "Yes", *patient.PreviousComplications)
}

func TestAssessAndRecord_FirstWriteWins(t *testing.T) {
	model := &fixedModel{prediction: 1, high: 0.9}
	env := newTestEnv(t, model)
	ctx := context.Background()

	_, err := env.controller.AssessAndRecord(ctx, env.user, highRiskSubmission())
	require.NoError(t, err)

	// Second submission tries to change the static fields and comes back low
	// risk.
	model.prediction = 0
	model.high = 0.2
	second := highRiskSubmission()
	second["Age"] = 40
	second["Previous_Complications"] = "No"

	_, err = env.controller.AssessAndRecord(ctx, env.user, second)
	require.NoError(t, err)

	patient, err := env.patientRepo.GetByID(ctx, env.patient.ID)
	require.NoError(t, err)

	// Static fields keep their first values.
	require.NotNil(t, patient.Age)
	assert.Equal(t, 34, *patient.Age)
	require.NotNil(t, patient.PreviousComplications)
	assert.Equal(t, "Yes", *patient.PreviousComplications)

	// The denormalized risk level always reflects the newest assessment.
	assert.Equal(t, risk.LabelLowRisk, patient.RiskLevel)

	records, err := env.historyRepo.GetByPatient(ctx, env.patient.ID)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestAssessAndRecord_StaticFieldsAbsentStayNil(t *testing.T) {
	env := newTestEnv(t, &fixedModel{prediction: 0, high: 0.1})
	ctx := context.Background()

	_, err := env.controller.AssessAndRecord(ctx, env.user, map[string]any{
		"Systolic_BP": 118,
	})
	require.NoError(t, err)

	patient, err := env.patientRepo.GetByID(ctx, env.patient.ID)
	require.NoError(t, err)
	assert.Nil(t, patient.Age)
	assert.Nil(t, patient.PreExistingDiabetes)
	assert.Nil(t, patient.GestationalDiabetes)
	assert.Nil(t, patient.PreviousComplications)
}

func TestAssessAndRecord_NilSubmission(t *testing.T) {
	env := newTestEnv(t, &fixedModel{prediction: 0, high: 0.1})

	_, err := env.controller.AssessAndRecord(context.Background(), env.user, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, risk.ErrInvalidInput)

	// Nothing persisted.
	records, err := env.historyRepo.GetByPatient(context.Background(), env.patient.ID)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestHistory(t *testing.T) {
	env := newTestEnv(t, &fixedModel{prediction: 1, high: 0.8})
	ctx := context.Background()

	_, err := env.controller.AssessAndRecord(ctx, env.user, highRiskSubmission())
	require.NoError(t, err)

	entries, err := env.controller.History(ctx, env.patient.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	entry := entries[0]
	assert.Equal(t, env.patient.ID, entry.PatientID)
	assert.Equal(t, risk.LabelHighRisk, entry.Risk)
	assert.Equal(t, 0.8, entry.ProbabilityHigh)
	assert.Equal(t, 150.0, entry.Vitals.SystolicBP)
	// No explainer bound: factors degrade to an empty object, not null.
	assert.NotNil(t, entry.Factors)
	assert.Empty(t, entry.Factors)

	_, err = env.controller.History(ctx, "no-such-patient")
	assert.Error(t, err)
}
