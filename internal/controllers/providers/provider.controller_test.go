package providerController

import (
	"context"
	"testing"

	"server/internal/database"
	. "server/internal/models"
	"server/internal/repositories"
	"server/internal/risk"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	db         database.DB
	controller *ProviderController
	provider   *User
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := database.NewTest(t)

	role := RoleDoctor
	provider := &User{
		FullName:       "Dr. Amina Otieno",
		Email:          "amina@example.com",
		HashedPassword: "x",
		IsProvider:     true,
		Role:           &role,
		HospitalName:   HospitalAgaKhan,
	}
	require.NoError(t, db.SQL.Create(provider).Error)

	controller := New(
		repositories.NewUser(db),
		repositories.NewPatient(db),
		repositories.NewAppointment(db),
		repositories.NewRiskHistory(db),
	)

	return &testEnv{db: db, controller: controller, provider: provider}
}

func (env *testEnv) seedPatient(t *testing.T, name, riskLevel string, assigned bool) *Patient {
	t.Helper()

	user := &User{
		FullName:       name,
		Email:          name + "@example.com",
		HashedPassword: "x",
		HospitalName:   HospitalAgaKhan,
	}
	require.NoError(t, env.db.SQL.Create(user).Error)

	patient := &Patient{
		FullName:     name,
		UserID:       user.ID,
		HospitalName: HospitalAgaKhan,
		RiskLevel:    riskLevel,
	}
	if assigned {
		patient.ProviderID = &env.provider.ID
	}
	require.NoError(t, env.db.SQL.Create(patient).Error)
	return patient
}

func TestOverview(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.seedPatient(t, "Mary Akinyi", risk.LabelHighRisk, true)
	env.seedPatient(t, "Jane Wambui", risk.LabelLowRisk, true)
	env.seedPatient(t, "Alice Nyambura", risk.LabelHighRisk, false)

	overview, err := env.controller.Overview(ctx, env.provider)
	require.NoError(t, err)

	assert.Equal(t, env.provider.ID, overview.ProviderID)
	assert.Equal(t, RoleDoctor, overview.Role)
	assert.Equal(t, int64(2), overview.TotalPatients)
	assert.Equal(t, int64(1), overview.HighRiskPatients)
	assert.Equal(t, int64(0), overview.ScheduledAppointments)
}

func TestRiskSummary(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	patient := env.seedPatient(t, "Mary Akinyi", risk.LabelHighRisk, true)

	historyRepo := repositories.NewRiskHistory(env.db)
	for _, entry := range []struct {
		level string
		high  float64
	}{
		{risk.LabelHighRisk, 0.9},
		{risk.LabelHighRisk, 0.7},
		{risk.LabelLowRisk, 0.2},
	} {
		require.NoError(t, historyRepo.Create(ctx, &RiskHistory{
			PatientID:           patient.ID,
			RiskLevel:           entry.level,
			HighRiskProbability: entry.high,
			LowRiskProbability:  1 - entry.high,
			ContributingFactors: "{}",
		}))
	}

	summary, err := env.controller.RiskSummary(ctx, env.provider.ID)
	require.NoError(t, err)

	assert.Equal(t, 3, summary.TotalAssessments)
	assert.Equal(t, 2, summary.HighRiskCount)
	assert.Equal(t, 1, summary.LowRiskCount)
	assert.InDelta(t, 0.6, summary.AvgRisk, 1e-9)
	require.Len(t, summary.Weekly, 1)
	assert.Equal(t, 3, summary.Weekly[0].AssessmentCount)
}

func TestRiskSummary_EmptyWindow(t *testing.T) {
	env := newTestEnv(t)

	summary, err := env.controller.RiskSummary(context.Background(), env.provider.ID)
	require.NoError(t, err)
	assert.Zero(t, summary.TotalAssessments)
	assert.NotNil(t, summary.Weekly)
	assert.Empty(t, summary.Weekly)
}

func TestDischarge(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	patient := env.seedPatient(t, "Mary Akinyi", risk.LabelHighRisk, true)

	historyRepo := repositories.NewRiskHistory(env.db)
	require.NoError(t, historyRepo.Create(ctx, &RiskHistory{
		PatientID:           patient.ID,
		RiskLevel:           risk.LabelHighRisk,
		HighRiskProbability: 0.9,
		LowRiskProbability:  0.1,
		ContributingFactors: "{}",
	}))

	err := env.controller.Discharge(ctx, env.provider, env.provider.ID, patient.ID)
	require.NoError(t, err)

	patientRepo := repositories.NewPatient(env.db)
	_, err = patientRepo.GetByID(ctx, patient.ID)
	assert.Error(t, err)

	// History rows went with the patient.
	records, err := historyRepo.GetByPatient(ctx, patient.ID)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestDischarge_Unauthorized(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	unassigned := env.seedPatient(t, "Alice Nyambura", risk.LabelLowRisk, false)
	err := env.controller.Discharge(ctx, env.provider, env.provider.ID, unassigned.ID)
	assert.Error(t, err)

	role := RoleNurse
	other := &User{
		FullName:       "Nurse Grace Wanjiru",
		Email:          "grace@example.com",
		HashedPassword: "x",
		IsProvider:     true,
		Role:           &role,
		HospitalName:   HospitalAgaKhan,
	}
	require.NoError(t, env.db.SQL.Create(other).Error)

	assigned := env.seedPatient(t, "Mary Akinyi", risk.LabelLowRisk, true)
	err = env.controller.Discharge(ctx, other, env.provider.ID, assigned.ID)
	assert.Error(t, err)
}
