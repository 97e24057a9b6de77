package loadTestController

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

type alwaysHighModel struct{}

func (alwaysHighModel) Predict(features []float64) (int, error) {
	return 1, nil
}

func (alwaysHighModel) PredictProba(features []float64) ([]float64, error) {
	return []float64{0.95}, nil
}

func newTestController(t *testing.T) *LoadTestController {
	t.Helper()

	db := database.NewTest(t)
	return New(
		risk.NewAssessor(alwaysHighModel{}, nil),
		repositories.NewLoadTest(db),
	)
}

func TestCreateAndRunTest(t *testing.T) {
	controller := newTestController(t)
	ctx := context.Background()

	loadTest, err := controller.CreateAndRunTest(ctx, &CreateLoadTestRequest{Iterations: 50})
	require.NoError(t, err)

	assert.Equal(t, "completed", loadTest.Status)
	require.NotNil(t, loadTest.TotalTimeMs)
	require.NotNil(t, loadTest.AvgLatencyUs)
	require.NotNil(t, loadTest.HighRiskCount)
	assert.Equal(t, 50, *loadTest.HighRiskCount)

	stored, err := controller.GetLoadTestByID(ctx, loadTest.ID)
	require.NoError(t, err)
	assert.Equal(t, "completed", stored.Status)
}

func TestCreateAndRunTest_InvalidIterations(t *testing.T) {
	controller := newTestController(t)
	ctx := context.Background()

	for _, iterations := range []int{0, -5, 200000} {
		_, err := controller.CreateAndRunTest(ctx, &CreateLoadTestRequest{Iterations: iterations})
		assert.Error(t, err, "iterations=%d", iterations)
	}
}

func TestGetAllLoadTests(t *testing.T) {
	controller := newTestController(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := controller.CreateAndRunTest(ctx, &CreateLoadTestRequest{Iterations: 5})
		require.NoError(t, err)
	}

	loadTests, err := controller.GetAllLoadTests(ctx)
	require.NoError(t, err)
	assert.Len(t, loadTests, 3)
}
