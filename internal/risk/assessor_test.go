package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssessor_AssessRisk(t *testing.T) {
	model := &stubModel{prediction: 1, probs: []float64{0.8765}}
	explainer := &stubExplainer{rows: [][]float64{
		{0.05, 0.31, 0.02, 0.11, 0.0, 0.01, 0.22, 0.0, 0.0},
	}}

	result, vector, err := NewAssessor(model, explainer).AssessRisk(map[string]any{
		"Age":                    "34",
		"Systolic_BP":            150,
		"Diastolic_BP":           100,
		"Blood_Sugar":            15,
		"Body_Temp":              98,
		"Heart_Rate":             86,
		"Previous_Complications": "Yes",
		"Pre_existing_Diabetes":  "No",
		"Gestational_Diabetes":   "nan",
	})
	require.NoError(t, err)

	assert.Equal(t, LabelHighRisk, result.Prediction)
	assert.Equal(t, 0.877, result.HighRiskProbability)
	assert.Equal(t, 0.123, result.LowRiskProbability)
	assert.InDelta(t, 1.0, result.HighRiskProbability+result.LowRiskProbability, 1e-9)

	require.Len(t, result.TopContributingFactors, FeatureCount)
	assert.Equal(t, "Systolic BP", result.TopContributingFactors[0].Name)
	assert.Equal(t, 0.31, result.TopContributingFactors[0].Value)

	assert.Equal(t, 34.0, vector.Age)
	assert.Equal(t, 1.0, vector.PreviousComplications)
	assert.Equal(t, 0.0, vector.GestationalDiabetes)
}

func TestAssessor_AssessRiskNilInput(t *testing.T) {
	assessor := NewAssessor(&stubModel{probs: []float64{0.5}}, nil)

	_, _, err := assessor.AssessRisk(nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestAssessor_ScoringFailureAborts(t *testing.T) {
	assessor := NewAssessor(&stubModel{probaErr: errStub}, nil)

	_, _, err := assessor.AssessRisk(map[string]any{})
	require.Error(t, err)

	var scoringErr *ScoringError
	assert.ErrorAs(t, err, &scoringErr)
}

func TestAssessor_ExplainerFailureDoesNotAbort(t *testing.T) {
	model := &stubModel{prediction: 0, probs: []float64{0.1}}

	result, _, err := NewAssessor(model, &stubExplainer{err: errStub}).
		AssessRisk(map[string]any{"Age": 25})
	require.NoError(t, err)

	assert.Equal(t, LabelLowRisk, result.Prediction)
	assert.Equal(t, 0.1, result.HighRiskProbability)
	assert.Empty(t, result.TopContributingFactors)
	assert.NotNil(t, result.TopContributingFactors)
}

func TestAssessor_Deterministic(t *testing.T) {
	model := &stubModel{prediction: 1, probs: []float64{0.25, 0.75}}
	explainer := &stubExplainer{rows: [][]float64{
		{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9},
	}}
	assessor := NewAssessor(model, explainer)

	raw := map[string]any{"Age": 30, "Systolic_BP": 120}
	first, firstVector, err := assessor.AssessRisk(raw)
	require.NoError(t, err)
	second, secondVector, err := assessor.AssessRisk(raw)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, firstVector, secondVector)
}
