package risk

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScorer_Score(t *testing.T) {
	tests := []struct {
		name         string
		model        *stubModel
		expectedHigh float64
		expectedLow  float64
		expected     string
	}{
		{
			name:         "scalar high probability",
			model:        &stubModel{prediction: 1, probs: []float64{0.82}},
			expected:     LabelHighRisk,
			expectedHigh: 0.82,
			expectedLow:  0.18,
		},
		{
			name:         "low high pair",
			model:        &stubModel{prediction: 0, probs: []float64{0.7, 0.3}},
			expected:     LabelLowRisk,
			expectedHigh: 0.3,
			expectedLow:  0.7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			label, high, low, err := NewScorer(tt.model).Score(FeatureVector{})
			require.NoError(t, err)
			assert.Equal(t, tt.expected, label)
			assert.InDelta(t, tt.expectedHigh, high, 1e-9)
			assert.InDelta(t, tt.expectedLow, low, 1e-9)
			assert.InDelta(t, 1.0, high+low, 1e-9)
		})
	}
}

func TestScorer_ScoreErrors(t *testing.T) {
	tests := []struct {
		name  string
		model *stubModel
		op    string
	}{
		{
			name:  "predict fails",
			model: &stubModel{predictErr: errStub},
			op:    "predict",
		},
		{
			name:  "predict_proba fails",
			model: &stubModel{probaErr: errStub},
			op:    "predict_proba",
		},
		{
			name:  "empty probability shape",
			model: &stubModel{probs: []float64{}},
			op:    "normalize_proba",
		},
		{
			name:  "three class probabilities",
			model: &stubModel{probs: []float64{0.1, 0.2, 0.7}},
			op:    "normalize_proba",
		},
		{
			name:  "probability above one",
			model: &stubModel{probs: []float64{1.4}},
			op:    "normalize_proba",
		},
		{
			name:  "NaN probability",
			model: &stubModel{probs: []float64{math.NaN()}},
			op:    "normalize_proba",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, _, err := NewScorer(tt.model).Score(FeatureVector{})
			require.Error(t, err)

			var scoringErr *ScoringError
			require.ErrorAs(t, err, &scoringErr)
			assert.Equal(t, tt.op, scoringErr.Op)
		})
	}
}
