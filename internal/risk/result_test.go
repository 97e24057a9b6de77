package risk

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactorList_MarshalPreservesOrder(t *testing.T) {
	factors := FactorList{
		{Name: "Systolic BP", Value: 0.31},
		{Name: "Heart Rate", Value: -0.22},
		{Name: "Age", Value: 0.05},
	}

	data, err := json.Marshal(factors)
	require.NoError(t, err)
	assert.Equal(t, `{"Systolic BP":0.31,"Heart Rate":-0.22,"Age":0.05}`, string(data))
}

func TestFactorList_EmptySerializesAsEmptyObject(t *testing.T) {
	data, err := json.Marshal(FactorList{})
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(data))
}

func TestFactorList_UnmarshalKeepsStoredOrder(t *testing.T) {
	var factors FactorList
	err := json.Unmarshal(
		[]byte(`{"Blood Sugar":0.4,"Age":-0.1,"Body Temp":0}`), &factors)
	require.NoError(t, err)

	require.Len(t, factors, 3)
	assert.Equal(t, Factor{Name: "Blood Sugar", Value: 0.4}, factors[0])
	assert.Equal(t, Factor{Name: "Age", Value: -0.1}, factors[1])
	assert.Equal(t, Factor{Name: "Body Temp", Value: 0.0}, factors[2])
}

func TestFactorList_UnmarshalRejectsNonObject(t *testing.T) {
	var factors FactorList
	assert.Error(t, json.Unmarshal([]byte(`[1,2,3]`), &factors))
	assert.Error(t, json.Unmarshal([]byte(`{"Age":"high"}`), &factors))
}

func TestResult_WireFieldNames(t *testing.T) {
	result := Result{
		Prediction:             LabelHighRisk,
		HighRiskProbability:    0.92,
		LowRiskProbability:     0.08,
		TopContributingFactors: FactorList{{Name: "Blood Sugar", Value: 0.4}},
	}

	data, err := json.Marshal(result)
	require.NoError(t, err)

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Contains(t, decoded, "Prediction")
	assert.Contains(t, decoded, "High_Risk_Probability")
	assert.Contains(t, decoded, "Low_Risk_Probability")
	assert.Contains(t, decoded, "Top_Contributing_Factors")
}
