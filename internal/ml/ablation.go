package ml

import (
	"encoding/json"
	"fmt"
	"os"
)

// BaselineExplainer attributes the classifier's high-risk probability to
// individual features by ablation: each feature is replaced with its training
// baseline value and the probability drop is recorded as that feature's
// contribution. The baseline vector is a startup artifact (training-set
// feature means) bound to the same classifier used for scoring.
type BaselineExplainer struct {
	model    Classifier
	baseline []float64
}

func NewBaselineExplainer(model Classifier, baselinePath string) (*BaselineExplainer, error) {
	raw, err := os.ReadFile(baselinePath)
	if err != nil {
		return nil, fmt.Errorf("baseline artifact not readable: %w", err)
	}

	var baseline []float64
	if err := json.Unmarshal(raw, &baseline); err != nil {
		return nil, fmt.Errorf("baseline artifact is not a float array: %w", err)
	}

	if len(baseline) == 0 {
		return nil, fmt.Errorf("baseline artifact is empty")
	}

	return &BaselineExplainer{model: model, baseline: baseline}, nil
}

func (e *BaselineExplainer) Attributions(features []float64) ([][]float64, error) {
	if len(features) != len(e.baseline) {
		return nil, fmt.Errorf("feature count mismatch: baseline has %d, got %d",
			len(e.baseline), len(features))
	}

	probs, err := e.model.PredictProba(features)
	if err != nil {
		return nil, fmt.Errorf("failed to score full vector: %w", err)
	}

	full, err := probaHigh(probs)
	if err != nil {
		return nil, err
	}

	row := make([]float64, len(features))
	ablated := make([]float64, len(features))
	for i := range features {
		copy(ablated, features)
		ablated[i] = e.baseline[i]

		probs, err := e.model.PredictProba(ablated)
		if err != nil {
			return nil, fmt.Errorf("failed to score ablated vector: %w", err)
		}

		high, err := probaHigh(probs)
		if err != nil {
			return nil, err
		}

		row[i] = full - high
	}

	return [][]float64{row}, nil
}
