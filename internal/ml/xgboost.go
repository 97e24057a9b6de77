package ml

import (
	"fmt"
	"os"

	"github.com/dmitryikh/leaves"
)

// XGBClassifier runs a serialized XGBoost binary:logistic ensemble in-process.
type XGBClassifier struct {
	ensemble *leaves.Ensemble
}

func LoadXGBClassifier(path string) (*XGBClassifier, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("model artifact not found at %s: %w", path, err)
	}

	// true applies the trained sigmoid transformation so predictions come
	// out as probabilities rather than raw margins.
	ensemble, err := leaves.XGEnsembleFromFile(path, true)
	if err != nil {
		return nil, fmt.Errorf("failed to load xgboost ensemble: %w", err)
	}

	return &XGBClassifier{ensemble: ensemble}, nil
}

func (c *XGBClassifier) Predict(features []float64) (int, error) {
	high, err := c.score(features)
	if err != nil {
		return 0, err
	}

	if high >= 0.5 {
		return 1, nil
	}
	return 0, nil
}

// PredictProba returns the scalar shape: a single high-risk probability.
func (c *XGBClassifier) PredictProba(features []float64) ([]float64, error) {
	high, err := c.score(features)
	if err != nil {
		return nil, err
	}

	return []float64{high}, nil
}

func (c *XGBClassifier) score(features []float64) (float64, error) {
	if len(features) != c.ensemble.NFeatures() {
		return 0, fmt.Errorf("feature count mismatch: model expects %d, got %d",
			c.ensemble.NFeatures(), len(features))
	}

	return c.ensemble.PredictSingle(features, 0), nil
}
