package risk

import (
	"fmt"
	"math"

	"server/internal/logger"
	"server/internal/ml"
)

// ScoringError marks a failed classifier invocation. Unlike explanation
// failures it is fatal for the assessment: there is no fallback label.
type ScoringError struct {
	Op  string
	Err error
}

func (e *ScoringError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("scoring failed during %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("scoring failed during %s", e.Op)
}

func (e *ScoringError) Unwrap() error {
	return e.Err
}

// Scorer invokes the classifier and normalizes its probability output.
type Scorer struct {
	model ml.Classifier
	log   logger.Logger
}

func NewScorer(model ml.Classifier) *Scorer {
	return &Scorer{
		model: model,
		log:   logger.New("risk").File("scorer"),
	}
}

// Score returns the discrete label plus unrounded (high, low) probabilities.
func (s *Scorer) Score(vector FeatureVector) (string, float64, float64, error) {
	features := vector.Values()

	prediction, err := s.model.Predict(features)
	if err != nil {
		return "", 0, 0, &ScoringError{Op: "predict", Err: err}
	}

	probs, err := s.model.PredictProba(features)
	if err != nil {
		return "", 0, 0, &ScoringError{Op: "predict_proba", Err: err}
	}

	high, low, err := normalizeProba(probs)
	if err != nil {
		return "", 0, 0, &ScoringError{Op: "normalize_proba", Err: err}
	}

	label := LabelLowRisk
	if prediction == 1 {
		label = LabelHighRisk
	}

	return label, high, low, nil
}

// normalizeProba maps the recognized probability shapes onto an explicit
// (high, low) pair. Unrecognized shapes and out-of-range values fail loudly
// instead of defaulting.
func normalizeProba(probs []float64) (high, low float64, err error) {
	switch len(probs) {
	case 1:
		high = probs[0]
		low = 1 - high
	case 2:
		low = probs[0]
		high = probs[1]
	default:
		return 0, 0, fmt.Errorf("unrecognized probability shape: %d values", len(probs))
	}

	for _, p := range []float64{high, low} {
		if math.IsNaN(p) || p < 0 || p > 1 {
			return 0, 0, fmt.Errorf("probability %v outside [0,1]", p)
		}
	}

	return high, low, nil
}
