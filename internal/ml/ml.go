// Package ml holds the runtime contracts for the pre-trained risk model. The
// artifacts are loaded once at startup and are read-only afterwards; both
// interfaces must be safe for concurrent use.
package ml

import (
	"fmt"

	"server/config"
	"server/internal/logger"
)

// Classifier is the externally supplied binary risk model.
type Classifier interface {
	// Predict returns the discrete class for one feature row: 1 = high risk.
	Predict(features []float64) (int, error)

	// PredictProba returns class probabilities for one feature row. Two
	// shapes are recognized: a single value (high-risk probability) or a
	// [low, high] pair. Consumers normalize; anything else is rejected.
	PredictProba(features []float64) ([]float64, error)
}

// Explainer is an additive feature-attribution function bound to the same
// classifier the scorer uses.
type Explainer interface {
	// Attributions returns per-feature contribution rows for one feature
	// row: either a single row, or one row per output class with the
	// positive class convention of row 0. Consumers normalize.
	Attributions(features []float64) ([][]float64, error)
}

// Load reads the model artifacts. A missing classifier artifact is fatal; a
// failed explainer binding degrades to nil, which downgrades explanations to
// empty but keeps scoring available.
func Load(cfg config.Config, log logger.Logger) (Classifier, Explainer, error) {
	log = log.Function("Load")

	classifier, err := LoadXGBClassifier(cfg.ModelPath)
	if err != nil {
		return nil, nil, log.Err("failed to load classifier artifact", err, "path", cfg.ModelPath)
	}
	log.Info("Classifier loaded", "path", cfg.ModelPath)

	explainer, err := NewBaselineExplainer(classifier, cfg.BaselinePath)
	if err != nil {
		log.Warn("explainer binding failed, explanations degraded to empty",
			"path", cfg.BaselinePath, "error", err)
		return classifier, nil, nil
	}
	log.Info("Explainer bound to classifier", "path", cfg.BaselinePath)

	return classifier, explainer, nil
}

// probaHigh collapses a recognized probability shape to the high-risk
// probability.
func probaHigh(probs []float64) (float64, error) {
	switch len(probs) {
	case 1:
		return probs[0], nil
	case 2:
		return probs[1], nil
	default:
		return 0, fmt.Errorf("unrecognized probability shape: %d values", len(probs))
	}
}
