// Package risk implements the assessment core: sanitizing submitted health
// data into a fixed feature vector, scoring it against the loaded classifier
// and attaching best-effort feature attributions.
package risk

import (
	"errors"

	"server/internal/logger"
	"server/internal/ml"
)

// ErrInvalidInput marks a submission that cannot be shaped into a feature
// vector at all. Sanitization is total, so in practice this only fires on a
// nil payload.
var ErrInvalidInput = errors.New("invalid assessment input")

// Assessor composes sanitizer, scorer and explainability engine behind the
// single entry point the rest of the server calls. It is stateless apart
// from the injected read-only model artifacts and safe for concurrent use.
type Assessor struct {
	scorer *Scorer
	engine *Engine
	log    logger.Logger
}

func NewAssessor(model ml.Classifier, explainer ml.Explainer) *Assessor {
	return &Assessor{
		scorer: NewScorer(model),
		engine: NewEngine(explainer),
		log:    logger.New("risk").File("assessor"),
	}
}

// AssessRisk runs sanitize -> score -> explain. It also returns the sanitized
// vector so callers persist exactly the vitals that were scored. Scoring
// failures abort the assessment; explanation failures never do.
func (a *Assessor) AssessRisk(raw map[string]any) (Result, FeatureVector, error) {
	log := a.log.Function("AssessRisk")

	if raw == nil {
		return Result{}, FeatureVector{}, ErrInvalidInput
	}

	vector := Sanitize(raw)

	label, high, low, err := a.scorer.Score(vector)
	if err != nil {
		return Result{}, FeatureVector{}, log.Err("classifier invocation failed", err)
	}

	explanation := a.engine.Explain(vector)
	if explanation.Degraded {
		log.Warn("assessment completed without explanation", "label", label)
	}

	result := Result{
		Prediction:             label,
		HighRiskProbability:    round3(high),
		LowRiskProbability:     round3(low),
		TopContributingFactors: explanation.Factors,
	}

	return result, vector, nil
}
