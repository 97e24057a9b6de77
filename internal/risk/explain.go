package risk

import (
	"math"
	"sort"

	"server/internal/logger"
	"server/internal/ml"
)

// Explanation is the outcome of one attribution pass. Degraded distinguishes
// "explainability failed" from "no notable factors": both serialize as an
// empty mapping but only the former is an observability signal.
type Explanation struct {
	Factors  FactorList
	Degraded bool
}

// Engine computes per-feature contributions. Explanations are best-effort:
// every failure path degrades to an empty, tagged result and the assessment
// carries on.
type Engine struct {
	explainer ml.Explainer
	log       logger.Logger
}

func NewEngine(explainer ml.Explainer) *Engine {
	return &Engine{
		explainer: explainer,
		log:       logger.New("risk").File("explain"),
	}
}

func (e *Engine) Explain(vector FeatureVector) Explanation {
	log := e.log.Function("Explain")

	if e.explainer == nil {
		return Explanation{Factors: FactorList{}, Degraded: true}
	}

	rows, err := e.explainer.Attributions(vector.Values())
	if err != nil {
		log.Warn("attribution computation failed, returning empty factors", "error", err)
		return Explanation{Factors: FactorList{}, Degraded: true}
	}

	row, ok := flattenAttributions(rows)
	if !ok {
		log.Warn("unrecognized attribution shape, returning empty factors",
			"rows", len(rows))
		return Explanation{Factors: FactorList{}, Degraded: true}
	}

	factors := make(FactorList, FeatureCount)
	for i, name := range FeatureNames() {
		factors[i] = Factor{Name: name, Value: round4(row[i])}
	}

	// Descending |contribution|; the stable sort keeps training order for ties.
	sort.SliceStable(factors, func(i, j int) bool {
		return math.Abs(factors[i].Value) > math.Abs(factors[j].Value)
	})

	return Explanation{Factors: factors}
}

// flattenAttributions reduces the recognized attribution shapes to the single
// flat row for the input being explained: a lone row is taken as-is, and a
// multi-row result is read as per-class output with row 0 selected.
func flattenAttributions(rows [][]float64) ([]float64, bool) {
	if len(rows) == 0 {
		return nil, false
	}

	row := rows[0]
	if len(row) != FeatureCount {
		return nil, false
	}

	return row, true
}
