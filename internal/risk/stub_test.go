package risk

import "errors"

// stubModel returns canned outputs so scoring behavior can be pinned down
// without a real model artifact.
type stubModel struct {
	prediction int
	probs      []float64
	predictErr error
	probaErr   error
}

func (m *stubModel) Predict(features []float64) (int, error) {
	if m.predictErr != nil {
		return 0, m.predictErr
	}
	return m.prediction, nil
}

func (m *stubModel) PredictProba(features []float64) ([]float64, error) {
	if m.probaErr != nil {
		return nil, m.probaErr
	}
	return m.probs, nil
}

type stubExplainer struct {
	rows [][]float64
	err  error
}

func (e *stubExplainer) Attributions(features []float64) ([][]float64, error) {
	if e.err != nil {
		return nil, e.err
	}
	return e.rows, nil
}

var errStub = errors.New("stub failure")
