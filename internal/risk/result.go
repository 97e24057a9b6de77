package risk

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
)

const (
	LabelHighRisk = "High Risk"
	LabelLowRisk  = "Low Risk"
)

// Factor is one feature's signed contribution to the high-risk probability.
type Factor struct {
	Name  string
	Value float64
}

// FactorList keeps factors ordered by descending |contribution|. It
// serializes to a JSON object whose key order matches the slice order.
type FactorList []Factor

func (fl FactorList) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range fl {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(f.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		value, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (fl *FactorList) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("factor list must be a JSON object")
	}

	out := FactorList{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("factor list key must be a string")
		}

		var value float64
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("factor %q has a non-numeric value: %w", key, err)
		}

		out = append(out, Factor{Name: key, Value: value})
	}

	*fl = out
	return nil
}

// Result is the transient output of one assessment. Field names follow the
// wire contract consumed by the frontend.
type Result struct {
	Prediction             string     `json:"Prediction"`
	HighRiskProbability    float64    `json:"High_Risk_Probability"`
	LowRiskProbability     float64    `json:"Low_Risk_Probability"`
	TopContributingFactors FactorList `json:"Top_Contributing_Factors"`
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
