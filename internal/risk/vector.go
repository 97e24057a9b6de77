package risk

import (
	"strings"

	"github.com/spf13/cast"
)

const FeatureCount = 9

// Display names in training order. The classifier was fitted against columns
// in exactly this order; Values() must never be reordered.
var featureNames = [FeatureCount]string{
	"Age",
	"Systolic BP",
	"Diastolic BP",
	"Blood Sugar",
	"Body Temp",
	"Heart Rate",
	"Previous Complications",
	"Pre-existing Diabetes",
	"Gestational Diabetes",
}

// FeatureVector is the fixed-order numeric encoding of one assessment
// submission. Built fresh per request and never persisted directly.
type FeatureVector struct {
	Age         float64
	SystolicBP  float64
	DiastolicBP float64
	BloodSugar  float64
	BodyTemp    float64
	HeartRate   float64

	// Binary-encoded flags: yes=1, anything else 0.
	PreviousComplications float64
	PreExistingDiabetes   float64
	GestationalDiabetes   float64
}

// Vitals are the five continuous measurements as persisted on history rows.
type Vitals struct {
	SystolicBP  float64
	DiastolicBP float64
	BloodSugar  float64
	BodyTemp    float64
	HeartRate   float64
}

// Sanitize coerces arbitrary submitted health data into a FeatureVector. It
// is total: missing keys, non-numeric values and null-like sentinels all
// default rather than fail.
func Sanitize(raw map[string]any) FeatureVector {
	return FeatureVector{
		Age:                   safeFloat(raw["Age"]),
		SystolicBP:            safeFloat(raw["Systolic_BP"]),
		DiastolicBP:           safeFloat(raw["Diastolic_BP"]),
		BloodSugar:            safeFloat(raw["Blood_Sugar"]),
		BodyTemp:              safeFloat(raw["Body_Temp"]),
		HeartRate:             safeFloat(raw["Heart_Rate"]),
		PreviousComplications: yesNo(raw["Previous_Complications"]),
		PreExistingDiabetes:   yesNo(raw["Pre_existing_Diabetes"]),
		GestationalDiabetes:   yesNo(raw["Gestational_Diabetes"]),
	}
}

// Values returns the vector in training order.
func (v FeatureVector) Values() []float64 {
	return []float64{
		v.Age,
		v.SystolicBP,
		v.DiastolicBP,
		v.BloodSugar,
		v.BodyTemp,
		v.HeartRate,
		v.PreviousComplications,
		v.PreExistingDiabetes,
		v.GestationalDiabetes,
	}
}

func (v FeatureVector) Vitals() Vitals {
	return Vitals{
		SystolicBP:  v.SystolicBP,
		DiastolicBP: v.DiastolicBP,
		BloodSugar:  v.BloodSugar,
		BodyTemp:    v.BodyTemp,
		HeartRate:   v.HeartRate,
	}
}

// FeatureNames returns the display names in training order.
func FeatureNames() []string {
	return featureNames[:]
}

func safeFloat(value any) float64 {
	if value == nil {
		return 0
	}

	if s, ok := value.(string); ok {
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "", "nan", "none", "null":
			return 0
		}
	}

	f, err := cast.ToFloat64E(value)
	if err != nil {
		return 0
	}
	return f
}

func yesNo(value any) float64 {
	if value == nil {
		return 0
	}

	if cast.ToString(value) == "Yes" {
		return 1
	}
	return 0
}
