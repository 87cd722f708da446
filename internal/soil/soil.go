// Package soil scores raw soil-test values against optimal ranges: a
// crop-independent health analysis, a crop-specific suitability analysis,
// and a stage-weighted fertilizer application plan.
package soil

import "github.com/hptimes-code/ai-crop-yield-prediction/internal/domain"

// Parameter names a recognized soil-test parameter.
type Parameter string

const (
	ParamPH            Parameter = "ph"
	ParamOrganicMatter Parameter = "organic_matter"
	ParamNitrogen      Parameter = "nitrogen"
	ParamPhosphorus    Parameter = "phosphorus"
	ParamPotassium     Parameter = "potassium"
	ParamCalcium       Parameter = "calcium"
	ParamMagnesium     Parameter = "magnesium"
)

// Test holds soil lab results. Nil fields were not measured and are
// excluded from scoring (not penalized).
type Test struct {
	PH            *float64 `json:"ph,omitempty"`
	OrganicMatter *float64 `json:"organic_matter,omitempty"`
	Nitrogen      *float64 `json:"nitrogen,omitempty"`
	Phosphorus    *float64 `json:"phosphorus,omitempty"`
	Potassium     *float64 `json:"potassium,omitempty"`
	Calcium       *float64 `json:"calcium,omitempty"`
	Magnesium     *float64 `json:"magnesium,omitempty"`
}

// parameters lists the recognized parameters in scoring order.
var parameters = []Parameter{
	ParamPH, ParamOrganicMatter, ParamNitrogen, ParamPhosphorus,
	ParamPotassium, ParamCalcium, ParamMagnesium,
}

// optimalRanges are the crop-independent optimal bands for each parameter.
var optimalRanges = map[Parameter]domain.Range{
	ParamPH:            {Min: 6.0, Max: 7.0},
	ParamOrganicMatter: {Min: 2.5, Max: 5.0},
	ParamNitrogen:      {Min: 20, Max: 50},
	ParamPhosphorus:    {Min: 15, Max: 40},
	ParamPotassium:     {Min: 100, Max: 250},
	ParamCalcium:       {Min: 1000, Max: 2500},
	ParamMagnesium:     {Min: 75, Max: 200},
}

// value returns the measured value for a parameter, if present.
func (t Test) value(p Parameter) (float64, bool) {
	var ptr *float64
	switch p {
	case ParamPH:
		ptr = t.PH
	case ParamOrganicMatter:
		ptr = t.OrganicMatter
	case ParamNitrogen:
		ptr = t.Nitrogen
	case ParamPhosphorus:
		ptr = t.Phosphorus
	case ParamPotassium:
		ptr = t.Potassium
	case ParamCalcium:
		ptr = t.Calcium
	case ParamMagnesium:
		ptr = t.Magnesium
	}
	if ptr == nil {
		return 0, false
	}
	return *ptr, true
}

// valueOr returns the measured value or a fallback for unmeasured fields.
// The recommendation cascade assumes mid-range values for missing data
// rather than skipping its rules entirely.
func (t Test) valueOr(p Parameter, fallback float64) float64 {
	if v, ok := t.value(p); ok {
		return v
	}
	return fallback
}

// Ptr is a convenience for building Test literals.
func Ptr(v float64) *float64 { return &v }
