package synthdata

import (
	"math"

	"github.com/hptimes-code/ai-crop-yield-prediction/internal/domain"
)

// expectedYield computes the deterministic part of the training label: the
// crop's base yield scaled by multiplicative factor effects. Each effect is
// 1.0 at the profile's optimal value and decays with deviation, with an
// individual floor so no single factor can zero out the yield. Nutrients
// follow Liebig's law of the minimum.
func expectedYield(p domain.Profile, f domain.FeatureVector) float64 {
	// 15% yield loss per pH unit of deviation, floor 30%.
	phEffect := math.Max(0.3, 1.0-math.Abs(f.PH-p.OptimalPH)*0.15)

	// Organic matter is a bonus on an 80% base, capped at 130%.
	omEffect := math.Min(1.3, 0.8+f.OrganicMatter/10.0)

	nEffect := math.Min(1.0, f.Nitrogen/p.OptimalNutrients.N)
	pEffect := math.Min(1.0, f.Phosphorus/p.OptimalNutrients.P)
	kEffect := math.Min(1.0, f.Potassium/p.OptimalNutrients.K)
	nutrientEffect := math.Max(0.2, math.Min(nEffect, math.Min(pEffect, kEffect)))

	// 3% loss per °C of deviation, floor 40%.
	tempEffect := math.Max(0.4, 1.0-math.Abs(f.Temperature-p.OptimalTemperature)*0.03)

	// Deficit scales linearly; excess rainfall costs 30% per optimal-unit.
	var rainEffect float64
	if f.Rainfall < p.OptimalRainfall {
		rainEffect = f.Rainfall / p.OptimalRainfall
	} else {
		excess := f.Rainfall - p.OptimalRainfall
		rainEffect = 1.0 - excess/p.OptimalRainfall*0.3
	}
	rainEffect = math.Max(0.3, math.Min(1.2, rainEffect))

	// 1% loss per % humidity deviation, floor 70%.
	humEffect := math.Max(0.7, 1.0-math.Abs(f.Humidity-p.OptimalHumidity)*0.01)

	y := p.BaseYield * phEffect * omEffect * nutrientEffect * tempEffect * rainEffect * humEffect

	// Heat combined with dry air stresses the crop beyond the individual effects.
	if f.Temperature > p.OptimalTemperature+5 && f.Humidity < p.OptimalHumidity-10 {
		y *= 0.85
	}
	// Near-optimal conditions across the board compound into a synergy bonus.
	if phEffect > 0.9 && nutrientEffect > 0.8 && tempEffect > 0.9 && rainEffect > 0.9 {
		y *= 1.1
	}

	return y
}
