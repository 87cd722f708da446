package synthdata

import (
	"math"

	"github.com/hptimes-code/ai-crop-yield-prediction/internal/domain"
)

// YearlyYield is one point of a historical yield trend series.
type YearlyYield struct {
	Year           int             `json:"year"`
	Crop           domain.CropType `json:"crop"`
	YieldTonsPerHa float64         `json:"yield_tons_per_ha"`
}

// Global-average base yields (t/ha) and annual improvement rates backing the
// historical trend series used by dashboards and fixtures.
var historicalBaselines = map[domain.CropType]struct {
	base  float64
	trend float64
}{
	domain.CropWheat:    {base: 3.4, trend: 0.02},
	domain.CropCorn:     {base: 5.9, trend: 0.015},
	domain.CropRice:     {base: 4.6, trend: 0.01},
	domain.CropSoybeans: {base: 2.8, trend: 0.025},
}

// HistoricalYields generates a per-crop yearly yield series from startYear
// through endYear inclusive: compounding trend plus 10% Gaussian variation.
func (g *Generator) HistoricalYields(startYear, endYear int) []YearlyYield {
	var series []YearlyYield
	for _, crop := range domain.CropTypes() {
		b := historicalBaselines[crop]
		for i := 0; i <= endYear-startYear; i++ {
			y := b.base * math.Pow(1+b.trend, float64(i))
			y += g.normal(0, b.base*0.1)
			y = math.Max(0.5, y)
			series = append(series, YearlyYield{
				Year:           startYear + i,
				Crop:           crop,
				YieldTonsPerHa: round(y, 2),
			})
		}
	}
	return series
}
