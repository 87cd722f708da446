package synthdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hptimes-code/ai-crop-yield-prediction/internal/domain"
)

func TestGenerateDeterminism(t *testing.T) {
	a, err := NewGenerator(DefaultSeed).Generate(domain.CropWheat, 50)
	require.NoError(t, err)
	b, err := NewGenerator(DefaultSeed).Generate(domain.CropWheat, 50)
	require.NoError(t, err)

	assert.Equal(t, a, b, "same seed must reproduce the same table")

	c, err := NewGenerator(7).Generate(domain.CropWheat, 50)
	require.NoError(t, err)
	assert.NotEqual(t, a, c, "different seeds should diverge")
}

func TestGenerateBounds(t *testing.T) {
	for _, crop := range domain.CropTypes() {
		crop := crop
		t.Run(string(crop), func(t *testing.T) {
			p, err := domain.ProfileFor(crop)
			require.NoError(t, err)

			samples, err := NewGenerator(DefaultSeed).Generate(crop, 200)
			require.NoError(t, err)
			require.Len(t, samples, 200)

			for _, s := range samples {
				f := s.Features
				assert.GreaterOrEqual(t, f.PH, p.PH.Min)
				assert.LessOrEqual(t, f.PH, p.PH.Max)
				assert.LessOrEqual(t, f.OrganicMatter, p.OrganicMatter.Max)
				assert.GreaterOrEqual(t, f.Nitrogen, p.Nitrogen.Min)
				assert.LessOrEqual(t, f.Nitrogen, p.Nitrogen.Max)
				assert.GreaterOrEqual(t, f.Temperature, p.Temperature.Min)
				assert.LessOrEqual(t, f.Temperature, p.Temperature.Max)
				assert.GreaterOrEqual(t, f.Rainfall, p.Rainfall.Min)
				assert.LessOrEqual(t, f.Rainfall, p.Rainfall.Max)
				assert.GreaterOrEqual(t, f.Humidity, p.Humidity.Min)
				assert.LessOrEqual(t, f.Humidity, p.Humidity.Max)
				assert.GreaterOrEqual(t, s.YieldTonsPerHa, 0.5)
			}
		})
	}
}

func TestGenerateRejectsBadInput(t *testing.T) {
	gen := NewGenerator(DefaultSeed)

	_, err := gen.Generate(domain.CropType("Barley"), 10)
	assert.ErrorIs(t, err, domain.ErrUnsupportedCrop)

	_, err = gen.Generate(domain.CropWheat, 0)
	assert.Error(t, err)
}

func TestGenerateAll(t *testing.T) {
	table, err := NewGenerator(DefaultSeed).GenerateAll(100)
	require.NoError(t, err)
	require.Len(t, table, 100*len(domain.CropTypes()))

	counts := map[domain.CropType]int{}
	for _, s := range table {
		counts[s.Crop]++

		// Correlations may push values outside the per-crop ranges, but
		// never outside the global physical bounds.
		f := s.Features
		assert.True(t, domain.GlobalBounds.PH.Contains(f.PH))
		assert.True(t, domain.GlobalBounds.OrganicMatter.Contains(f.OrganicMatter))
		assert.True(t, domain.GlobalBounds.Nitrogen.Contains(f.Nitrogen))
		assert.True(t, domain.GlobalBounds.Phosphorus.Contains(f.Phosphorus))
		assert.True(t, domain.GlobalBounds.Potassium.Contains(f.Potassium))
		assert.True(t, domain.GlobalBounds.Temperature.Contains(f.Temperature))
		assert.True(t, domain.GlobalBounds.Rainfall.Contains(f.Rainfall))
		assert.True(t, domain.GlobalBounds.Humidity.Contains(f.Humidity))
		assert.True(t, domain.GlobalBounds.Yield.Contains(s.YieldTonsPerHa))
	}
	for _, crop := range domain.CropTypes() {
		assert.Equal(t, 100, counts[crop], "crop %s row count", crop)
	}
}

func TestExpectedYield(t *testing.T) {
	p, err := domain.ProfileFor(domain.CropWheat)
	require.NoError(t, err)

	optimal := domain.FeatureVector{
		PH:            p.OptimalPH,
		OrganicMatter: 4.0,
		Nitrogen:      p.OptimalNutrients.N,
		Phosphorus:    p.OptimalNutrients.P,
		Potassium:     p.OptimalNutrients.K,
		Temperature:   p.OptimalTemperature,
		Rainfall:      p.OptimalRainfall,
		Humidity:      p.OptimalHumidity,
	}

	t.Run("optimal inputs exceed base yield", func(t *testing.T) {
		// All effects are ~1 at the optimum and organic matter plus the
		// synergy bonus push the result above the base.
		y := expectedYield(p, optimal)
		assert.Greater(t, y, p.BaseYield)
	})

	t.Run("acid soil cuts yield", func(t *testing.T) {
		acid := optimal
		acid.PH = 4.5
		assert.Less(t, expectedYield(p, acid), expectedYield(p, optimal))
	})

	t.Run("nutrient effect follows the scarcest nutrient", func(t *testing.T) {
		lowN := optimal
		lowN.Nitrogen = 5
		lowAll := lowN
		lowAll.Phosphorus = 5
		lowAll.Potassium = 30
		// Dropping the other nutrients too should not reduce yield further
		// than the worst single deficiency already did, beyond its own floor.
		assert.InDelta(t, expectedYield(p, lowN), expectedYield(p, lowAll), expectedYield(p, lowN)*0.5)
		assert.Less(t, expectedYield(p, lowN), expectedYield(p, optimal))
	})

	t.Run("heat and dryness stress penalty", func(t *testing.T) {
		stressed := optimal
		stressed.Temperature = p.OptimalTemperature + 6
		stressed.Humidity = p.OptimalHumidity - 11

		hotOnly := optimal
		hotOnly.Temperature = p.OptimalTemperature + 6

		assert.Less(t, expectedYield(p, stressed), expectedYield(p, hotOnly))
	})
}

func TestHistoricalYields(t *testing.T) {
	series := NewGenerator(DefaultSeed).HistoricalYields(2015, 2024)
	require.Len(t, series, 10*len(domain.CropTypes()))

	perCrop := map[domain.CropType][]YearlyYield{}
	for _, y := range series {
		assert.GreaterOrEqual(t, y.YieldTonsPerHa, 0.5)
		assert.GreaterOrEqual(t, y.Year, 2015)
		assert.LessOrEqual(t, y.Year, 2024)
		perCrop[y.Crop] = append(perCrop[y.Crop], y)
	}

	// The compounding trend should make the decade mean of the late years
	// exceed the early years for the strongest-trend crop.
	soy := perCrop[domain.CropSoybeans]
	require.Len(t, soy, 10)
	var early, late float64
	for i := 0; i < 5; i++ {
		early += soy[i].YieldTonsPerHa
		late += soy[i+5].YieldTonsPerHa
	}
	assert.Greater(t, late, early*0.9, "trend should not collapse under noise")
}
