package soil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hptimes-code/ai-crop-yield-prediction/internal/domain"
)

func TestFertilizerPlan(t *testing.T) {
	t.Run("wheat at five tons per hectare", func(t *testing.T) {
		plan, err := FertilizerPlan(healthyTest(), domain.CropWheat, 5)
		require.NoError(t, err)

		assert.Equal(t, domain.CropWheat, plan.Crop)
		assert.Equal(t, 5.0, plan.TargetYield)

		// Removal at 25/12/20 kg per ton.
		assert.InDelta(t, 125, plan.TotalNeeded.N, 1e-9)
		assert.InDelta(t, 60, plan.TotalNeeded.P, 1e-9)
		assert.InDelta(t, 100, plan.TotalNeeded.K, 1e-9)

		// Soil P and K convert to oxide equivalents.
		assert.InDelta(t, 35, plan.SoilAvailable.N, 1e-9)
		assert.InDelta(t, 25*2.29, plan.SoilAvailable.P, 1e-9)
		assert.InDelta(t, 180*1.20, plan.SoilAvailable.K, 1e-9)

		// Needs minus the plant-available fraction.
		assert.InDelta(t, 107.5, plan.Fertilizer.N, 1e-9)
		assert.InDelta(t, 42.8, plan.Fertilizer.P, 0.05)
		assert.Equal(t, 0.0, plan.Fertilizer.K, "soil potassium covers the crop")
	})

	t.Run("fertilizer amounts are never negative", func(t *testing.T) {
		rich := Test{
			Nitrogen:   Ptr(500),
			Phosphorus: Ptr(500),
			Potassium:  Ptr(2000),
		}
		for _, crop := range domain.CropTypes() {
			plan, err := FertilizerPlan(rich, crop, 1)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, plan.Fertilizer.N, 0.0, "crop %s", crop)
			assert.GreaterOrEqual(t, plan.Fertilizer.P, 0.0, "crop %s", crop)
			assert.GreaterOrEqual(t, plan.Fertilizer.K, 0.0, "crop %s", crop)
		}
	})

	t.Run("missing soil values fall back to defaults", func(t *testing.T) {
		plan, err := FertilizerPlan(Test{}, domain.CropCorn, 8)
		require.NoError(t, err)
		assert.InDelta(t, 25, plan.SoilAvailable.N, 1e-9)
		assert.InDelta(t, 20*2.29, plan.SoilAvailable.P, 1e-9)
		assert.InDelta(t, 150*1.20, plan.SoilAvailable.K, 1e-9)
	})

	t.Run("schedule splits sum to the totals", func(t *testing.T) {
		poor := Test{Nitrogen: Ptr(2), Phosphorus: Ptr(2), Potassium: Ptr(10)}
		for _, crop := range domain.CropTypes() {
			plan, err := FertilizerPlan(poor, crop, 6)
			require.NoError(t, err)

			var n, p, k float64
			for _, app := range plan.Schedule {
				n += app.Nutrients.N
				p += app.Nutrients.P
				k += app.Nutrients.K
			}
			assert.InDelta(t, plan.Fertilizer.N, n, 0.2, "crop %s nitrogen", crop)
			assert.InDelta(t, plan.Fertilizer.P, p, 0.2, "crop %s phosphorus", crop)
			assert.InDelta(t, plan.Fertilizer.K, k, 0.2, "crop %s potassium", crop)
		}
	})

	t.Run("phosphorus goes down in full at planting", func(t *testing.T) {
		poor := Test{Nitrogen: Ptr(2), Phosphorus: Ptr(2), Potassium: Ptr(10)}
		for _, crop := range domain.CropTypes() {
			plan, err := FertilizerPlan(poor, crop, 6)
			require.NoError(t, err)
			assert.Equal(t, plan.Fertilizer.P, plan.Schedule[StagePrePlant].Nutrients.P, "crop %s", crop)
			assert.Zero(t, plan.Schedule[StageEarlyGrowth].Nutrients.P, "crop %s", crop)
			assert.Zero(t, plan.Schedule[StageMidGrowth].Nutrients.P, "crop %s", crop)
		}
	})

	t.Run("late growth bucket stays empty", func(t *testing.T) {
		poor := Test{Nitrogen: Ptr(2), Phosphorus: Ptr(2), Potassium: Ptr(10)}
		for _, crop := range domain.CropTypes() {
			plan, err := FertilizerPlan(poor, crop, 6)
			require.NoError(t, err)

			late, ok := plan.Schedule[StageLateGrowth]
			require.True(t, ok, "crop %s", crop)
			assert.Equal(t, domain.NPK{}, late.Nutrients, "crop %s", crop)
			assert.Equal(t, "Before reproductive stage", late.Timing)
		}
	})

	t.Run("cost follows market prices", func(t *testing.T) {
		plan, err := FertilizerPlan(healthyTest(), domain.CropWheat, 5)
		require.NoError(t, err)

		cost := plan.EstimatedCost
		assert.Equal(t, "USD", cost.Currency)
		assert.InDelta(t, plan.Fertilizer.N*1.20, cost.Nitrogen, 0.01)
		assert.InDelta(t, plan.Fertilizer.P*1.50, cost.Phosphorus, 0.01)
		assert.InDelta(t, plan.Fertilizer.K*0.80, cost.Potassium, 0.01)
		assert.InDelta(t, cost.Nitrogen+cost.Phosphorus+cost.Potassium, cost.Total, 0.01)
	})

	t.Run("unknown crop", func(t *testing.T) {
		_, err := FertilizerPlan(healthyTest(), domain.CropType("Barley"), 5)
		assert.ErrorIs(t, err, domain.ErrUnsupportedCrop)
	})

	t.Run("target yield must be positive", func(t *testing.T) {
		_, err := FertilizerPlan(healthyTest(), domain.CropWheat, 0)
		assert.Error(t, err)
		_, err = FertilizerPlan(healthyTest(), domain.CropWheat, -2)
		assert.Error(t, err)
	})
}
