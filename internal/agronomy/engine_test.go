package agronomy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hptimes-code/ai-crop-yield-prediction/internal/domain"
)

func TestRecommend(t *testing.T) {
	july := time.Date(2025, time.July, 15, 0, 0, 0, 0, time.UTC)

	t.Run("rice at maturity in july", func(t *testing.T) {
		plan, err := Recommend(domain.CropRice, domain.StageMaturity, july, "South Region")
		require.NoError(t, err)

		assert.Equal(t, domain.CropRice, plan.Crop)
		assert.Equal(t, "South Region", plan.Region)
		assert.Equal(t, july, plan.GeneratedAt)

		// Maturity makes harvesting the urgent category.
		assert.Equal(t, PriorityHigh, plan.Harvesting.Priority)
		assert.Equal(t, "Crop is approaching harvest readiness - begin harvest preparations", plan.Harvesting.Action)
		assert.Contains(t, plan.Harvesting.Details, "Check grain filling and color change")
		assert.Contains(t, plan.Harvesting.Details, "Schedule harvest during optimal weather windows")

		// Rice's thirst bumps the low maturity irrigation priority up one.
		assert.Equal(t, PriorityMedium, plan.Irrigation.Priority)
		assert.Contains(t, plan.Irrigation.Action, " - This crop requires abundant water")

		// Peak season pest pressure.
		assert.Equal(t, PriorityHigh, plan.PestControl.Priority)
	})

	t.Run("wheat seedling keeps the base irrigation advice", func(t *testing.T) {
		plan, err := Recommend(domain.CropWheat, domain.StageSeedling, july, "")
		require.NoError(t, err)

		assert.Equal(t, PriorityHigh, plan.Irrigation.Priority)
		assert.Equal(t, "Light, frequent watering to maintain soil moisture", plan.Irrigation.Action)
	})

	t.Run("seasonal irrigation details", func(t *testing.T) {
		summer, err := Recommend(domain.CropCorn, domain.StageVegetative, july, "")
		require.NoError(t, err)
		assert.Contains(t, summer.Irrigation.Details, "Increase irrigation frequency during hot summer months")

		january := time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC)
		winter, err := Recommend(domain.CropCorn, domain.StageVegetative, january, "")
		require.NoError(t, err)
		assert.Contains(t, winter.Irrigation.Details, "Reduce irrigation frequency in cooler weather")

		april := time.Date(2025, time.April, 10, 0, 0, 0, 0, time.UTC)
		shoulder, err := Recommend(domain.CropCorn, domain.StageVegetative, april, "")
		require.NoError(t, err)
		assert.Contains(t, shoulder.Irrigation.Details, "Monitor weather forecasts before scheduling irrigation")
	})

	t.Run("fertilization follows the crop schedule", func(t *testing.T) {
		plan, err := Recommend(domain.CropWheat, domain.StageVegetative, july, "")
		require.NoError(t, err)

		assert.Contains(t, plan.Fertilization.Action, "suitable for vegetative stage")
		assert.Equal(t, "Every 3-4 weeks during active growth", plan.Fertilization.Timing)
		assert.Equal(t, PriorityHigh, plan.Fertilization.Priority)
		assert.Contains(t, plan.Fertilization.Details, "Apply nitrogen-rich fertilizer to promote leaf and stem growth")
	})

	t.Run("pest watch list names the top two pests", func(t *testing.T) {
		plan, err := Recommend(domain.CropCorn, domain.StageVegetative, july, "")
		require.NoError(t, err)

		assert.Equal(t, "Monitor for Corn borer, Rootworm and other common pests", plan.PestControl.Action)
		assert.Contains(t, plan.PestControl.Details, "Common pests for Corn: Corn borer, Rootworm, Fall armyworm")
	})

	t.Run("not ready for harvest before maturity", func(t *testing.T) {
		plan, err := Recommend(domain.CropSoybeans, domain.StageFlowering, july, "")
		require.NoError(t, err)

		assert.Equal(t, PriorityLow, plan.Harvesting.Priority)
		assert.Equal(t, "Continue monitoring crop development - not ready for harvest", plan.Harvesting.Action)
		assert.Equal(t, "Crop is currently in flowering stage", plan.Harvesting.Reason)
	})

	t.Run("unknown crop", func(t *testing.T) {
		_, err := Recommend(domain.CropType("Barley"), domain.StageSeedling, july, "")
		assert.ErrorIs(t, err, domain.ErrUnsupportedCrop)
	})
}

func TestIrrigationWaterNeedAdjustment(t *testing.T) {
	date := time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)

	t.Run("drought tolerant crop drops high priority", func(t *testing.T) {
		p := domain.Profile{WaterNeeds: domain.WaterLow}
		rec := irrigationAdvice(p, domain.StageSeedling, date)
		assert.Equal(t, PriorityMedium, rec.Priority)
		assert.Contains(t, rec.Action, " - This crop is drought tolerant")
	})

	t.Run("thirsty crop raises low priority", func(t *testing.T) {
		p := domain.Profile{WaterNeeds: domain.WaterVeryHigh}
		rec := irrigationAdvice(p, domain.StageMaturity, date)
		assert.Equal(t, PriorityMedium, rec.Priority)
	})

	t.Run("medium needs leave the stage priority alone", func(t *testing.T) {
		p := domain.Profile{WaterNeeds: domain.WaterMedium}
		rec := irrigationAdvice(p, domain.StageMaturity, date)
		assert.Equal(t, PriorityLow, rec.Priority)
	})
}

func TestSeasonalPestRisk(t *testing.T) {
	cases := []struct {
		month time.Month
		want  Priority
	}{
		{time.January, PriorityLow},
		{time.March, PriorityMedium},
		{time.May, PriorityHigh},
		{time.July, PriorityHigh},
		{time.September, PriorityHigh},
		{time.October, PriorityMedium},
		{time.November, PriorityLow},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, seasonalPestRisk(tc.month), "month %s", tc.month)
	}
}
