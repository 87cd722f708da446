package soil

import (
	"fmt"
	"math"

	"github.com/hptimes-code/ai-crop-yield-prediction/internal/domain"
)

// Oxide conversion factors and soil availability fractions. Soil test P
// and K are elemental; fertilizer math runs in oxide equivalents.
const (
	pToP2O5 = 2.29
	kToK2O  = 1.20

	availabilityN = 0.5
	availabilityP = 0.3
	availabilityK = 0.8
)

// Soil-test fallbacks used when a fertilizer plan is requested without the
// corresponding measurement.
const (
	defaultSoilN = 25.0
	defaultSoilP = 20.0
	defaultSoilK = 150.0
)

// Market prices in USD per kg of nutrient (urea, DAP, MOP).
const (
	priceN = 1.20
	priceP = 1.50
	priceK = 0.80
)

// ApplicationStage names a bucket of the fertilizer schedule.
type ApplicationStage string

const (
	StagePrePlant    ApplicationStage = "pre_plant"
	StageEarlyGrowth ApplicationStage = "early_growth"
	StageMidGrowth   ApplicationStage = "mid_growth"
	StageLateGrowth  ApplicationStage = "late_growth"
)

// applicationStages fixes schedule iteration order.
var applicationStages = []ApplicationStage{
	StagePrePlant, StageEarlyGrowth, StageMidGrowth, StageLateGrowth,
}

var stageTimings = map[ApplicationStage]string{
	StagePrePlant:    "Before planting or at planting",
	StageEarlyGrowth: "2-4 weeks after emergence",
	StageMidGrowth:   "6-8 weeks after emergence",
	StageLateGrowth:  "Before reproductive stage",
}

// Application is one scheduled dose in kg/ha of N, P2O5, and K2O.
type Application struct {
	Nutrients domain.NPK `json:"nutrients"`
	Timing    string     `json:"timing"`
}

// Cost is the estimated fertilizer spend in USD per hectare.
type Cost struct {
	Nitrogen   float64 `json:"nitrogen_cost"`
	Phosphorus float64 `json:"phosphorus_cost"`
	Potassium  float64 `json:"potassium_cost"`
	Total      float64 `json:"total_cost"`
	Currency   string  `json:"currency"`
}

// Plan is the full fertilizer recommendation for a target yield.
type Plan struct {
	Crop          domain.CropType                  `json:"crop_type"`
	TargetYield   float64                          `json:"target_yield"`
	TotalNeeded   domain.NPK                       `json:"total_nutrients_needed"`
	SoilAvailable domain.NPK                       `json:"soil_available"`
	Fertilizer    domain.NPK                       `json:"fertilizer_needed"`
	Schedule      map[ApplicationStage]Application `json:"application_schedule"`
	EstimatedCost Cost                             `json:"estimated_cost"`
}

// stageSplits distributes each nutrient's total fertilizer need across the
// growth stages. Per nutrient the fractions sum to 1.0; phosphorus always
// goes down in full at planting, and the late-growth bucket stays empty
// for every crop.
var stageSplits = map[domain.CropType]map[ApplicationStage]domain.NPK{
	domain.CropWheat: {
		StagePrePlant:    {N: 0.3, P: 1.0, K: 0.5},
		StageEarlyGrowth: {N: 0.4, K: 0.3},
		StageMidGrowth:   {N: 0.3, K: 0.2},
	},
	domain.CropCorn: {
		StagePrePlant:    {N: 0.2, P: 1.0, K: 0.4},
		StageEarlyGrowth: {N: 0.3, K: 0.3},
		StageMidGrowth:   {N: 0.5, K: 0.3},
	},
	domain.CropRice: {
		StagePrePlant:    {N: 0.4, P: 1.0, K: 0.5},
		StageEarlyGrowth: {N: 0.3},
		StageMidGrowth:   {N: 0.3, K: 0.5},
	},
	domain.CropSoybeans: {
		StagePrePlant:    {N: 0.5, P: 1.0, K: 0.6},
		StageEarlyGrowth: {N: 0.3, K: 0.2},
		StageMidGrowth:   {N: 0.2, K: 0.2},
	},
}

// FertilizerPlan sizes fertilizer needs for a target yield: per-ton crop
// removal scaled by the target, minus the plant-available share of what
// the soil test shows, floored at zero, then split across growth stages
// and costed. Returns ErrUnsupportedCrop for unknown crops.
func FertilizerPlan(t Test, crop domain.CropType, targetYield float64) (Plan, error) {
	profile, err := domain.ProfileFor(crop)
	if err != nil {
		return Plan{}, fmt.Errorf("fertilizer plan: %w", err)
	}
	if targetYield <= 0 {
		return Plan{}, fmt.Errorf("fertilizer plan: target yield %.2f must be positive", targetYield)
	}

	needed := domain.NPK{
		N: profile.NutrientPerTon.N * targetYield,
		P: profile.NutrientPerTon.P * targetYield,
		K: profile.NutrientPerTon.K * targetYield,
	}
	available := domain.NPK{
		N: t.valueOr(ParamNitrogen, defaultSoilN),
		P: t.valueOr(ParamPhosphorus, defaultSoilP) * pToP2O5,
		K: t.valueOr(ParamPotassium, defaultSoilK) * kToK2O,
	}
	fertilizer := domain.NPK{
		N: round1(math.Max(0, needed.N-available.N*availabilityN)),
		P: round1(math.Max(0, needed.P-available.P*availabilityP)),
		K: round1(math.Max(0, needed.K-available.K*availabilityK)),
	}

	return Plan{
		Crop:          crop,
		TargetYield:   targetYield,
		TotalNeeded:   needed,
		SoilAvailable: available,
		Fertilizer:    fertilizer,
		Schedule:      buildSchedule(crop, fertilizer),
		EstimatedCost: estimateCost(fertilizer),
	}, nil
}

func buildSchedule(crop domain.CropType, fertilizer domain.NPK) map[ApplicationStage]Application {
	splits := stageSplits[crop]
	schedule := make(map[ApplicationStage]Application, len(applicationStages))
	for _, stage := range applicationStages {
		split := splits[stage]
		schedule[stage] = Application{
			Nutrients: domain.NPK{
				N: round1(fertilizer.N * split.N),
				P: round1(fertilizer.P * split.P),
				K: round1(fertilizer.K * split.K),
			},
			Timing: stageTimings[stage],
		}
	}
	return schedule
}

func estimateCost(fertilizer domain.NPK) Cost {
	n := round2(fertilizer.N * priceN)
	p := round2(fertilizer.P * priceP)
	k := round2(fertilizer.K * priceK)
	return Cost{
		Nitrogen:   n,
		Phosphorus: p,
		Potassium:  k,
		Total:      round2(n + p + k),
		Currency:   "USD",
	}
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
