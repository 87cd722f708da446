// Package synthdata produces labeled synthetic training tables per crop
// from the static profile ranges and a deterministic yield formula plus
// noise. For a fixed seed the output is fully reproducible, which is what
// makes the downstream model training testable.
package synthdata

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/hptimes-code/ai-crop-yield-prediction/internal/domain"
)

// DefaultSeed is the fixed seed used for the training tables built at
// service start. Keeping it constant makes the trained models reproducible
// across restarts.
const DefaultSeed uint64 = 42

// Sample is one labeled training row.
type Sample struct {
	Crop           domain.CropType      `json:"crop_type"`
	Features       domain.FeatureVector `json:"features"`
	YieldTonsPerHa float64              `json:"yield_tons_per_ha"`
}

// Generator samples training rows from crop-specific distributions.
// Not safe for concurrent use; create one per goroutine.
type Generator struct {
	src rand.Source
}

// NewGenerator creates a generator with a fixed seed.
func NewGenerator(seed uint64) *Generator {
	return &Generator{src: rand.NewPCG(seed, seed)}
}

// Generate produces n labeled rows for one crop. Soil parameters come from
// gamma/uniform distributions over the profile ranges, weather from normals
// centered at the range midpoint (std = width/6) and a scaled gamma for
// rainfall; the label is the deterministic yield formula plus Gaussian
// noise, floored at 0.5 t/ha.
func (g *Generator) Generate(crop domain.CropType, n int) ([]Sample, error) {
	p, err := domain.ProfileFor(crop)
	if err != nil {
		return nil, err
	}
	if n <= 0 {
		return nil, fmt.Errorf("sample count must be positive, got %d", n)
	}

	samples := make([]Sample, 0, n)
	for i := 0; i < n; i++ {
		f := g.sampleFeatures(p)
		y := expectedYield(p, f)
		y += g.normal(0, p.YieldVariance*0.2)
		y = math.Max(0.5, y)

		samples = append(samples, Sample{
			Crop:           crop,
			Features:       f,
			YieldTonsPerHa: round(y, 2),
		})
	}
	return samples, nil
}

// GenerateAll produces perCrop rows for every supported crop, then applies
// cross-feature perturbations (organic matter boosts nitrogen, heat dries
// humidity, rainfall shifts potassium) and re-clips every column to the
// global physical bounds.
func (g *Generator) GenerateAll(perCrop int) ([]Sample, error) {
	var all []Sample
	for _, crop := range domain.CropTypes() {
		s, err := g.Generate(crop, perCrop)
		if err != nil {
			return nil, err
		}
		g.applyCorrelations(s)
		all = append(all, s...)
	}

	for i := range all {
		all[i].Features = all[i].Features.ClipGlobal()
		all[i].YieldTonsPerHa = domain.GlobalBounds.Yield.Clip(all[i].YieldTonsPerHa)
	}
	return all, nil
}

func (g *Generator) sampleFeatures(p domain.Profile) domain.FeatureVector {
	ph := g.uniform(p.PH.Min, p.PH.Max)

	om := g.gamma(2, 1.5) + p.OrganicMatter.Min
	om = math.Min(om, p.OrganicMatter.Max)

	nitrogen := p.Nitrogen.Clip(g.gamma(3, p.Nitrogen.Max/6))
	phosphorus := p.Phosphorus.Clip(g.gamma(2.5, p.Phosphorus.Max/5))
	potassium := p.Potassium.Clip(g.gamma(4, p.Potassium.Max/8))

	temperature := p.Temperature.Clip(g.normal(p.Temperature.Mid(), p.Temperature.Width()/6))
	rainfall := p.Rainfall.Clip(g.gamma(2, p.Rainfall.Max/4))
	humidity := p.Humidity.Clip(g.normal(p.Humidity.Mid(), p.Humidity.Width()/6))

	return domain.FeatureVector{
		PH:            round(ph, 2),
		OrganicMatter: round(om, 2),
		Nitrogen:      round(nitrogen, 1),
		Phosphorus:    round(phosphorus, 1),
		Potassium:     round(potassium, 1),
		Temperature:   round(temperature, 1),
		Rainfall:      round(rainfall, 0),
		Humidity:      round(humidity, 1),
	}
}

// applyCorrelations perturbs one crop's block in place. Rows above the
// median for a driver column get a multiplicative adjustment on the
// correlated column, drawn per row.
func (g *Generator) applyCorrelations(block []Sample) {
	oms := make([]float64, len(block))
	temps := make([]float64, len(block))
	rains := make([]float64, len(block))
	for i, s := range block {
		oms[i] = s.Features.OrganicMatter
		temps[i] = s.Features.Temperature
		rains[i] = s.Features.Rainfall
	}

	omMedian, _ := stats.Median(oms)
	tempMedian, _ := stats.Median(temps)
	rainMedian, _ := stats.Median(rains)

	for i := range block {
		f := &block[i].Features
		// Rich organic matter mineralizes extra nitrogen.
		if f.OrganicMatter > omMedian {
			f.Nitrogen *= g.uniform(1.05, 1.2)
		}
		// Hotter plots tend to be drier.
		if f.Temperature > tempMedian {
			f.Humidity *= g.uniform(0.85, 0.95)
		}
		// High-rainfall regions leach or deposit potassium.
		if f.Rainfall > rainMedian {
			f.Potassium *= g.uniform(0.9, 1.1)
		}
	}
}

// gamma draws from a gamma distribution given shape and scale (numpy
// convention; distuv's Beta is the rate, the reciprocal of scale).
func (g *Generator) gamma(shape, scale float64) float64 {
	return distuv.Gamma{Alpha: shape, Beta: 1 / scale, Src: g.src}.Rand()
}

func (g *Generator) normal(mean, std float64) float64 {
	return distuv.Normal{Mu: mean, Sigma: std, Src: g.src}.Rand()
}

func (g *Generator) uniform(lo, hi float64) float64 {
	return distuv.Uniform{Min: lo, Max: hi, Src: g.src}.Rand()
}

func round(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}
