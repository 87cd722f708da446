package predict

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// Noise draws the model-uncertainty deduction applied to a confidence
// score. It is an explicit dependency rather than an ambient generator so
// tests can substitute a fixed draw and assert exact values.
type Noise interface {
	Draw() float64
}

// UniformNoise draws uncertainty uniformly from [0.05, 0.15].
type UniformNoise struct {
	dist distuv.Uniform
}

// NewUniformNoise creates the production noise source, seeded from the
// system entropy pool. Predictions carry irreducible jitter on purpose.
func NewUniformNoise() *UniformNoise {
	return &UniformNoise{dist: distuv.Uniform{
		Min: 0.05,
		Max: 0.15,
		Src: rand.NewPCG(rand.Uint64(), rand.Uint64()),
	}}
}

func (u *UniformNoise) Draw() float64 { return u.dist.Rand() }

// FixedNoise always draws the same value. Test helper.
type FixedNoise float64

func (f FixedNoise) Draw() float64 { return float64(f) }
