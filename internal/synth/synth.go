// Package synth builds deterministic synthetic cavity spectra for tests,
// examples and the demo command.
package synth

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/cwbudde/algo-haloscope/model"
)

// Linspace returns n evenly spaced values over [start, stop], inclusive.
func Linspace(start, stop float64, n int) []float64 {
	switch {
	case n <= 0:
		return nil
	case n == 1:
		return []float64{start}
	}

	return floats.Span(make([]float64, n), start, stop)
}

// GaussianNoise returns n samples of zero-mean normal noise with standard
// deviation sigma. The same seed always yields the same samples.
func GaussianNoise(seed uint64, sigma float64, n int) []float64 {
	dist := distuv.Normal{Mu: 0, Sigma: sigma, Src: rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)}

	out := make([]float64, n)
	for i := range out {
		out[i] = dist.Rand()
	}

	return out
}

// Const returns a slice of length n filled with v.
func Const(v float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}

	return out
}

// Scenario describes a synthetic swept-frequency measurement.
type Scenario struct {
	Start, Stop float64
	Points      int
	Background  model.Background
	// Shape selects an injected peak; the zero value injects none.
	Shape model.Shape
	Peak  model.Peak
	// Noise is the standard deviation of the additive Gaussian noise.
	Noise float64
	// Sigma is the per-point uncertainty reported with the data.
	// Zero means Noise.
	Sigma float64
	Seed  uint64
}

// Spectrum renders the scenario.
func (s Scenario) Spectrum() model.Spectrum {
	x := Linspace(s.Start, s.Stop, s.Points)
	y := make([]float64, len(x))

	if s.Shape.Valid() {
		model.Signal{Background: s.Background, Peak: s.Peak, Shape: s.Shape}.Eval(y, x)
	} else {
		s.Background.Eval(y, x)
	}

	if s.Noise > 0 {
		noise := GaussianNoise(s.Seed, s.Noise, len(x))
		for i := range y {
			y[i] += noise[i]
		}
	}

	sigma := s.Sigma
	if sigma == 0 {
		sigma = s.Noise
	}

	return model.Spectrum{Freq: x, Power: y, Sigma: Const(sigma, len(x))}
}
