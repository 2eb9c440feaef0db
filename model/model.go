package model

import (
	"math"

	"github.com/cwbudde/algo-vecmath"
)

const (
	// BinWidth is the frequency resolution of the underlying spectrum in Hz.
	BinWidth = 651.0

	// DefaultWidth is the signal width used by the signal fit: 16 bins.
	DefaultWidth = 16 * BinWidth
)

// Background holds the six background shape parameters. A and C are the
// resonance positions of the numerator and denominator, B and D their
// half-widths, E the amplitude scale and F the linear baseline slope.
type Background struct {
	A, B, C, D, E, F float64
}

// Peak holds the signal parameters: center X0, width S and amplitude Mu.
type Peak struct {
	X0, S, Mu float64
}

// Bkg evaluates the background model at x.
func Bkg(x float64, p Background) float64 {
	num := complex(x-p.A, p.B)
	den := complex(x-p.C, p.D)

	return p.E*p.E*absSq(num)/absSq(den) + p.F*(x-p.C)
}

// Gaussian evaluates a Gaussian peak at x. The value at X0 is Mu.
func Gaussian(x float64, p Peak) float64 {
	z := (x - p.X0) / p.S
	return p.Mu * math.Exp(-0.5*z*z)
}

// Maxwell evaluates a Maxwell-Boltzmann shaped peak at x. The value at X0 is
// Mu·X0²/S³, which is not the maximum of the distribution.
func Maxwell(x float64, p Peak) float64 {
	z := (x - p.X0) / p.S
	return p.Mu * (x * x / (p.S * p.S * p.S)) * math.Exp(-0.5*z*z)
}

// SignalGauss evaluates background plus Gaussian peak at x.
func SignalGauss(x float64, bkg Background, peak Peak) float64 {
	return Bkg(x, bkg) + Gaussian(x, peak)
}

// SignalMaxwell evaluates background plus Maxwell-Boltzmann peak at x.
func SignalMaxwell(x float64, bkg Background, peak Peak) float64 {
	return Bkg(x, bkg) + Maxwell(x, peak)
}

// At evaluates the background at x.
func (p Background) At(x float64) float64 { return Bkg(x, p) }

// Eval writes the background evaluated at every x into dst.
// dst and x must have the same length.
func (p Background) Eval(dst, x []float64) {
	n := len(x)
	if len(dst) != n {
		panic("model: dst and x length mismatch")
	}

	if n == 0 {
		return
	}

	scratch, buf := getScratch(n, 3)
	defer putScratch(buf)

	re, im, den := scratch[0], scratch[1], scratch[2]

	for i, xi := range x {
		re[i] = xi - p.A
		im[i] = p.B
	}

	vecmath.Power(dst, re, im)

	for i, xi := range x {
		re[i] = xi - p.C
		im[i] = p.D
	}

	vecmath.Power(den, re, im)

	e2 := p.E * p.E
	for i := range dst {
		dst[i] = e2*dst[i]/den[i] + p.F*re[i]
	}
}

// Signal is the additive combination of a background and a shaped peak.
type Signal struct {
	Background Background
	Peak       Peak
	Shape      Shape
}

// At evaluates the combined model at x.
func (s Signal) At(x float64) float64 {
	return Bkg(x, s.Background) + s.Shape.At(x, s.Peak)
}

// Eval writes the combined model evaluated at every x into dst.
func (s Signal) Eval(dst, x []float64) {
	s.Background.Eval(dst, x)

	if len(x) == 0 {
		return
	}

	scratch, buf := getScratch(len(x), 1)
	defer putScratch(buf)

	peak := scratch[0]
	s.Shape.Eval(peak, x, s.Peak)

	for i := range dst {
		dst[i] += peak[i]
	}
}

func absSq(z complex128) float64 {
	return real(z)*real(z) + imag(z)*imag(z)
}
