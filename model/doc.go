// Package model provides the closed-form spectral models used to describe a
// swept-frequency cavity power spectrum.
//
// The background is a Lorentzian-like ratio with a linear baseline:
//
//	bkg(x) = e² · |x − a + i·b|² / |x − c + i·d|² + f·(x − c)
//
// A signal is an additive peak on top of the background, either Gaussian
//
//	gaussian(x) = mu · exp(−½((x − x0)/s)²)
//
// or Maxwell-Boltzmann shaped
//
//	maxwell(x) = mu · (x²/s³) · exp(−½((x − x0)/s)²)
//
// All functions are pure. Degenerate parameters (d = 0 at x = c, s = 0)
// produce Inf/NaN values; they are propagated, not trapped.
//
// # Usage
//
//	bkg := model.Background{A: 1.05e9, B: 2e4, C: 1.05e9, D: 2.2e4, E: 1e-2, F: 1e-12}
//	sig := model.Signal{
//	    Background: bkg,
//	    Peak:       model.Peak{X0: 1.05e9 + 5*model.BinWidth, S: model.DefaultWidth, Mu: 1e-4},
//	    Shape:      model.ShapeMaxwell,
//	}
//	curve := make([]float64, len(freq))
//	sig.Eval(curve, freq)
package model
