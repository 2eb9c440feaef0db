// Package fit performs weighted nonlinear least-squares fits of the cavity
// spectral models in package model.
//
// Fits run in two stages. [FitBackground] estimates the six background
// parameters with the resonance positions bounded near the expected cavity
// frequency. [FitSignal] then re-fits background plus a Gaussian or
// Maxwell-Boltzmann peak with the background and the peak width frozen, so
// that only the amplitude (and optionally the center) is estimated.
//
// Parameters are described by explicit [Param] values (value, optional
// bounds, free flag). Bounded parameters are mapped to unbounded internal
// coordinates before they reach the Levenberg-Marquardt solver.
//
// Solver non-convergence is not an error: it is reported through
// [Result.Success] and [Result.Message] and left to the caller to inspect.
//
// # Usage
//
//	bkg, err := fit.FitBackground(spec, 1.05e9, 1.0)
//	if err != nil { ... }
//	sig, err := fit.FitSignal(spec, 1.05e9+5*model.BinWidth, bkg.Background(), model.ShapeMaxwell)
//	fmt.Println(sig.Report())
package fit
