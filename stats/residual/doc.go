// Package residual summarizes normalized fit residuals: moments, a normal
// fit, the symmetric histogram range used by diagnostic plots, density
// histograms, and serial-correlation checks.
package residual
