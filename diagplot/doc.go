// Package diagplot renders diagnostic figures for cavity spectrum fits:
// the data with the best-fit curve, the fit residuals, a histogram of
// normalized residuals against a fitted normal density, and the residuals
// inside their ±sigma band.
//
// Figures are explicit handles. Nothing is drawn until a Figure is written,
// and no global plotting state is involved.
package diagplot
