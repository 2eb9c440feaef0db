package fit

import "github.com/cwbudde/algo-haloscope/model"

// FitBackground fits the cavity background to the spectrum. center is the
// expected cavity frequency and ref the reference power scale; both only
// seed the starting values (see [BackgroundParams]). All six parameters are
// free.
func FitBackground(s model.Spectrum, center, ref float64, opts ...Option) (*Result, error) {
	return Minimize(BackgroundModel{}, BackgroundParams(center, ref), s, opts...)
}
