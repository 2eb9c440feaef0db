package fit

import (
	"fmt"

	"github.com/cwbudde/algo-haloscope/model"
)

// FitSignal fits background plus a peak of the given shape at x0. The
// background starts from init (usually the best values of [FitBackground])
// and stays fixed unless [WithParVary] is set. The width is fixed; the
// amplitude starts at [WithMuInit] (default 1), is kept non-negative and is
// free unless [WithMuVary] disables it.
func FitSignal(s model.Spectrum, x0 float64, init model.Background, shape model.Shape, opts ...Option) (*Result, error) {
	if !shape.Valid() {
		return nil, fmt.Errorf("fit: %w: %s", model.ErrUnknownShape, shape)
	}

	cfg := ApplyOptions(opts...)

	return Minimize(SignalModel{Shape: shape}, SignalParams(init, x0, cfg), s, opts...)
}
