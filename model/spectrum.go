package model

import "errors"

// Errors returned by spectrum validation.
var (
	ErrEmpty          = errors.New("model: spectrum is empty")
	ErrLengthMismatch = errors.New("model: frequency, power and sigma lengths differ")
)

// Spectrum is one swept-frequency power measurement with per-point
// uncertainties. Freq is expected to be increasing; this is not enforced.
type Spectrum struct {
	Freq  []float64 // frequency in Hz
	Power []float64 // measured power
	Sigma []float64 // measurement uncertainty, used as inverse weight
}

// Len returns the number of samples.
func (s Spectrum) Len() int { return len(s.Freq) }

// Validate checks that the three sequences are non-empty and of equal length.
// Non-positive uncertainties are not rejected.
func (s Spectrum) Validate() error {
	if len(s.Freq) == 0 {
		return ErrEmpty
	}

	if len(s.Power) != len(s.Freq) || len(s.Sigma) != len(s.Freq) {
		return ErrLengthMismatch
	}

	return nil
}

// Weights returns 1/sigma for every sample.
func (s Spectrum) Weights() []float64 {
	w := make([]float64, len(s.Sigma))
	for i, v := range s.Sigma {
		w[i] = 1 / v
	}

	return w
}
