package residual

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// Autocorrelation returns the normalized autocorrelation of res for lags
// 0..maxLag, computed with a zero-padded FFT. The mean is removed first and
// lag 0 is 1. maxLag is clamped to len(res)-1. A constant input yields all
// zeros.
func Autocorrelation(res []float64, maxLag int) ([]float64, error) {
	n := len(res)
	if n == 0 {
		return nil, ErrEmpty
	}

	maxLag = min(max(maxLag, 0), n-1)

	var mean float64
	for _, v := range res {
		mean += v
	}

	mean /= float64(n)

	size := nextPowerOf2(2*n - 1)

	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return nil, fmt.Errorf("residual: failed to create FFT plan: %w", err)
	}

	padded := make([]complex128, size)
	for i, v := range res {
		padded[i] = complex(v-mean, 0)
	}

	freq := make([]complex128, size)
	if err := plan.Forward(freq, padded); err != nil {
		return nil, fmt.Errorf("residual: forward FFT failed: %w", err)
	}

	// |X|² is the spectrum of the linear autocorrelation.
	for i, c := range freq {
		freq[i] = complex(real(c)*real(c)+imag(c)*imag(c), 0)
	}

	acf := make([]complex128, size)
	if err := plan.Inverse(acf, freq); err != nil {
		return nil, fmt.Errorf("residual: inverse FFT failed: %w", err)
	}

	out := make([]float64, maxLag+1)

	r0 := real(acf[0])
	if r0 <= 0 {
		return out, nil
	}

	for k := range out {
		out[k] = real(acf[k]) / r0
	}

	return out, nil
}

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}

	return p
}
