package residual

import (
	"fmt"
	"math"
)

// Bin is one histogram bin covering [Lo, Hi).
type Bin struct {
	Lo, Hi float64
	Count  int
	// Value is Count, or the density Count/(N·width) when requested, with N
	// the number of in-range samples.
	Value float64
}

// Histogram bins res into bins equal-width bins over [lo, hi]. All bins are
// half-open except the last, which includes hi. Values outside the range
// and NaNs are dropped. A degenerate range lo == hi is widened by 0.5 on
// both sides. res is not modified.
func Histogram(res []float64, lo, hi float64, bins int, density bool) ([]Bin, error) {
	if bins <= 0 {
		return nil, ErrInvalidBins
	}

	if lo > hi || math.IsNaN(lo) || math.IsNaN(hi) || math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return nil, fmt.Errorf("%w: [%g, %g]", ErrInvalidRange, lo, hi)
	}

	if lo == hi {
		lo -= 0.5
		hi += 0.5
	}

	width := (hi - lo) / float64(bins)

	out := make([]Bin, bins)
	for i := range out {
		out[i].Lo = lo + float64(i)*width
		out[i].Hi = lo + float64(i+1)*width
	}

	out[bins-1].Hi = hi

	var total int

	for _, v := range res {
		if !(v >= lo && v <= hi) {
			continue
		}

		i := int((v - lo) / width)
		if i >= bins {
			i = bins - 1
		}

		// Guard against rounding in the division near bin edges.
		if i > 0 && v < out[i].Lo {
			i--
		} else if i < bins-1 && v >= out[i].Hi {
			i++
		}

		out[i].Count++
		total++
	}

	for i := range out {
		out[i].Value = float64(out[i].Count)
		if density {
			if total == 0 {
				out[i].Value = math.NaN()
				continue
			}

			out[i].Value /= float64(total) * (out[i].Hi - out[i].Lo)
		}
	}

	return out, nil
}
