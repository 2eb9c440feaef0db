package residual

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

var (
	// ErrEmpty is returned when a statistic needs at least one residual.
	ErrEmpty = errors.New("residual: empty input")
	// ErrInvalidRange is returned for histogram ranges with lo > hi or
	// non-finite bounds.
	ErrInvalidRange = errors.New("residual: invalid histogram range")
	// ErrInvalidBins is returned for a non-positive bin count.
	ErrInvalidBins = errors.New("residual: bin count must be positive")
)

// Stats holds residual statistics.
type Stats struct {
	Length      int
	Mean        float64
	Std         float64 // population standard deviation
	RMS         float64
	Max         float64
	MaxPos      int
	Min         float64
	MinPos      int
	SignChanges int
	Skewness    float64
	Kurtosis    float64 // excess
}

// Summary computes all statistics in a single pass using Welford's online
// algorithm for the higher-order moments.
func Summary(res []float64) Stats {
	n := len(res)
	if n == 0 {
		return Stats{}
	}

	var (
		mean, m2, m3, m4 float64
		sumSq            float64
		maxVal, minVal   = res[0], res[0]
		maxPos, minPos   int
		signChanges      int
	)

	for i, x := range res {
		ni := float64(i + 1)
		delta := x - mean
		deltaN := delta / ni
		deltaN2 := deltaN * deltaN
		term1 := delta * deltaN * float64(i)

		// M4 must be updated before M3, and M3 before M2.
		m4 += term1*deltaN2*(ni*ni-3*ni+3) + 6*deltaN2*m2 - 4*deltaN*m3
		m3 += term1*deltaN*(float64(i)-1) - 3*deltaN*m2
		m2 += term1
		mean += deltaN

		sumSq += x * x

		if x > maxVal {
			maxVal, maxPos = x, i
		}

		if x < minVal {
			minVal, minPos = x, i
		}

		if i > 0 && res[i-1]*x < 0 {
			signChanges++
		}
	}

	nf := float64(n)
	variance := m2 / nf

	var skewness, kurtosis float64
	if variance > 0 {
		skewness = (m3 / nf) / (variance * math.Sqrt(variance))
		kurtosis = (m4/nf)/(variance*variance) - 3
	}

	return Stats{
		Length:      n,
		Mean:        mean,
		Std:         math.Sqrt(variance),
		RMS:         math.Sqrt(sumSq / nf),
		Max:         maxVal,
		MaxPos:      maxPos,
		Min:         minVal,
		MinPos:      minPos,
		SignChanges: signChanges,
		Skewness:    skewness,
		Kurtosis:    kurtosis,
	}
}

// NormalFit returns the maximum-likelihood normal distribution for res:
// the sample mean and the population (1/N) standard deviation.
func NormalFit(res []float64) (distuv.Normal, error) {
	if len(res) == 0 {
		return distuv.Normal{}, ErrEmpty
	}

	mean, std := stat.PopMeanStdDev(res, nil)

	return distuv.Normal{Mu: mean, Sigma: std}, nil
}

// SymmetricRange returns [−R, R] with R = ceil(max(res)). Only the largest
// residual sets the range, so strongly negative outliers may fall outside.
func SymmetricRange(res []float64) (lo, hi float64, err error) {
	if len(res) == 0 {
		return 0, 0, ErrEmpty
	}

	r := math.Ceil(res[0])
	for _, v := range res[1:] {
		r = math.Max(r, math.Ceil(v))
	}

	return -r, r, nil
}

// DurbinWatson returns Σ(eᵢ − eᵢ₋₁)² / Σeᵢ². Values near 2 indicate no
// first-order serial correlation; values toward 0 indicate positive
// correlation, as left by a misfit model. Returns NaN for an all-zero input.
func DurbinWatson(res []float64) float64 {
	if len(res) == 0 {
		return math.NaN()
	}

	var num, den float64
	for i, x := range res {
		den += x * x

		if i > 0 {
			d := x - res[i-1]
			num += d * d
		}
	}

	if den == 0 {
		return math.NaN()
	}

	return num / den
}
