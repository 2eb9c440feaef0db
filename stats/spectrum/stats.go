// Package spectrum computes summary descriptors of a measured power
// spectrum sampled on an arbitrary, increasing frequency grid.
package spectrum

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"
)

// ErrLengthMismatch is returned when freq and power differ in length.
var ErrLengthMismatch = errors.New("spectrum: freq and power lengths differ")

// Stats holds descriptors of a power spectrum.
type Stats struct {
	Points   int
	Max      float64
	MaxFreq  float64
	Min      float64
	MinFreq  float64
	Mean     float64
	Range    float64
	Range_dB float64 //nolint:revive // 10·log10(max/min) for power values
	// Spectral shape descriptors
	Centroid  float64 // power-weighted mean frequency (Hz)
	Spread    float64 // power-weighted standard deviation around Centroid (Hz)
	Flatness  float64 // geometric over arithmetic mean, 0..1
	Bandwidth float64 // half-power width around the maximum (Hz)
	// Extremum is the frequency of the sample that deviates most from Mean,
	// a dip or a peak.
	Extremum float64
}

// powTodB converts a power ratio to decibels. Returns +Inf when den is zero.
func powTodB(num, den float64) float64 {
	if den <= 0 || num <= 0 {
		return math.Inf(1)
	}

	return 10 * math.Log10(num/den)
}

// Calculate computes all descriptors. An empty input yields the zero Stats.
func Calculate(freq, power []float64) (Stats, error) {
	if len(freq) != len(power) {
		return Stats{}, ErrLengthMismatch
	}

	n := len(power)
	if n == 0 {
		return Stats{}, nil
	}

	var s Stats
	s.Points = n

	maxIdx, minIdx := floats.MaxIdx(power), floats.MinIdx(power)
	s.Max, s.MaxFreq = power[maxIdx], freq[maxIdx]
	s.Min, s.MinFreq = power[minIdx], freq[minIdx]
	s.Range = s.Max - s.Min
	s.Range_dB = powTodB(s.Max, s.Min)

	sum := floats.Sum(power)
	s.Mean = sum / float64(n)

	s.Centroid = centroid(freq, power, sum)
	s.Spread = spread(freq, power, s.Centroid, sum)
	s.Flatness = flatness(power)
	s.Bandwidth = bandwidth(freq, power, maxIdx)
	s.Extremum = Extremum(freq, power)

	return s, nil
}

// Extremum returns the frequency of the sample with the largest absolute
// deviation from the mean power. It is a coarse estimate of a resonance
// position. Returns NaN for empty or mismatched input.
func Extremum(freq, power []float64) float64 {
	if len(power) == 0 || len(freq) != len(power) {
		return math.NaN()
	}

	mean := floats.Sum(power) / float64(len(power))

	best, dev := 0, -1.0
	for i, v := range power {
		if d := math.Abs(v - mean); d > dev {
			best, dev = i, d
		}
	}

	return freq[best]
}

func centroid(freq, power []float64, sum float64) float64 {
	if sum == 0 {
		return 0
	}

	return floats.Dot(freq, power) / sum
}

func spread(freq, power []float64, cent, sum float64) float64 {
	if sum == 0 {
		return 0
	}

	var acc float64
	for i, v := range power {
		d := freq[i] - cent
		acc += d * d * v
	}

	return math.Sqrt(acc / sum)
}

// flatness is zero when any sample is non-positive.
func flatness(power []float64) float64 {
	var sumLin, sumLog float64

	for _, v := range power {
		if v <= 0 {
			return 0
		}

		sumLin += v
		sumLog += math.Log(v)
	}

	n := float64(len(power))

	return math.Exp(sumLog/n) / (sumLin / n)
}

// bandwidth locates the half-power points on both sides of peak with linear
// interpolation between samples. Edges of the grid bound the result.
func bandwidth(freq, power []float64, peak int) float64 {
	n := len(power)
	if n < 2 || power[peak] <= 0 {
		return 0
	}

	threshold := power[peak] / 2

	lower := freq[0]
	for i := peak; i >= 1; i-- {
		if power[i-1] <= threshold && power[i] > threshold {
			lower = interpFreq(freq[i-1], freq[i], power[i-1], power[i], threshold)
			break
		}
	}

	upper := freq[n-1]
	for i := peak; i < n-1; i++ {
		if power[i+1] <= threshold && power[i] > threshold {
			upper = interpFreq(freq[i], freq[i+1], power[i], power[i+1], threshold)
			break
		}
	}

	return math.Max(upper-lower, 0)
}

func interpFreq(fLow, fHigh, pLow, pHigh, threshold float64) float64 {
	denom := pHigh - pLow
	if denom == 0 {
		return (fLow + fHigh) / 2
	}

	t := (threshold - pLow) / denom

	return fLow + t*(fHigh-fLow)
}
