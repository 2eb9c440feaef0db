package residual

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-haloscope/internal/synth"
)

func counts(bins []Bin) []int {
	out := make([]int, len(bins))
	for i, b := range bins {
		out[i] = b.Count
	}

	return out
}

func TestHistogramCounts(t *testing.T) {
	res := []float64{-2, -1.5, -1, 0, 0.5, 1, 2, 2.5, math.NaN()}

	bins, err := Histogram(res, -2, 2, 4, false)
	require.NoError(t, err)

	// [−2,−1) [−1,0) [0,1) [1,2]; 2.5 and NaN dropped, 2 lands in the last bin.
	assert.Equal(t, []int{2, 1, 2, 2}, counts(bins))
	assert.Equal(t, -2.0, bins[0].Lo)
	assert.Equal(t, 2.0, bins[3].Hi)
	assert.Equal(t, 2.0, bins[0].Value)
}

func TestHistogramDensityIntegratesToOne(t *testing.T) {
	res := synth.GaussianNoise(9, 1, 5000)
	lo, hi, err := SymmetricRange(res)
	require.NoError(t, err)

	bins, err := Histogram(res, lo, hi, 15, true)
	require.NoError(t, err)
	require.Len(t, bins, 15)

	var area float64
	for _, b := range bins {
		area += b.Value * (b.Hi - b.Lo)
	}

	assert.InDelta(t, 1, area, 1e-12)
}

func TestHistogramDoesNotMutateInput(t *testing.T) {
	res := []float64{3, -1, 2, 0.5}
	orig := append([]float64(nil), res...)

	_, err := Histogram(res, -3, 3, 15, true)
	require.NoError(t, err)
	assert.Equal(t, orig, res)
}

func TestHistogramDegenerateRange(t *testing.T) {
	bins, err := Histogram([]float64{1, 1, 1}, 1, 1, 2, false)
	require.NoError(t, err)

	assert.Equal(t, 0.5, bins[0].Lo)
	assert.Equal(t, 1.5, bins[1].Hi)
	// 1 sits on the shared edge and belongs to the upper bin.
	assert.Equal(t, []int{0, 3}, counts(bins))
}

func TestHistogramEmptyDensity(t *testing.T) {
	bins, err := Histogram([]float64{10}, -1, 1, 2, true)
	require.NoError(t, err)

	for _, b := range bins {
		assert.Zero(t, b.Count)
		assert.True(t, math.IsNaN(b.Value))
	}
}

func TestHistogramErrors(t *testing.T) {
	_, err := Histogram(nil, 0, 1, 0, false)
	assert.ErrorIs(t, err, ErrInvalidBins)

	_, err = Histogram(nil, 1, -1, 15, false)
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = Histogram(nil, math.Inf(-1), 1, 15, false)
	assert.ErrorIs(t, err, ErrInvalidRange)
}
