package spectrum

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-haloscope/internal/synth"
	"github.com/cwbudde/algo-haloscope/model"
)

const tolerance = 1e-9

func TestCalculateEmpty(t *testing.T) {
	s, err := Calculate(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, Stats{}, s)
}

func TestCalculateLengthMismatch(t *testing.T) {
	_, err := Calculate([]float64{1, 2}, []float64{1})
	assert.ErrorIs(t, err, ErrLengthMismatch)
}

func TestCalculateFlat(t *testing.T) {
	freq := synth.Linspace(0, 100, 101)
	s, err := Calculate(freq, synth.Const(2, 101))
	require.NoError(t, err)

	assert.Equal(t, 101, s.Points)
	assert.InDelta(t, 2, s.Mean, tolerance)
	assert.InDelta(t, 0, s.Range, tolerance)
	assert.InDelta(t, 0, s.Range_dB, tolerance)
	assert.InDelta(t, 50, s.Centroid, tolerance)
	assert.InDelta(t, 1, s.Flatness, tolerance)
	// Nothing drops below half power: the grid bounds the width.
	assert.InDelta(t, 100, s.Bandwidth, tolerance)
}

func TestCalculateTriangle(t *testing.T) {
	freq := []float64{0, 1, 2, 3, 4}
	power := []float64{0, 1, 2, 1, 0}

	s, err := Calculate(freq, power)
	require.NoError(t, err)

	assert.Equal(t, 2.0, s.Max)
	assert.Equal(t, 2.0, s.MaxFreq)
	assert.Equal(t, 0.0, s.Min)
	assert.InDelta(t, 2, s.Centroid, tolerance)
	assert.InDelta(t, math.Sqrt(0.5), s.Spread, tolerance)
	assert.Zero(t, s.Flatness)
	// Half power 1 is reached exactly at f=1 and f=3.
	assert.InDelta(t, 2, s.Bandwidth, tolerance)
	assert.True(t, math.IsInf(s.Range_dB, 1))
}

func TestCalculateNonUniformGrid(t *testing.T) {
	freq := []float64{0, 0.5, 3, 10}
	power := []float64{1, 1, 1, 1}

	s, err := Calculate(freq, power)
	require.NoError(t, err)
	assert.InDelta(t, 13.5/4, s.Centroid, tolerance)
}

func TestExtremumFindsResonanceDip(t *testing.T) {
	center := 1.05e9
	bkg := model.Background{A: center, B: 2e4, C: center, D: 2.2e4, E: 1e-2, F: 0}

	freq := synth.Linspace(center-2e5, center+2e5, 401)
	power := make([]float64, len(freq))
	bkg.Eval(power, freq)

	assert.InDelta(t, center, Extremum(freq, power), 1e3)

	s, err := Calculate(freq, power)
	require.NoError(t, err)
	assert.Equal(t, Extremum(freq, power), s.Extremum)
}

func TestExtremumInvalid(t *testing.T) {
	assert.True(t, math.IsNaN(Extremum(nil, nil)))
	assert.True(t, math.IsNaN(Extremum([]float64{1}, []float64{1, 2})))
}
