package synth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-haloscope/model"
)

func TestLinspace(t *testing.T) {
	x := Linspace(1e9, 1.1e9, 500)
	require.Len(t, x, 500)
	assert.Equal(t, 1e9, x[0])
	assert.Equal(t, 1.1e9, x[499])
	assert.InDelta(t, 1e8/499, x[1]-x[0], 1e-3)

	assert.Nil(t, Linspace(0, 1, 0))
	assert.Equal(t, []float64{3}, Linspace(3, 4, 1))
}

func TestGaussianNoiseDeterministic(t *testing.T) {
	a := GaussianNoise(42, 1, 64)
	b := GaussianNoise(42, 1, 64)
	c := GaussianNoise(43, 1, 64)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestScenarioNoiseless(t *testing.T) {
	bkg := model.Background{A: 1.05e9, B: 2e4, C: 1.05e9, D: 2.2e4, E: 1e-2, F: 1e-12}
	s := Scenario{Start: 1.049e9, Stop: 1.051e9, Points: 11, Background: bkg, Sigma: 1e-6}.Spectrum()

	require.NoError(t, s.Validate())
	for i, x := range s.Freq {
		assert.InDelta(t, model.Bkg(x, bkg), s.Power[i], 1e-15)
		assert.Equal(t, 1e-6, s.Sigma[i])
	}
}

func TestScenarioSigmaDefaultsToNoise(t *testing.T) {
	s := Scenario{Start: 0, Stop: 1, Points: 4, Background: model.Background{D: 1, E: 1}, Noise: 0.5}.Spectrum()
	assert.Equal(t, Const(0.5, 4), s.Sigma)
}
