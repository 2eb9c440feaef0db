package diagplot

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/vg"

	"github.com/cwbudde/algo-haloscope/fit"
	"github.com/cwbudde/algo-haloscope/internal/synth"
	"github.com/cwbudde/algo-haloscope/model"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func fixture(t *testing.T) (model.Spectrum, *fit.Result) {
	t.Helper()

	bkg := model.Background{A: 1.05e9, B: 2e4, C: 1.05e9, D: 2.2e4, E: 1e-2, F: 1e-12}
	spec := synth.Scenario{
		Start:      1.0498e9,
		Stop:       1.0502e9,
		Points:     201,
		Background: bkg,
		Noise:      2e-6,
		Seed:       11,
	}.Spectrum()

	res, err := fit.FitSignal(spec, 1.05e9, bkg, model.ShapeGaussian, fit.WithMuVary(false), fit.WithMuInit(0))
	require.NoError(t, err)

	return spec, res
}

func TestPlotFit(t *testing.T) {
	spec, res := fixture(t)

	rep, err := PlotFit(spec, res)
	require.NoError(t, err)
	defer rep.Close()

	assert.Same(t, res, rep.Result)
	assert.Equal(t, 3, rep.Overview.Panels())
	assert.Equal(t, 1, rep.Band.Panels())

	w, h := rep.Overview.Size()
	assert.Equal(t, 7*vg.Inch, w)
	assert.Equal(t, 9*vg.Inch, h)

	for _, f := range []*Figure{rep.Overview, rep.Band} {
		var buf bytes.Buffer
		n, err := f.WriteTo(&buf)
		require.NoError(t, err)
		assert.Equal(t, int64(buf.Len()), n)
		assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))
	}
}

func TestPlotFitDoesNotMutateInputs(t *testing.T) {
	spec, res := fixture(t)

	resid := append([]float64(nil), res.Residual...)
	best := append([]float64(nil), res.Best...)
	power := append([]float64(nil), spec.Power...)

	rep, err := PlotFit(spec, res, WithBins(9))
	require.NoError(t, err)

	_, err = rep.Overview.WriteTo(&bytes.Buffer{})
	require.NoError(t, err)

	assert.Equal(t, resid, res.Residual)
	assert.Equal(t, best, res.Best)
	assert.Equal(t, power, spec.Power)
}

func TestFigureSave(t *testing.T) {
	spec, res := fixture(t)

	rep, err := PlotFit(spec, res, WithSize(4*vg.Inch, 2*vg.Inch), WithTitle("demo"))
	require.NoError(t, err)

	dir := t.TempDir()

	for _, name := range []string{"overview.png", "overview.SVG", "overview.pdf"} {
		path := filepath.Join(dir, name)
		require.NoError(t, rep.Overview.Save(path))

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	}

	png, err := os.ReadFile(filepath.Join(dir, "overview.png"))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, pngMagic))

	assert.Error(t, rep.Band.Save(filepath.Join(dir, "band.unknown")))
}

func TestFigureClose(t *testing.T) {
	spec, res := fixture(t)

	rep, err := PlotFit(spec, res)
	require.NoError(t, err)

	require.NoError(t, rep.Close())
	require.NoError(t, rep.Close())

	_, err = rep.Overview.WriteTo(&bytes.Buffer{})
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, rep.Band.Save(filepath.Join(t.TempDir(), "band.png")), ErrClosed)
}

func TestPlotFitErrors(t *testing.T) {
	spec, res := fixture(t)

	_, err := PlotFit(spec, nil)
	assert.ErrorIs(t, err, ErrNoResult)

	short := spec
	short.Freq, short.Power, short.Sigma = spec.Freq[:10], spec.Power[:10], spec.Sigma[:10]
	_, err = PlotFit(short, res)
	assert.ErrorIs(t, err, model.ErrLengthMismatch)

	_, err = PlotFit(model.Spectrum{}, res)
	assert.ErrorIs(t, err, model.ErrEmpty)
}

func TestApplyOptions(t *testing.T) {
	cfg := ApplyOptions(WithBins(0), WithSize(-1, 0), WithXLabel("f"))

	def := DefaultConfig()
	assert.Equal(t, def.Bins, cfg.Bins)
	assert.Equal(t, def.Width, cfg.Width)
	assert.Equal(t, def.PanelHeight, cfg.PanelHeight)
	assert.Equal(t, "f", cfg.XLabel)
}

func TestHistogramFillIsTranslucentBlue(t *testing.T) {
	r, g, b, a := histColor.RGBA()

	// Premultiplied channels never exceed alpha.
	assert.LessOrEqual(t, r, a)
	assert.LessOrEqual(t, g, a)
	assert.LessOrEqual(t, b, a)
	assert.Less(t, a, uint32(0xffff))
	assert.Greater(t, b, r)
	assert.Greater(t, b, g)
}
