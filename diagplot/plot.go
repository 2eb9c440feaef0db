package diagplot

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/cwbudde/algo-haloscope/fit"
	"github.com/cwbudde/algo-haloscope/model"
	"github.com/cwbudde/algo-haloscope/stats/residual"
)

// ErrNoResult is returned when PlotFit is called without a fit result.
var ErrNoResult = errors.New("diagplot: no fit result")

var (
	dataColor = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	fitColor  = color.RGBA{R: 214, G: 39, B: 40, A: 255}
	histColor = color.NRGBA{R: 31, G: 119, B: 180, A: 110}
	bandColor = color.RGBA{R: 128, G: 128, B: 128, A: 255}
)

// errorPoints pairs points with symmetric vertical error bars.
type errorPoints struct {
	plotter.XYs
	plotter.YErrors
}

// Report bundles a fit result with its diagnostic figures.
type Report struct {
	Result *fit.Result
	// Overview stacks the data with the best fit, the residuals with error
	// bars, and the normalized residual histogram.
	Overview *Figure
	// Band shows the residuals in data units inside the ±sigma envelope.
	Band *Figure
}

// Close releases both figures.
func (r *Report) Close() error {
	return errors.Join(r.Overview.Close(), r.Band.Close())
}

// PlotFit builds the diagnostic figures for r fitted to s. Neither s nor r
// is modified.
func PlotFit(s model.Spectrum, r *fit.Result, opts ...Option) (*Report, error) {
	if r == nil {
		return nil, ErrNoResult
	}

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("diagplot: %w", err)
	}

	if len(r.Best) != s.Len() || len(r.Residual) != s.Len() {
		return nil, fmt.Errorf("diagplot: result does not match spectrum: %w", model.ErrLengthMismatch)
	}

	cfg := ApplyOptions(opts...)

	title := cfg.Title
	if title == "" {
		title = r.Model
	}

	dataPlot, err := fitPanel(s, r, title, cfg)
	if err != nil {
		return nil, err
	}

	resPlot, err := residualPanel(s, r, cfg)
	if err != nil {
		return nil, err
	}

	histPlot, err := histogramPanel(r.Residual, cfg)
	if err != nil {
		return nil, err
	}

	bandPlot, err := bandPanel(s, r, title, cfg)
	if err != nil {
		return nil, err
	}

	return &Report{
		Result:   r,
		Overview: newFigure(cfg.Width, cfg.PanelHeight, dataPlot, resPlot, histPlot),
		Band:     newFigure(cfg.Width, cfg.PanelHeight, bandPlot),
	}, nil
}

func xys(x, y []float64) plotter.XYs {
	pts := make(plotter.XYs, len(x))
	for i := range pts {
		pts[i].X = x[i]
		pts[i].Y = y[i]
	}

	return pts
}

func yErrors(sigma []float64) plotter.YErrors {
	errs := make(plotter.YErrors, len(sigma))
	for i, v := range sigma {
		errs[i].Low = v
		errs[i].High = v
	}

	return errs
}

func addErrorScatter(p *plot.Plot, pts errorPoints, c color.Color, label string) error {
	sc, err := plotter.NewScatter(pts)
	if err != nil {
		return fmt.Errorf("diagplot: scatter: %w", err)
	}

	sc.GlyphStyle.Color = c
	sc.GlyphStyle.Radius = vg.Points(1.5)
	sc.GlyphStyle.Shape = draw.CircleGlyph{}

	eb, err := plotter.NewYErrorBars(pts)
	if err != nil {
		return fmt.Errorf("diagplot: error bars: %w", err)
	}

	eb.LineStyle.Color = c
	eb.CapWidth = vg.Points(2)

	p.Add(eb, sc)

	if label != "" {
		p.Legend.Add(label, sc)
	}

	return nil
}

func fitPanel(s model.Spectrum, r *fit.Result, title string, cfg Config) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = cfg.XLabel
	p.Y.Label.Text = "Power"
	p.Legend.Top = true

	pts := errorPoints{XYs: xys(s.Freq, s.Power), YErrors: yErrors(s.Sigma)}
	if err := addErrorScatter(p, pts, dataColor, "data"); err != nil {
		return nil, err
	}

	line, err := plotter.NewLine(xys(s.Freq, r.Best))
	if err != nil {
		return nil, fmt.Errorf("diagplot: best fit: %w", err)
	}

	line.LineStyle.Color = fitColor
	line.LineStyle.Width = vg.Points(1.5)

	p.Add(line)
	p.Legend.Add("best fit", line)

	return p, nil
}

// residualPanel plots model − data with the data uncertainties as error
// bars around a zero line.
func residualPanel(s model.Spectrum, r *fit.Result, cfg Config) (*plot.Plot, error) {
	p := plot.New()
	p.X.Label.Text = cfg.XLabel
	p.Y.Label.Text = "model − data"

	diff := make([]float64, s.Len())
	for i := range diff {
		diff[i] = r.Best[i] - s.Power[i]
	}

	pts := errorPoints{XYs: xys(s.Freq, diff), YErrors: yErrors(s.Sigma)}
	if err := addErrorScatter(p, pts, dataColor, ""); err != nil {
		return nil, err
	}

	zero := plotter.NewFunction(func(float64) float64 { return 0 })
	zero.LineStyle.Color = fitColor
	p.Add(zero)

	return p, nil
}

// histogramPanel shows the density histogram of the normalized residuals
// over [−R, R], R = ceil(max(residual)), with the fitted normal density and
// its mean.
func histogramPanel(res []float64, cfg Config) (*plot.Plot, error) {
	lo, hi, err := residual.SymmetricRange(res)
	if err != nil {
		return nil, fmt.Errorf("diagplot: %w", err)
	}

	bins, err := residual.Histogram(res, lo, hi, cfg.Bins, true)
	if err != nil {
		return nil, fmt.Errorf("diagplot: %w", err)
	}

	norm, err := residual.NormalFit(res)
	if err != nil {
		return nil, fmt.Errorf("diagplot: %w", err)
	}

	p := plot.New()
	p.X.Label.Text = "normalized residual"
	p.Y.Label.Text = "density"
	p.Legend.Top = true

	hist := &plotter.Histogram{
		Bins:      make([]plotter.HistogramBin, len(bins)),
		Width:     bins[0].Hi - bins[0].Lo,
		FillColor: histColor,
	}
	hist.LineStyle = plotter.DefaultLineStyle

	peak := 0.0

	for i, b := range bins {
		w := b.Value
		if math.IsNaN(w) {
			w = 0
		}

		hist.Bins[i] = plotter.HistogramBin{Min: b.Lo, Max: b.Hi, Weight: w}
		peak = math.Max(peak, w)
	}

	p.Add(hist)

	if norm.Sigma > 0 {
		pdf := plotter.NewFunction(norm.Prob)
		pdf.XMin, pdf.XMax = bins[0].Lo, bins[len(bins)-1].Hi
		pdf.Samples = 200
		pdf.LineStyle.Color = fitColor
		pdf.LineStyle.Width = vg.Points(1.5)
		p.Add(pdf)

		peak = math.Max(peak, norm.Prob(norm.Mu))
	}

	meanLine, err := plotter.NewLine(plotter.XYs{{X: norm.Mu, Y: 0}, {X: norm.Mu, Y: math.Max(peak, 1e-3)}})
	if err != nil {
		return nil, fmt.Errorf("diagplot: mean line: %w", err)
	}

	meanLine.LineStyle.Color = color.Black
	meanLine.LineStyle.Dashes = []vg.Length{vg.Points(5), vg.Points(3)}

	p.Add(meanLine)
	p.Legend.Add(fmt.Sprintf("μ = %.3g, σ = %.3g", norm.Mu, norm.Sigma), meanLine)

	return p, nil
}

// bandPanel plots the residuals in data units with the ±sigma envelope.
func bandPanel(s model.Spectrum, r *fit.Result, title string, cfg Config) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title + " residual band"
	p.X.Label.Text = cfg.XLabel
	p.Y.Label.Text = "data − model"
	p.Legend.Top = true

	n := s.Len()
	scaled := make([]float64, n)
	upper := make([]float64, n)
	lower := make([]float64, n)

	for i := range scaled {
		scaled[i] = r.Residual[i] * s.Sigma[i]
		upper[i] = s.Sigma[i]
		lower[i] = -s.Sigma[i]
	}

	sc, err := plotter.NewScatter(xys(s.Freq, scaled))
	if err != nil {
		return nil, fmt.Errorf("diagplot: scatter: %w", err)
	}

	sc.GlyphStyle.Color = dataColor
	sc.GlyphStyle.Radius = vg.Points(1.5)
	sc.GlyphStyle.Shape = draw.CircleGlyph{}

	up, err := plotter.NewLine(xys(s.Freq, upper))
	if err != nil {
		return nil, fmt.Errorf("diagplot: envelope: %w", err)
	}

	down, err := plotter.NewLine(xys(s.Freq, lower))
	if err != nil {
		return nil, fmt.Errorf("diagplot: envelope: %w", err)
	}

	for _, l := range []*plotter.Line{up, down} {
		l.LineStyle.Color = bandColor
		l.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
	}

	p.Add(sc, up, down)
	p.Legend.Add("residual", sc)
	p.Legend.Add("±σ", up)

	return p, nil
}
