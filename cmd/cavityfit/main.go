// Command cavityfit fits a synthetic cavity power spectrum and writes
// diagnostic figures.
//
// Usage:
//
//	cavityfit [flags]
//
// The scenario is a swept-frequency measurement around a cavity resonance
// with additive Gaussian noise and an optional injected Gaussian or
// Maxwell-Boltzmann peak. The background is fitted first; its parameters
// seed the signal fit. Reports are logged, and two figures per fit are
// written to <out>/<run-id>/.
//
// Settings come from defaults, a .env.<environment> file in the working
// directory (or -config), and HALOSCOPE_* environment variables.
//
// Examples:
//
//	cavityfit
//	cavityfit -out /tmp/fits -v
//	HALOSCOPE_INJECT_MU=2e-3 HALOSCOPE_X0_BINS=40 cavityfit
//	HALOSCOPE_SHAPE=maxwell HALOSCOPE_FORMAT=svg cavityfit -config run.yaml
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/mdobak/go-xerrors"
	"github.com/rs/zerolog"

	"github.com/cwbudde/algo-haloscope/diagplot"
	"github.com/cwbudde/algo-haloscope/fit"
	"github.com/cwbudde/algo-haloscope/internal/synth"
	"github.com/cwbudde/algo-haloscope/model"
	"github.com/cwbudde/algo-haloscope/stats/residual"
	"github.com/cwbudde/algo-haloscope/stats/spectrum"
)

func main() {
	configPath := flag.String("config", "", "config file (yaml, json, toml or env)")
	outDir := flag.String("out", "", "output directory (overrides out_dir)")
	verbose := flag.Bool("v", false, "debug logging (overrides log_level)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: cavityfit [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Fits background and signal models to a synthetic cavity spectrum.\n")
		fmt.Fprintf(os.Stderr, "Scenario settings are read from %s_* environment variables.\n\n", envPrefix)
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		logger.Error().Err(xerrors.New(err)).Msg("invalid configuration")
		os.Exit(2)
	}

	if *outDir != "" {
		cfg.OutDir = *outDir
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}

	if *verbose {
		level = zerolog.DebugLevel
	}

	logger = logger.Level(level)

	if err := run(cfg, logger); err != nil {
		logger.Error().Err(xerrors.New(err)).Msg("run failed")
		os.Exit(1)
	}
}

// scenario builds the simulated measurement. The true background equals
// the fit seeds for cfg.Center and cfg.Ref.
func scenario(cfg config) synth.Scenario {
	seeds := fit.BackgroundParams(cfg.Center, cfg.Ref).Background()

	sc := synth.Scenario{
		Start:      cfg.Center - cfg.Span/2,
		Stop:       cfg.Center + cfg.Span/2,
		Points:     cfg.Points,
		Background: seeds,
		Noise:      cfg.Noise,
		Seed:       cfg.Seed,
	}

	if cfg.InjectMu > 0 {
		sc.Shape = cfg.Shape
		sc.Peak = model.Peak{
			X0: cfg.Center + cfg.X0Bins*model.BinWidth,
			S:  model.DefaultWidth,
			Mu: cfg.InjectMu,
		}
	}

	return sc
}

func run(cfg config, log zerolog.Logger) error {
	runID := uuid.NewString()
	log = log.With().Str("run", runID[:8]).Logger()

	spec := scenario(cfg).Spectrum()

	overview, err := spectrum.Calculate(spec.Freq, spec.Power)
	if err != nil {
		return err
	}

	log.Info().
		Int("points", overview.Points).
		Float64("mean", overview.Mean).
		Float64("min", overview.Min).
		Float64("max", overview.Max).
		Float64("centroid_hz", overview.Centroid).
		Float64("extremum_hz", overview.Extremum).
		Msg("spectrum")

	center := cfg.Center
	if cfg.EstimateCenter {
		center = overview.Extremum
		log.Info().Float64("center_hz", center).Msg("center estimated from data")
	}

	opts := []fit.Option{fit.WithLogger(log), fit.WithMaxIter(cfg.MaxIter)}

	bkg, err := fit.FitBackground(spec, center, cfg.Ref, opts...)
	if err != nil {
		return fmt.Errorf("background fit: %w", err)
	}

	logResult(log, bkg)

	x0 := center + cfg.X0Bins*model.BinWidth

	sig, err := fit.FitSignal(spec, x0, bkg.Background(), cfg.Shape, append(opts,
		fit.WithMuInit(cfg.MuInit),
		fit.WithMuVary(cfg.MuVary),
		fit.WithParVary(cfg.ParVary),
		fit.WithCenterVary(cfg.CenterVary),
	)...)
	if err != nil {
		return fmt.Errorf("signal fit: %w", err)
	}

	logResult(log, sig)

	dir := filepath.Join(cfg.OutDir, runID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	for _, r := range []*fit.Result{bkg, sig} {
		if err := writeFigures(spec, r, dir, cfg.Format); err != nil {
			return err
		}
	}

	log.Info().Str("dir", dir).Msg("figures written")

	return nil
}

func logResult(log zerolog.Logger, r *fit.Result) {
	summary := residual.Summary(r.Residual)

	lag1 := math.NaN()
	if acf, err := residual.Autocorrelation(r.Residual, 1); err == nil && len(acf) > 1 {
		lag1 = acf[1]
	} else if err != nil {
		log.Debug().Err(err).Msg("residual autocorrelation unavailable")
	}

	ev := log.Info()
	if !r.Success {
		ev = log.Warn()
	}

	ev.Str("model", r.Model).
		Bool("success", r.Success).
		Int("nfev", r.NFev).
		Float64("redchi", r.RedChi).
		Float64("res_mean", summary.Mean).
		Float64("res_std", summary.Std).
		Float64("durbin_watson", residual.DurbinWatson(r.Residual)).
		Float64("acf_lag1", lag1).
		Msg(r.Message)

	log.Debug().Msg("\n" + r.Report())
}

func writeFigures(s model.Spectrum, r *fit.Result, dir, format string) error {
	rep, err := diagplot.PlotFit(s, r)
	if err != nil {
		return fmt.Errorf("plot %s: %w", r.Model, err)
	}
	defer rep.Close()

	figures := map[string]*diagplot.Figure{
		"overview": rep.Overview,
		"band":     rep.Band,
	}

	for name, f := range figures {
		path := filepath.Join(dir, fmt.Sprintf("%s_%s.%s", r.Model, name, format))
		if err := f.Save(path); err != nil {
			return err
		}
	}

	return nil
}
