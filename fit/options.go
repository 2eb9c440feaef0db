package fit

import (
	"github.com/rs/zerolog"

	"github.com/cwbudde/algo-haloscope/model"
)

const (
	defaultMaxIter      = 200
	defaultObjectiveTol = 1e-16
	defaultTau          = 1e-3
	defaultEps          = 1e-8
)

// Config holds solver settings and signal-fit switches.
type Config struct {
	// Solver settings passed to the Levenberg-Marquardt implementation.
	MaxIter      int
	ObjectiveTol float64
	Tau          float64
	Eps1         float64
	Eps2         float64

	// Signal fit switches.
	MuInit     float64
	MuVary     bool
	ParVary    bool
	CenterVary bool
	Width      float64

	// ScaleCovar scales the covariance by the reduced chi-square.
	ScaleCovar bool

	Logger zerolog.Logger
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns the defaults: amplitude starts at 1 and is free,
// background and center are fixed, width is 16 bins.
func DefaultConfig() Config {
	return Config{
		MaxIter:      defaultMaxIter,
		ObjectiveTol: defaultObjectiveTol,
		Tau:          defaultTau,
		Eps1:         defaultEps,
		Eps2:         defaultEps,
		MuInit:       1,
		MuVary:       true,
		Width:        model.DefaultWidth,
		ScaleCovar:   true,
		Logger:       zerolog.Nop(),
	}
}

// WithMaxIter sets the solver iteration limit.
func WithMaxIter(n int) Option {
	return func(cfg *Config) {
		if n > 0 {
			cfg.MaxIter = n
		}
	}
}

// WithTolerances sets the solver stopping tolerances.
func WithTolerances(objective, gradient, step float64) Option {
	return func(cfg *Config) {
		if objective > 0 {
			cfg.ObjectiveTol = objective
		}

		if gradient > 0 {
			cfg.Eps1 = gradient
		}

		if step > 0 {
			cfg.Eps2 = step
		}
	}
}

// WithDamping sets the initial Levenberg-Marquardt damping, relative to the
// largest diagonal element of JᵀJ. Small values start close to Gauss-Newton
// and can overshoot along flat directions of the background model.
func WithDamping(tau float64) Option {
	return func(cfg *Config) {
		if tau > 0 {
			cfg.Tau = tau
		}
	}
}

// WithMuInit sets the starting signal amplitude.
func WithMuInit(mu float64) Option {
	return func(cfg *Config) { cfg.MuInit = mu }
}

// WithMuVary frees or fixes the signal amplitude.
func WithMuVary(vary bool) Option {
	return func(cfg *Config) { cfg.MuVary = vary }
}

// WithParVary frees or fixes the background parameters in the signal fit.
func WithParVary(vary bool) Option {
	return func(cfg *Config) { cfg.ParVary = vary }
}

// WithCenterVary frees or fixes the signal center in the signal fit.
func WithCenterVary(vary bool) Option {
	return func(cfg *Config) { cfg.CenterVary = vary }
}

// WithWidth sets the fixed signal width in Hz.
func WithWidth(width float64) Option {
	return func(cfg *Config) {
		if width > 0 {
			cfg.Width = width
		}
	}
}

// WithScaleCovar enables or disables scaling the covariance by the reduced
// chi-square. Disable it when sigma holds absolute uncertainties.
func WithScaleCovar(scale bool) Option {
	return func(cfg *Config) { cfg.ScaleCovar = scale }
}

// WithLogger sets the logger used for fit progress at debug level.
func WithLogger(l zerolog.Logger) Option {
	return func(cfg *Config) { cfg.Logger = l }
}

// ApplyOptions applies zero or more options to the default config.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}
