package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/cwbudde/algo-haloscope/model"
)

const envPrefix = "HALOSCOPE"

// config holds the demo scenario and run settings.
type config struct {
	Environment string

	// Scenario.
	Center float64
	Ref    float64
	Span   float64
	Points int
	Noise  float64
	Seed   uint64

	// Injected peak, in units of BinWidth from the center. InjectMu 0
	// injects nothing.
	Shape    model.Shape
	X0Bins   float64
	InjectMu float64

	// EstimateCenter seeds the fits from the strongest spectral feature
	// instead of Center.
	EstimateCenter bool

	// Signal fit.
	MuInit     float64
	MuVary     bool
	ParVary    bool
	CenterVary bool
	MaxIter    int

	OutDir   string
	Format   string
	LogLevel string
}

// loadConfig reads defaults, an optional .env.<environment> file from the
// working directory or an explicit config file, and HALOSCOPE_* environment
// overrides, in increasing priority.
func loadConfig(path string) (config, error) {
	v := viper.New()

	v.SetDefault("environment", "dev")
	v.SetDefault("center", 1.05e9)
	v.SetDefault("ref", 1.0)
	v.SetDefault("span", 1e8)
	v.SetDefault("points", 500)
	v.SetDefault("noise", 1e-3)
	v.SetDefault("seed", 1)
	v.SetDefault("shape", "gaussian")
	v.SetDefault("estimate_center", false)
	v.SetDefault("x0_bins", 0)
	v.SetDefault("inject_mu", 0)
	v.SetDefault("mu_init", 1.0)
	v.SetDefault("mu_vary", true)
	v.SetDefault("par_vary", false)
	v.SetDefault("center_vary", false)
	v.SetDefault("max_iter", 200)
	v.SetDefault("out_dir", "out")
	v.SetDefault("format", "png")
	v.SetDefault("log_level", "info")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)

		if err := v.ReadInConfig(); err != nil {
			return config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName(".env." + v.GetString("environment"))
		v.SetConfigType("env")
		v.AddConfigPath(".")

		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return config{}, fmt.Errorf("read .env file: %w", err)
			}
		}
	}

	shape, err := model.ParseShape(v.GetString("shape"))
	if err != nil {
		return config{}, err
	}

	cfg := config{
		Environment:    v.GetString("environment"),
		Center:         v.GetFloat64("center"),
		Ref:            v.GetFloat64("ref"),
		Span:           v.GetFloat64("span"),
		Points:         v.GetInt("points"),
		Noise:          v.GetFloat64("noise"),
		Seed:           v.GetUint64("seed"),
		Shape:          shape,
		X0Bins:         v.GetFloat64("x0_bins"),
		EstimateCenter: v.GetBool("estimate_center"),
		InjectMu:       v.GetFloat64("inject_mu"),
		MuInit:         v.GetFloat64("mu_init"),
		MuVary:         v.GetBool("mu_vary"),
		ParVary:        v.GetBool("par_vary"),
		CenterVary:     v.GetBool("center_vary"),
		MaxIter:        v.GetInt("max_iter"),
		OutDir:         v.GetString("out_dir"),
		Format:         strings.ToLower(v.GetString("format")),
		LogLevel:       v.GetString("log_level"),
	}

	return cfg, cfg.validate()
}

func (c config) validate() error {
	switch {
	case c.Points < 2:
		return fmt.Errorf("points must be at least 2, got %d", c.Points)
	case c.Span <= 0:
		return fmt.Errorf("span must be positive, got %g", c.Span)
	case c.Noise <= 0:
		return fmt.Errorf("noise must be positive, got %g", c.Noise)
	case c.Ref <= 0:
		return fmt.Errorf("ref must be positive, got %g", c.Ref)
	case c.Center <= 0:
		return fmt.Errorf("center must be positive, got %g", c.Center)
	}

	return nil
}
