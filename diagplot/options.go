package diagplot

import "gonum.org/v1/plot/vg"

// Config holds rendering options for PlotFit.
type Config struct {
	// Width is the width of both figures.
	Width vg.Length
	// PanelHeight is the height of a single panel. The overview stacks
	// three panels, the band figure has one.
	PanelHeight vg.Length
	// Title is shown above the first panel. Empty means the model name.
	Title  string
	XLabel string
	// Bins is the number of residual histogram bins.
	Bins int
}

// Option configures PlotFit.
type Option func(*Config)

// DefaultConfig returns the default rendering options.
func DefaultConfig() Config {
	return Config{
		Width:       7 * vg.Inch,
		PanelHeight: 3 * vg.Inch,
		XLabel:      "Frequency (Hz)",
		Bins:        15,
	}
}

// WithSize sets the figure width and the height of one panel.
func WithSize(width, panelHeight vg.Length) Option {
	return func(c *Config) {
		if width > 0 {
			c.Width = width
		}

		if panelHeight > 0 {
			c.PanelHeight = panelHeight
		}
	}
}

// WithTitle sets the title of the first panel.
func WithTitle(title string) Option {
	return func(c *Config) { c.Title = title }
}

// WithXLabel sets the frequency axis label.
func WithXLabel(label string) Option {
	return func(c *Config) { c.XLabel = label }
}

// WithBins sets the residual histogram bin count. Non-positive values are
// ignored.
func WithBins(n int) Option {
	return func(c *Config) {
		if n > 0 {
			c.Bins = n
		}
	}
}

// ApplyOptions returns DefaultConfig with opts applied in order.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}
