package render

import (
	"gonum.org/v1/plot/vg"
)

// Option configures a chart.
type Option func(*config)

type config struct {
	Width  vg.Length
	Height vg.Length
	Title  string
	Bins   int
}

// WithSize sets the image size.
func WithSize(width, height vg.Length) Option {
	return func(c *config) {
		c.Width = width
		c.Height = height
	}
}

// WithTitle overrides the default chart title.
func WithTitle(title string) Option {
	return func(c *config) { c.Title = title }
}

// WithBins sets the histogram bin count.
func WithBins(n int) Option {
	return func(c *config) { c.Bins = n }
}

func applyOptions(opts []Option, title string, width, height vg.Length) *config {
	cfg := &config{
		Width:  width,
		Height: height,
		Title:  title,
		Bins:   15,
	}
	for _, o := range opts {
		o(cfg)
	}
	if cfg.Bins <= 0 {
		cfg.Bins = 15
	}
	return cfg
}
