package tui

import (
	"context"
	"time"

	"github.com/Veraticus/bizmetrics/internal/analytics"
	"github.com/Veraticus/bizmetrics/internal/tui/themes"
)

// SummarySource computes the data shown by the dashboard. *analytics.Engine satisfies it.
type SummarySource interface {
	Summary(ctx context.Context, r analytics.Range, topN int) (*analytics.Summary, error)
}

// Config holds dashboard configuration.
type Config struct {
	Theme       themes.Theme
	Source      SummarySource
	Range       analytics.Range
	TopN        int
	Width       int
	Height      int
	LoadTimeout time.Duration
}

// Option is a functional option for configuring the dashboard.
type Option func(*Config)

func defaultConfig() Config {
	return Config{
		Theme:       themes.Default,
		TopN:        analytics.DefaultTopProducts,
		Width:       80,
		Height:      24,
		LoadTimeout: 30 * time.Second,
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithTopN sets how many products are ranked.
func WithTopN(n int) Option {
	return func(c *Config) {
		c.TopN = n
	}
}

// WithLoadTimeout bounds each summary computation.
func WithLoadTimeout(d time.Duration) Option {
	return func(c *Config) {
		c.LoadTimeout = d
	}
}
