package tui

import (
	"io"

	"github.com/Veraticus/dual-count/internal/ledger"
	"github.com/Veraticus/dual-count/internal/service"
	"github.com/Veraticus/dual-count/internal/tui/themes"
)

// Config holds TUI configuration.
type Config struct {
	Theme         themes.Theme
	Persister     service.Persister
	Input         io.Reader
	Output        io.Writer
	LeftCurrency  string
	RightCurrency string
	Width         int
	Height        int
	Variant       ledger.Variant
	AltScreen     bool
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Theme:         themes.Default,
		Variant:       ledger.VariantDual,
		LeftCurrency:  "CAD",
		RightCurrency: "RMB",
		Width:         80,
		Height:        24,
		AltScreen:     true,
	}
}

// WithPersister sets where each new state is saved. Without one the ledger
// lives only in memory.
func WithPersister(p service.Persister) Option {
	return func(c *Config) {
		c.Persister = p
	}
}

// WithVariant selects the dual-currency or counter layout.
func WithVariant(v ledger.Variant) Option {
	return func(c *Config) {
		c.Variant = v
	}
}

// WithCurrencies sets the column labels.
func WithCurrencies(left, right string) Option {
	return func(c *Config) {
		if left != "" {
			c.LeftCurrency = left
		}
		if right != "" {
			c.RightCurrency = right
		}
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

// WithAltScreen toggles the alternate screen buffer.
func WithAltScreen(enabled bool) Option {
	return func(c *Config) {
		c.AltScreen = enabled
	}
}

// WithIO replaces the terminal with in and out.
func WithIO(in io.Reader, out io.Writer) Option {
	return func(c *Config) {
		c.Input = in
		c.Output = out
	}
}
