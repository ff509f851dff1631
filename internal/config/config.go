package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"

	"quoteticker/internal/provider"
	"quoteticker/internal/quote"
)

// Window describes the widget's geometry and style.
type Window struct {
	Title      string
	Width      int
	Height     int
	X          int
	Y          int
	Decorated  bool
	KeepAbove  bool
	FontFamily string
	FontSizePt int
	Bold       bool
	Foreground string
	Background string
}

// Provider configures the market-data source and the limiter in front of it.
type Provider struct {
	Name                  string
	BaseURL               string
	UserAgent             string
	RequestTimeoutSec     int
	HistoryPeriod         provider.Period
	MaxRequestsPerMinute  int
	MinRequestIntervalSec int
	Burst                 int
}

type Config struct {
	Instruments     []quote.Instrument
	RefreshInterval time.Duration
	Locale          language.Tag
	Window          Window
	Provider        Provider
	// Development switches logging to the human-readable console encoder.
	Development bool
}

// Default returns the compiled-in configuration. There is no file or
// environment override.
func Default() Config {
	return Config{
		Instruments: []quote.Instrument{
			{Symbol: "^N225", Label: "Nikkei", Format: quote.FormatWhole},
			{Symbol: "JPY=X", Label: "USD/JPY", Format: quote.FormatFixed2},
		},
		RefreshInterval: 60 * time.Second,
		Locale:          language.English,
		Window: Window{
			Title:      "Nikkei 225 & USD/JPY",
			Width:      144,
			Height:     80,
			X:          100,
			Y:          100,
			Decorated:  false,
			KeepAbove:  true,
			FontFamily: "Arial",
			FontSizePt: 14,
			Bold:       true,
			Foreground: "white",
			Background: "black",
		},
		Provider: Provider{
			Name:              "Yahoo Finance",
			BaseURL:           "https://query1.finance.yahoo.com",
			RequestTimeoutSec: 15,
			HistoryPeriod:     provider.Period1Day,
			// Each cycle makes at most four requests; the budget only
			// bites when "Update Now" is hammered.
			MaxRequestsPerMinute: 30,
			Burst:                8,
		},
	}
}

// Validate reports every problem with c at once.
func (c Config) Validate() error {
	var errs []error
	if len(c.Instruments) != 2 {
		errs = append(errs, fmt.Errorf("instruments: want exactly 2, got %d", len(c.Instruments)))
	}
	for i, inst := range c.Instruments {
		if strings.TrimSpace(inst.Symbol) == "" {
			errs = append(errs, fmt.Errorf("instruments[%d]: empty symbol", i))
		}
	}
	if c.RefreshInterval <= 0 {
		errs = append(errs, fmt.Errorf("refresh interval must be positive, got %s", c.RefreshInterval))
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window: size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}
	if c.Window.FontSizePt <= 0 {
		errs = append(errs, fmt.Errorf("window: font size must be positive, got %d", c.Window.FontSizePt))
	}
	if strings.TrimSpace(c.Provider.BaseURL) == "" {
		errs = append(errs, errors.New("provider: empty base url"))
	}
	if !c.Provider.HistoryPeriod.Valid() {
		errs = append(errs, fmt.Errorf("provider: unsupported history period %q", c.Provider.HistoryPeriod))
	}
	if c.Provider.RequestTimeoutSec < 0 {
		errs = append(errs, fmt.Errorf("provider: negative request timeout %d", c.Provider.RequestTimeoutSec))
	}
	return errors.Join(errs...)
}

// RequestTimeout is the overall per-request timeout of the HTTP client.
func (p Provider) RequestTimeout() time.Duration {
	return time.Duration(p.RequestTimeoutSec) * time.Second
}
