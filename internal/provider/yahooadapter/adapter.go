package yahooadapter

import (
	"context"

	"quoteticker/internal/provider"
	"quoteticker/internal/provider/yahoo"
)

// Charter is the part of the Yahoo client the adapter needs.
type Charter interface {
	GetChart(ctx context.Context, symbol, rng, interval string, opts ...yahoo.YahooFinanceClientOption) (*yahoo.Chart, error)
}

type Config struct {
	Name string // display name, default: Yahoo Finance
	// Interval is the bar size requested for history, default: 1d.
	Interval string
}

type Adapter struct {
	cfg    Config
	client Charter
}

func New(cfg Config, client Charter) *Adapter {
	if cfg.Name == "" {
		cfg.Name = "Yahoo Finance"
	}
	if cfg.Interval == "" {
		cfg.Interval = "1d"
	}
	return &Adapter{cfg: cfg, client: client}
}

func (a *Adapter) Name() string { return a.cfg.Name }

// CurrentPrice reports the regular market price from the chart metadata.
func (a *Adapter) CurrentPrice(ctx context.Context, symbol string) (provider.Price, error) {
	chart, err := a.client.GetChart(ctx, symbol, string(provider.Period1Day), a.cfg.Interval)
	if err != nil {
		return provider.None(), err
	}
	return provider.FromPtr(chart.RegularMarketPrice), nil
}

// History returns one bar per reported timestamp, oldest first.
func (a *Adapter) History(ctx context.Context, symbol string, period provider.Period) ([]provider.Bar, error) {
	if period == "" {
		period = provider.Period1Day
	}
	chart, err := a.client.GetChart(ctx, symbol, string(period), a.cfg.Interval)
	if err != nil {
		return nil, err
	}
	bars := make([]provider.Bar, 0, len(chart.Timestamps))
	for i, ts := range chart.Timestamps {
		bar := provider.Bar{Time: ts}
		if i < len(chart.Closes) {
			bar.Close = provider.FromPtr(chart.Closes[i])
		}
		bars = append(bars, bar)
	}
	return bars, nil
}
