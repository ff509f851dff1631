package quote

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"

	"quoteticker/internal/provider"
)

// Fetcher resolves the display quote of every instrument from a provider.
//
//go:generate mockgen -package=quote_test -destination=mock_provider_test.go quoteticker/internal/provider Provider
type Fetcher struct {
	p           provider.Provider
	instruments []Instrument
	formatter   *Formatter
	period      provider.Period
	log         *zap.Logger
	now         func() time.Time
}

type FetcherOption func(*Fetcher)

// WithLocale sets the locale used for grouping and decimal separators.
func WithLocale(tag language.Tag) FetcherOption {
	return func(f *Fetcher) { f.formatter = NewFormatter(tag) }
}

// WithHistoryPeriod sets the lookback used when no current price is reported.
func WithHistoryPeriod(p provider.Period) FetcherOption {
	return func(f *Fetcher) { f.period = p }
}

func WithLogger(l *zap.Logger) FetcherOption {
	return func(f *Fetcher) { f.log = l }
}

func WithClock(now func() time.Time) FetcherOption {
	return func(f *Fetcher) { f.now = now }
}

func NewFetcher(p provider.Provider, instruments []Instrument, opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		p:           p,
		instruments: instruments,
		formatter:   NewFormatter(language.English),
		period:      provider.Period1Day,
		log:         zap.NewNop(),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *Fetcher) Instruments() []Instrument { return f.instruments }

// Fetch returns one quote per instrument, in instrument order. Instruments are
// resolved concurrently. If the provider fails for any of them, every quote of
// the cycle is Failed and the error is logged; Fetch itself never fails.
func (f *Fetcher) Fetch(ctx context.Context, cycle string) []Quote {
	start := time.Now()
	out := make([]Quote, len(f.instruments))

	g, gctx := errgroup.WithContext(ctx)
	for i, inst := range f.instruments {
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("%s: provider panic: %v", inst.Symbol, r)
				}
			}()
			q, err := f.resolve(gctx, inst)
			if err != nil {
				return fmt.Errorf("%s: %w", inst.Symbol, err)
			}
			out[i] = q
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		f.log.Error("fetching quotes",
			zap.String("cycle", cycle),
			zap.String("provider", f.p.Name()),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		at := f.now()
		for i, inst := range f.instruments {
			out[i] = Failure(inst, at)
		}
		return out
	}

	f.log.Debug("fetched quotes",
		zap.String("cycle", cycle),
		zap.Duration("elapsed", time.Since(start)),
		zap.Any("quotes", out))
	return out
}

// resolve prefers the current price, falls back to the latest close of the
// history period and finally reports the instrument as unavailable.
func (f *Fetcher) resolve(ctx context.Context, inst Instrument) (Quote, error) {
	price, err := f.p.CurrentPrice(ctx, inst.Symbol)
	if err != nil {
		return Quote{}, fmt.Errorf("current price: %w", err)
	}
	if v, ok := price.Get(); ok {
		return f.render(inst, v, SourceCurrent), nil
	}

	bars, err := f.p.History(ctx, inst.Symbol, f.period)
	if err != nil {
		return Quote{}, fmt.Errorf("history: %w", err)
	}
	if v, ok := provider.LastClose(bars).Get(); ok {
		return f.render(inst, v, SourceHistory), nil
	}

	f.log.Warn("no price available", zap.String("symbol", inst.Symbol), zap.Int("bars", len(bars)))
	return Unavailable(inst, f.now()), nil
}

func (f *Fetcher) render(inst Instrument, v float64, source string) Quote {
	return Quote{
		Symbol:    inst.Symbol,
		Text:      f.formatter.Format(v, inst.Format),
		Status:    StatusOK,
		Source:    source,
		FetchedAt: f.now(),
	}
}
