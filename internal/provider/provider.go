package provider

import (
	"context"
	"errors"
	"math"
	"time"
)

var (
	ErrUnknownSymbol     = errors.New("unknown symbol")
	ErrRateLimited       = errors.New("rate limited")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrMalformedResponse = errors.New("malformed response")
)

// Price is an optional numeric value reported by a provider.
// The zero value is None.
type Price struct {
	value float64
	ok    bool
}

// Some returns a present price. NaN and infinities are treated as absent.
func Some(v float64) Price {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Price{}
	}
	return Price{value: v, ok: true}
}

func None() Price { return Price{} }

// FromPtr converts a nullable decoded field into a Price.
func FromPtr(v *float64) Price {
	if v == nil {
		return None()
	}
	return Some(*v)
}

func (p Price) Get() (float64, bool) { return p.value, p.ok }

func (p Price) Valid() bool { return p.ok }

// Bar is one period of a historical series.
type Bar struct {
	Time  time.Time
	Close Price
}

// Period is the lookback window for historical requests, in provider range notation.
type Period string

const (
	Period1Day   Period = "1d"
	Period5Day   Period = "5d"
	Period1Month Period = "1mo"
)

// Valid reports whether p is one of the supported lookback periods.
func (p Period) Valid() bool {
	switch p {
	case Period1Day, Period5Day, Period1Month:
		return true
	}
	return false
}

// LastClose returns the most recent bar with a valid close.
func LastClose(bars []Bar) Price {
	for i := len(bars) - 1; i >= 0; i-- {
		if bars[i].Close.Valid() {
			return bars[i].Close
		}
	}
	return None()
}

type Provider interface {
	Name() string
	// CurrentPrice returns the latest trade price, or None when the provider
	// does not report one for the symbol.
	CurrentPrice(ctx context.Context, symbol string) (Price, error)
	// History returns bars for the period ordered oldest first.
	History(ctx context.Context, symbol string, period Period) ([]Bar, error)
}
