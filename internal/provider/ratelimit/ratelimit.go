package ratelimit

import (
	"context"
	"sync"
	"time"

	"quoteticker/internal/provider"
)

// MinInterval wraps a provider and enforces a minimum time between calls.
// Concurrent calls will wait until the interval has elapsed since the last call,
// or return early if the context is canceled.
type MinInterval struct {
	P        provider.Provider
	Interval time.Duration

	mu   sync.Mutex
	last time.Time
}

func (m *MinInterval) Name() string { return m.P.Name() }

func (m *MinInterval) CurrentPrice(ctx context.Context, symbol string) (provider.Price, error) {
	if err := m.wait(ctx); err != nil {
		return provider.None(), err
	}
	defer m.mark()
	return m.P.CurrentPrice(ctx, symbol)
}

func (m *MinInterval) History(ctx context.Context, symbol string, period provider.Period) ([]provider.Bar, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	defer m.mark()
	return m.P.History(ctx, symbol, period)
}

func (m *MinInterval) wait(ctx context.Context) error {
	if m.Interval <= 0 {
		return nil
	}
	// simple gate: ensure at least Interval since last
	m.mu.Lock()
	wait := time.Until(m.last.Add(m.Interval))
	m.mu.Unlock()
	if wait <= 0 {
		return nil
	}
	t := time.NewTimer(wait)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (m *MinInterval) mark() {
	if m.Interval <= 0 {
		return
	}
	m.mu.Lock()
	m.last = time.Now()
	m.mu.Unlock()
}

// Settings selects and tunes the limiter placed in front of a provider.
type Settings struct {
	MaxRequestsPerMinute  int
	Burst                 int
	MinRequestIntervalSec int
}

// Wrap decorates p according to s. A token bucket is preferred when a
// per-minute budget is set, otherwise a minimum interval, otherwise p is
// returned as is.
func Wrap(p provider.Provider, s Settings) provider.Provider {
	if s.MaxRequestsPerMinute > 0 {
		rate := float64(s.MaxRequestsPerMinute) / 60.0
		burst := s.Burst
		if burst <= 0 {
			burst = 1
		}
		return &TokenBucketProvider{P: p, TB: NewTokenBucket(rate, burst)}
	}
	if s.MinRequestIntervalSec > 0 {
		return &MinInterval{P: p, Interval: time.Duration(s.MinRequestIntervalSec) * time.Second}
	}
	return p
}
