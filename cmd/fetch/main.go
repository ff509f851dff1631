// Command fetch runs a single quote cycle without a window and prints the
// result as JSON. It is meant for checking connectivity to the provider.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"time"

	"go.uber.org/zap"

	"quoteticker/internal/config"
	"quoteticker/internal/httpx"
	"quoteticker/internal/logging"
	"quoteticker/internal/provider"
	"quoteticker/internal/provider/ratelimit"
	"quoteticker/internal/provider/yahoo"
	"quoteticker/internal/provider/yahooadapter"
	"quoteticker/internal/quote"
)

func main() {
	cfg := config.Default()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(true, "fetch")
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	fetcher := quote.NewFetcher(newProvider(cfg.Provider), cfg.Instruments,
		quote.WithLocale(cfg.Locale),
		quote.WithHistoryPeriod(cfg.Provider.HistoryPeriod),
		quote.WithLogger(logger),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 2*cfg.Provider.RequestTimeout())
	defer cancel()

	start := time.Now()
	quotes := fetcher.Fetch(ctx, "oneshot")
	logger.Info("fetched", zap.Int("quotes", len(quotes)), zap.Duration("elapsed", time.Since(start)))

	out := struct {
		Quotes []quote.Quote `json:"quotes"`
	}{Quotes: quotes}
	b, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		logger.Fatal("encoding quotes", zap.Error(err))
	}
	fmt.Println(string(b))
}

func newProvider(cfg config.Provider) provider.Provider {
	httpClient := httpx.New(cfg.RequestTimeout())
	if cfg.UserAgent != "" {
		httpClient.UserAgent = cfg.UserAgent
	}
	client := yahoo.NewYahooFinanceClient(
		yahoo.WithBaseURL(cfg.BaseURL),
		yahoo.WithHTTPClient(httpClient),
		// Regular session only, so the chart meta matches the exchange close.
		yahoo.WithQuery(url.Values{"includePrePost": {"false"}}),
	)
	p := yahooadapter.New(yahooadapter.Config{Name: cfg.Name}, client)
	return ratelimit.Wrap(p, ratelimit.Settings{
		MaxRequestsPerMinute:  cfg.MaxRequestsPerMinute,
		Burst:                 cfg.Burst,
		MinRequestIntervalSec: cfg.MinRequestIntervalSec,
	})
}
