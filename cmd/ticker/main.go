package main

import (
	"log"
	"net/url"
	"runtime"

	"go.uber.org/zap"

	"quoteticker/internal/config"
	"quoteticker/internal/httpx"
	"quoteticker/internal/logging"
	"quoteticker/internal/provider"
	"quoteticker/internal/provider/ratelimit"
	"quoteticker/internal/provider/yahoo"
	"quoteticker/internal/provider/yahooadapter"
	"quoteticker/internal/quote"
	"quoteticker/internal/ticker"
	"quoteticker/internal/ui/gtkui"
)

func init() {
	// GTK must be driven from the thread that initialised it.
	runtime.LockOSThread()
}

func main() {
	cfg := config.Default()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(cfg.Development, "ticker")
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	fetcher := quote.NewFetcher(newProvider(cfg.Provider), cfg.Instruments,
		quote.WithLocale(cfg.Locale),
		quote.WithHistoryPeriod(cfg.Provider.HistoryPeriod),
		quote.WithLogger(logger.Named("fetch")),
	)

	gtkui.Init()
	win, err := gtkui.New(cfg.Window, len(cfg.Instruments))
	if err != nil {
		logger.Fatal("creating window", zap.Error(err))
	}

	app := ticker.New(fetcher, win, win, cfg.RefreshInterval, ticker.WithLogger(logger))
	win.Bind(app)
	win.Show()
	app.Initialize()

	gtkui.Run()
	logger.Info("stopped")
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
