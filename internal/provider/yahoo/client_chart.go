package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"net/http"
	"net/url"
	"time"

	"quoteticker/internal/provider"
)

// Chart is the decoded result of a chart request for one symbol.
type Chart struct {
	Symbol             string
	RegularMarketPrice *float64
	Timestamps         []time.Time
	// Closes is aligned with Timestamps. Entries are nil where the
	// exchange reported no trade for the period.
	Closes []*float64
}

type chartResponse struct {
	Chart struct {
		Result []chartResult `json:"result"`
		Error  *chartError   `json:"error"`
	} `json:"chart"`
}

type chartResult struct {
	Meta struct {
		Symbol             string   `json:"symbol"`
		RegularMarketPrice *float64 `json:"regularMarketPrice"`
	} `json:"meta"`
	Timestamp  []int64 `json:"timestamp"`
	Indicators struct {
		Quote []struct {
			Close []*float64 `json:"close"`
		} `json:"quote"`
	} `json:"indicators"`
}

type chartError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// GetChart retrieves the chart for symbol over rng (e.g. "1d", "5d") sampled at interval (e.g. "1d", "1m").
func (c *YahooFinanceClient) GetChart(ctx context.Context, symbol, rng, interval string, opts ...YahooFinanceClientOption) (*Chart, error) {
	var override = &YahooFinanceClient{
		baseURL:    c.baseURL,
		httpClient: c.httpClient,
		header:     c.header.Clone(),
		query:      maps.Clone(c.query),
	}
	for _, opt := range opts {
		opt(override)
	}

	query := maps.Clone(override.query)
	query.Set("range", rng)
	query.Set("interval", interval)

	u := fmt.Sprintf("%s/v8/finance/chart/%s?%s", override.baseURL, url.PathEscape(symbol), query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header = override.header

	res, err := override.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("performing request: %w", err)
	}
	defer res.Body.Close()

	switch res.StatusCode {
	case http.StatusOK:
		break

	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, provider.ErrUnauthorized

	case http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", provider.ErrUnknownSymbol, symbol)

	case http.StatusTooManyRequests:
		return nil, provider.ErrRateLimited

	default:
		b, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return nil, fmt.Errorf("unexpected status code: %d: %s", res.StatusCode, string(b))
	}

	var body chartResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: decoding chart response: %v", provider.ErrMalformedResponse, err)
	}

	if e := body.Chart.Error; e != nil {
		if e.Code == "Not Found" {
			return nil, fmt.Errorf("%w: %s: %s", provider.ErrUnknownSymbol, symbol, e.Description)
		}
		return nil, fmt.Errorf("chart error %s: %s", e.Code, e.Description)
	}
	if len(body.Chart.Result) == 0 {
		return nil, fmt.Errorf("%w: %s", provider.ErrUnknownSymbol, symbol)
	}

	return decodeChart(body.Chart.Result[0])
}

func decodeChart(r chartResult) (*Chart, error) {
	chart := &Chart{
		Symbol:             r.Meta.Symbol,
		RegularMarketPrice: r.Meta.RegularMarketPrice,
	}

	// {
	//   "timestamp": [1718150400, 1718236800],
	//   "indicators": {"quote": [{"close": [38876.7, null]}]}
	// }
	var closes []*float64
	if len(r.Indicators.Quote) > 0 {
		closes = r.Indicators.Quote[0].Close
	}
	if len(closes) != 0 && len(closes) != len(r.Timestamp) {
		return nil, fmt.Errorf("%w: %d timestamps but %d closes", provider.ErrMalformedResponse, len(r.Timestamp), len(closes))
	}

	chart.Timestamps = make([]time.Time, len(r.Timestamp))
	for i, ts := range r.Timestamp {
		chart.Timestamps[i] = time.Unix(ts, 0).UTC()
	}
	chart.Closes = make([]*float64, len(r.Timestamp))
	copy(chart.Closes, closes)

	return chart, nil
}
