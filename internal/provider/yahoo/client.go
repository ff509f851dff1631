package yahoo

import (
	"net/http"
	"net/url"
)

const baseURL = "https://query1.finance.yahoo.com"

// HTTPClient describes an HTTP client.
//
//go:generate mockgen -package=yahoo_test -destination=mock_http_client_test.go -source=client.go HTTPClient
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// YahooFinanceClient is a client for the Yahoo Finance chart API.
type YahooFinanceClient struct {
	// baseURL is the base URL for the API.
	baseURL string
	// httpClient is the HTTP client.
	httpClient HTTPClient
	// header contains additional headers to be sent with each request.
	header http.Header
	// query contains additional query parameters to be sent with each request.
	query url.Values
}

// YahooFinanceClientOption is a configuration option for the Yahoo Finance client.
type YahooFinanceClientOption func(*YahooFinanceClient)

// WithBaseURL sets the base URL for the API.
func WithBaseURL(baseURL string) YahooFinanceClientOption {
	return func(c *YahooFinanceClient) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient sets the HTTP client for the API.
func WithHTTPClient(httpClient HTTPClient) YahooFinanceClientOption {
	return func(c *YahooFinanceClient) {
		c.httpClient = httpClient
	}
}

// WithHeader sets additional headers to be sent with each request.
func WithHeader(header http.Header) YahooFinanceClientOption {
	return func(c *YahooFinanceClient) {
		for key, values := range header {
			for _, value := range values {
				c.header.Add(key, value)
			}
		}
	}
}

// WithQuery sets additional query parameters to be sent with each request.
func WithQuery(query url.Values) YahooFinanceClientOption {
	return func(c *YahooFinanceClient) {
		for key, values := range query {
			for _, value := range values {
				c.query.Add(key, value)
			}
		}
	}
}

// NewYahooFinanceClient creates a new Yahoo Finance client.
func NewYahooFinanceClient(options ...YahooFinanceClientOption) *YahooFinanceClient {
	var client = &YahooFinanceClient{
		baseURL:    baseURL,
		httpClient: http.DefaultClient,
		header:     http.Header{},
		query:      url.Values{},
	}
	for _, option := range options {
		option(client)
	}
	return client
}
