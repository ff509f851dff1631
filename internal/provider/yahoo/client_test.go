package yahoo_test

import (
	"bytes"
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	yahoo "quoteticker/internal/provider/yahoo"
)

// okResponse returns an empty but well-formed chart response.
func okResponse() *http.Response {
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(bytes.NewBufferString(`{"chart":{"result":[{"meta":{"symbol":"^N225"}}],"error":null}}`)),
	}
}

func TestNewYahooFinanceClient(t *testing.T) {
	t.Parallel()

	// Assert: the constructor always returns a client.
	client := yahoo.NewYahooFinanceClient()
	require.NotNilf(t, client, "unexpected nil client")
}

func TestWithHTTPClient(t *testing.T) {
	t.Parallel()

	// Arrange: create a mock controller
	ctrl := gomock.NewController(t)

	// Arrange: create a mock http client
	httpClient := NewMockHTTPClient(ctrl)

	// Assert: the custom client receives exactly one request
	httpClient.EXPECT().
		Do(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			return okResponse(), nil
		}).
		Times(1)

	// Arrange: create a new client with a custom HTTP client.
	client := yahoo.NewYahooFinanceClient(yahoo.WithHTTPClient(httpClient))

	// Act: call GetChart with the custom HTTP client.
	_, err := client.GetChart(t.Context(), "^N225", "1d", "1d")
	require.NoError(t, err)
}

func TestWithBaseURL(t *testing.T) {
	t.Parallel()

	// Arrange: create a mock controller
	ctrl := gomock.NewController(t)

	// Arrange: create a mock http client
	httpClient := NewMockHTTPClient(ctrl)

	// Arrange: define a base url
	baseURL := "http://localhost:8080"

	// Assert: stub the Do method
	httpClient.EXPECT().
		Do(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			require.Truef(t, strings.HasPrefix(req.URL.String(), baseURL), "expected url to start with base url, received: %s", req.URL.String())
			return okResponse(), nil
		}).
		Times(1)

	// Arrange: create a new client.
	client := yahoo.NewYahooFinanceClient(yahoo.WithHTTPClient(httpClient), yahoo.WithBaseURL(baseURL))

	// Act: call GetChart with the overridden base URL.
	_, err := client.GetChart(t.Context(), "^N225", "1d", "1d")
	require.NoError(t, err)
}

func TestWithHeader(t *testing.T) {
	t.Parallel()

	// Arrange: create a mock controller
	ctrl := gomock.NewController(t)

	// Arrange: create a mock http client
	httpClient := NewMockHTTPClient(ctrl)

	// Assert: the header is forwarded
	httpClient.EXPECT().
		Do(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			require.Equal(t, "bar", req.Header.Get("foo"))
			return okResponse(), nil
		}).
		Times(1)

	// Arrange: create a new client with a custom header.
	client := yahoo.NewYahooFinanceClient(yahoo.WithHTTPClient(httpClient), yahoo.WithHeader(http.Header{
		"foo": []string{"bar"},
	}))

	// Act: call GetChart with the custom header.
	_, err := client.GetChart(t.Context(), "^N225", "1d", "1d")
	require.NoError(t, err)
}

func TestWithQuery(t *testing.T) {
	t.Parallel()

	// Arrange: create a mock controller
	ctrl := gomock.NewController(t)

	// Arrange: create a mock http client
	httpClient := NewMockHTTPClient(ctrl)

	// Assert: the extra query parameter is sent alongside range and interval
	httpClient.EXPECT().
		Do(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			require.Equal(t, "false", req.URL.Query().Get("includePrePost"))
			require.Equal(t, "5d", req.URL.Query().Get("range"))
			return okResponse(), nil
		}).
		Times(1)

	// Arrange: create a new client with an extra query parameter.
	client := yahoo.NewYahooFinanceClient(yahoo.WithHTTPClient(httpClient), yahoo.WithQuery(url.Values{
		"includePrePost": []string{"false"},
	}))

	// Act: call GetChart.
	_, err := client.GetChart(t.Context(), "^N225", "5d", "1d")
	require.NoError(t, err)
}

func TestPerCallOptionsDoNotLeak(t *testing.T) {
	t.Parallel()

	// Arrange: create a mock controller
	ctrl := gomock.NewController(t)

	// Arrange: create a mock http client
	httpClient := NewMockHTTPClient(ctrl)

	// Assert: only the first request carries the per-call header
	first := httpClient.EXPECT().
		Do(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			require.Equal(t, "once", req.Header.Get("X-Call"))
			return okResponse(), nil
		})
	httpClient.EXPECT().
		Do(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			require.Empty(t, req.Header.Get("X-Call"))
			return okResponse(), nil
		}).
		After(first)

	client := yahoo.NewYahooFinanceClient(yahoo.WithHTTPClient(httpClient))

	// Act: one call with a per-call header, one without.
	_, err := client.GetChart(t.Context(), "^N225", "1d", "1d", yahoo.WithHeader(http.Header{"X-Call": []string{"once"}}))
	require.NoError(t, err)
	_, err = client.GetChart(t.Context(), "^N225", "1d", "1d")
	require.NoError(t, err)
}
