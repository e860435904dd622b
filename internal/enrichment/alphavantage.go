package enrichment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"bank-report/internal/dateutils"
	"bank-report/internal/parsererror"

	"github.com/shopspring/decimal"
)

const alphaVantageService = "alphavantage"

// Alpha Vantage TIME_SERIES_DAILY response keys.
const (
	timeSeriesDailyKey = "Time Series (Daily)"
	closeKey           = "4. close"
)

// errorKeys are the top-level keys Alpha Vantage uses for failures and
// throttling notices, in reporting priority.
var errorKeys = []string{"Error Message", "Note", "Information"}

// AlphaVantageClient reads daily closing prices from Alpha Vantage.
type AlphaVantageClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

var _ PriceFetcher = (*AlphaVantageClient)(nil)

// NewAlphaVantageClient creates a client. A nil httpClient uses
// http.DefaultClient.
func NewAlphaVantageClient(baseURL, apiKey string, httpClient *http.Client) *AlphaVantageClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &AlphaVantageClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  httpClient,
	}
}

// FetchClose implements PriceFetcher. The newest trading day is picked by
// date, not by the order of keys in the response.
func (c *AlphaVantageClient) FetchClose(ctx context.Context, symbol string) (decimal.Decimal, error) {
	q := url.Values{}
	q.Set("function", "TIME_SERIES_DAILY")
	q.Set("symbol", symbol)
	q.Set("apikey", c.apiKey)
	endpoint := c.baseURL + "/query?" + q.Encode()

	status, body, err := getJSON(ctx, c.client, alphaVantageService, symbol, endpoint, nil)
	if err != nil {
		return decimal.Zero, err
	}

	fail := func(err error) (decimal.Decimal, error) {
		return decimal.Zero, &parsererror.FetchError{
			Service:    alphaVantageService,
			Symbol:     symbol,
			StatusCode: statusIfFailed(status),
			Err:        err,
		}
	}

	if status != http.StatusOK {
		return fail(fmt.Errorf("unexpected status %s", http.StatusText(status)))
	}

	var payload map[string]json.RawMessage
	if err := decodeBody(alphaVantageService, symbol, status, body, &payload); err != nil {
		return decimal.Zero, err
	}

	for _, key := range errorKeys {
		if raw, ok := payload[key]; ok {
			var msg string
			if err := json.Unmarshal(raw, &msg); err != nil || msg == "" {
				msg = string(raw)
			}
			return fail(errors.New(msg))
		}
	}

	raw, ok := payload[timeSeriesDailyKey]
	if !ok {
		return fail(errors.New("response has no daily time series"))
	}

	var series map[string]map[string]string
	if err := json.Unmarshal(raw, &series); err != nil {
		return fail(fmt.Errorf("malformed time series: %w", err))
	}
	if len(series) == 0 {
		return fail(errors.New("daily time series is empty"))
	}

	days := make([]string, 0, len(series))
	for day := range series {
		if _, err := time.Parse(dateutils.DateLayoutISO, day); err != nil {
			continue
		}
		days = append(days, day)
	}
	if len(days) == 0 {
		return fail(errors.New("daily time series has no dated entries"))
	}
	sort.Strings(days)
	latest := days[len(days)-1]

	closeText, ok := series[latest][closeKey]
	if !ok {
		return fail(fmt.Errorf("no close price for %s", latest))
	}
	price, err := decimal.NewFromString(strings.TrimSpace(closeText))
	if err != nil {
		return fail(fmt.Errorf("invalid close price %q for %s: %w", closeText, latest, err))
	}
	return price, nil
}
