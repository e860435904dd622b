package enrichment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"bank-report/internal/parsererror"

	"github.com/shopspring/decimal"
)

const exchangeRatesService = "exchangerates"

// ExchangeRatesClient converts currencies through the apilayer
// exchangerates_data convert endpoint.
type ExchangeRatesClient struct {
	baseURL string
	apiKey  string
	base    string
	client  *http.Client
}

var _ RateFetcher = (*ExchangeRatesClient)(nil)

// NewExchangeRatesClient creates a client converting into base. A nil
// httpClient uses http.DefaultClient.
func NewExchangeRatesClient(baseURL, apiKey, base string, httpClient *http.Client) *ExchangeRatesClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &ExchangeRatesClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		base:    strings.ToUpper(base),
		client:  httpClient,
	}
}

type convertResponse struct {
	Success *bool            `json:"success"`
	Result  *decimal.Decimal `json:"result"`
	Error   json.RawMessage  `json:"error"`
	Message string           `json:"message"`
}

// FetchRate implements RateFetcher.
func (c *ExchangeRatesClient) FetchRate(ctx context.Context, currency string) (decimal.Decimal, error) {
	q := url.Values{}
	q.Set("to", c.base)
	q.Set("from", currency)
	q.Set("amount", "1")
	endpoint := c.baseURL + "/convert?" + q.Encode()

	header := http.Header{}
	header.Set("apikey", c.apiKey)

	status, body, err := getJSON(ctx, c.client, exchangeRatesService, currency, endpoint, header)
	if err != nil {
		return decimal.Zero, err
	}

	var resp convertResponse
	if err := decodeBody(exchangeRatesService, currency, status, body, &resp); err != nil {
		return decimal.Zero, err
	}

	if msg := errorMessage(resp); msg != "" || status != http.StatusOK || resp.Result == nil {
		if msg == "" {
			msg = "response has no result"
		}
		return decimal.Zero, &parsererror.FetchError{
			Service:    exchangeRatesService,
			Symbol:     currency,
			StatusCode: statusIfFailed(status),
			Err:        errors.New(msg),
		}
	}
	return *resp.Result, nil
}

// errorMessage extracts the error text. The service reports errors either
// as a plain string or as an object with info or message.
func errorMessage(resp convertResponse) string {
	if len(resp.Error) == 0 || string(resp.Error) == "null" {
		if resp.Success != nil && !*resp.Success {
			return "request was not successful"
		}
		return resp.Message
	}

	var text string
	if err := json.Unmarshal(resp.Error, &text); err == nil {
		return text
	}

	var obj struct {
		Code    json.RawMessage `json:"code"`
		Type    string          `json:"type"`
		Info    string          `json:"info"`
		Message string          `json:"message"`
	}
	if err := json.Unmarshal(resp.Error, &obj); err == nil {
		switch {
		case obj.Info != "":
			return obj.Info
		case obj.Message != "":
			return obj.Message
		case obj.Type != "":
			return obj.Type
		}
	}
	return fmt.Sprintf("unknown error: %s", string(resp.Error))
}
