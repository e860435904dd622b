package enrichment

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"bank-report/internal/parsererror"
)

// maxBodyBytes bounds how much of a response body is read.
const maxBodyBytes = 4 << 20

// getJSON performs a GET and returns the status code and raw body. Transport
// failures are wrapped in a FetchError without a status.
func getJSON(ctx context.Context, client *http.Client, service, symbol, url string, header http.Header) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, nil, &parsererror.FetchError{Service: service, Symbol: symbol, Err: err}
	}
	for k, values := range header {
		for _, v := range values {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return 0, nil, &parsererror.FetchError{Service: service, Symbol: symbol, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return resp.StatusCode, nil, &parsererror.FetchError{
			Service: service, Symbol: symbol, StatusCode: resp.StatusCode,
			Err: fmt.Errorf("read body: %w", err),
		}
	}
	return resp.StatusCode, body, nil
}

// decodeBody unmarshals body into out, wrapping failures in a FetchError.
func decodeBody(service, symbol string, status int, body []byte, out interface{}) error {
	if err := json.Unmarshal(body, out); err != nil {
		return &parsererror.FetchError{
			Service: service, Symbol: symbol, StatusCode: statusIfFailed(status),
			Err: fmt.Errorf("malformed response: %w", err),
		}
	}
	return nil
}

func statusIfFailed(status int) int {
	if status >= 200 && status < 300 {
		return 0
	}
	return status
}
