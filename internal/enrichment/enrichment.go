// Package enrichment adds live currency rates and stock closing prices to a
// report. Remote services sit behind the RateFetcher and PriceFetcher
// interfaces; Enricher turns their results into report entries.
package enrichment

import (
	"context"
	"net/http"

	"bank-report/internal/config"
	"bank-report/internal/currencyutils"
	"bank-report/internal/logging"
	"bank-report/internal/models"

	"github.com/shopspring/decimal"
)

// RateFetcher returns how much one unit of currency costs in the base currency.
type RateFetcher interface {
	FetchRate(ctx context.Context, currency string) (decimal.Decimal, error)
}

// PriceFetcher returns the latest daily closing price of a ticker.
type PriceFetcher interface {
	FetchClose(ctx context.Context, symbol string) (decimal.Decimal, error)
}

// Enricher looks up every configured symbol, one request at a time.
// A nil fetcher disables the matching lookup.
type Enricher struct {
	rates  RateFetcher
	prices PriceFetcher
	logger logging.Logger
}

// NewEnricher creates an Enricher.
func NewEnricher(rates RateFetcher, prices PriceFetcher, logger logging.Logger) *Enricher {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Enricher{rates: rates, prices: prices, logger: logger}
}

// NewFromConfig builds the HTTP clients from the enrichment section. When
// enrichment is disabled the Enricher returns empty lists.
func NewFromConfig(cfg *config.Config, logger logging.Logger) *Enricher {
	if !cfg.Enrichment.Enabled {
		return NewEnricher(nil, nil, logger)
	}

	httpClient := &http.Client{Timeout: cfg.Timeout()}
	if cfg.Enrichment.RatesAPIKey == "" {
		logger.Warn("ER_API_KEY is not set, currency rate lookups will likely fail")
	}
	if cfg.Enrichment.StocksAPIKey == "" {
		logger.Warn("SP_API_KEY is not set, stock price lookups will likely fail")
	}

	return NewEnricher(
		NewExchangeRatesClient(cfg.Enrichment.RatesURL, cfg.Enrichment.RatesAPIKey, cfg.Enrichment.BaseCurrency, httpClient),
		NewAlphaVantageClient(cfg.Enrichment.StocksURL, cfg.Enrichment.StocksAPIKey, httpClient),
		logger,
	)
}

// Rates returns one entry per currency, in input order. Successful rates are
// rounded to cents; failed lookups carry status "error" and the reason.
func (e *Enricher) Rates(ctx context.Context, currencies []string) []models.RateEntry {
	entries := make([]models.RateEntry, 0, len(currencies))
	if e.rates == nil {
		return entries
	}

	for _, currency := range currencies {
		log := e.logger.WithField(logging.FieldCurrency, currency)

		rate, err := e.rates.FetchRate(ctx, currency)
		if err != nil {
			log.WithError(err).Warn("Currency rate lookup failed",
				logging.Field{Key: logging.FieldStatus, Value: models.StatusError})
			entries = append(entries, models.RateEntry{
				Currency: currency,
				Status:   models.StatusError,
				Error:    err.Error(),
			})
			continue
		}

		rounded := currencyutils.RoundMoney(rate)
		log.Debug("Fetched currency rate",
			logging.Field{Key: logging.FieldStatus, Value: models.StatusOK},
			logging.Field{Key: "rate", Value: rounded.String()})
		entries = append(entries, models.RateEntry{
			Currency: currency,
			Rate:     &rounded,
			Status:   models.StatusOK,
		})
	}
	return entries
}

// Stocks returns one entry per ticker, in input order, with the closing
// price as the service reported it.
func (e *Enricher) Stocks(ctx context.Context, symbols []string) []models.StockEntry {
	entries := make([]models.StockEntry, 0, len(symbols))
	if e.prices == nil {
		return entries
	}

	for _, symbol := range symbols {
		log := e.logger.WithField(logging.FieldSymbol, symbol)

		price, err := e.prices.FetchClose(ctx, symbol)
		if err != nil {
			log.WithError(err).Warn("Stock price lookup failed",
				logging.Field{Key: logging.FieldStatus, Value: models.StatusError})
			entries = append(entries, models.StockEntry{
				Stock:  symbol,
				Status: models.StatusError,
				Error:  err.Error(),
			})
			continue
		}

		log.Debug("Fetched stock price",
			logging.Field{Key: logging.FieldStatus, Value: models.StatusOK},
			logging.Field{Key: "price", Value: price.String()})
		entries = append(entries, models.StockEntry{
			Stock:  symbol,
			Price:  &price,
			Status: models.StatusOK,
		})
	}
	return entries
}
