package models

import "github.com/shopspring/decimal"

// CardSummary is the spending of one card.
type CardSummary struct {
	LastDigits string          `json:"last_digits"`
	TotalSpent decimal.Decimal `json:"total_spent"`
	Cashback   decimal.Decimal `json:"cashback"`
}

// TopTransaction is the projection of a transaction in the top list.
type TopTransaction struct {
	Date        string          `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
}

// CategorySpending is the total payment amount of one category over a window.
type CategorySpending struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
}

// Lookup status values shared by rate and stock entries.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// RateEntry is the conversion rate of one currency into the base currency.
// Rate is nil when the lookup failed.
type RateEntry struct {
	Currency string           `json:"currency"`
	Rate     *decimal.Decimal `json:"rate"`
	Status   string           `json:"status"`
	Error    string           `json:"error,omitempty"`
}

// StockEntry is the latest closing price of one ticker.
// Price is nil when the lookup failed.
type StockEntry struct {
	Stock  string           `json:"stock"`
	Price  *decimal.Decimal `json:"price"`
	Status string           `json:"status"`
	Error  string           `json:"error,omitempty"`
}

// Overview is the main page response. Field order is the serialization order.
type Overview struct {
	Greeting        string           `json:"greeting"`
	Cards           []CardSummary    `json:"cards"`
	TopTransactions []TopTransaction `json:"top_transactions"`
	CurrencyRates   []RateEntry      `json:"currency_rates"`
	StockPrices     []StockEntry     `json:"stock_prices"`
}
