// Package models provides the data structures used throughout the application.
package models

import "github.com/shopspring/decimal"

func init() {
	// Money fields are written as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}
