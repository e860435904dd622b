// Package currencyutils provides amount parsing and rounding shared by the
// loaders, aggregators and enrichment clients.
package currencyutils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// MoneyPlaces is the number of decimal places kept for derived money values.
const MoneyPlaces int32 = 2

var currencyNoise = regexp.MustCompile(`(?i)(руб\.?|RUB|USD|EUR|CHF|[€$£¥₽\s\x{00A0}\x{202F}])`)

// ParseAmount parses a string representation of an amount into a decimal value
// It handles various formats like "1 234,56", "1.234,56", "1'234.56", "-1234.56"
func ParseAmount(amountStr string) (decimal.Decimal, error) {
	if strings.TrimSpace(amountStr) == "" {
		return decimal.Zero, nil
	}

	standardized := StandardizeAmount(amountStr)

	amount, err := decimal.NewFromString(standardized)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse amount '%s': %w", amountStr, err)
	}

	return amount, nil
}

// StandardizeAmount converts various currency string formats to a standard format that can be parsed by decimal.NewFromString.
// A single comma is always the decimal separator ("0,125" is 0.125); only
// several comma groups ("1,234,567") are read as thousands separators.
func StandardizeAmount(amountStr string) string {
	amountStr = currencyNoise.ReplaceAllString(amountStr, "")
	amountStr = strings.ReplaceAll(amountStr, "−", "-")

	if strings.Contains(amountStr, ",") && strings.Contains(amountStr, ".") {
		if strings.LastIndex(amountStr, ".") < strings.LastIndex(amountStr, ",") {
			// 1.234,56
			amountStr = strings.ReplaceAll(amountStr, ".", "")
			amountStr = strings.ReplaceAll(amountStr, ",", ".")
		} else {
			// 1,234.56
			amountStr = strings.ReplaceAll(amountStr, ",", "")
		}
	} else if strings.Contains(amountStr, ",") {
		if strings.Count(amountStr, ",") == 1 {
			amountStr = strings.ReplaceAll(amountStr, ",", ".")
		} else {
			amountStr = strings.ReplaceAll(amountStr, ",", "")
		}
	}

	return strings.ReplaceAll(amountStr, "'", "")
}

// RoundMoney rounds to MoneyPlaces, half away from zero.
func RoundMoney(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(MoneyPlaces)
}
