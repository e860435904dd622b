package models

import (
	"time"

	"bank-report/internal/dateutils"
	"bank-report/internal/parsererror"

	"github.com/shopspring/decimal"
)

// Column is a header of the bank operations export.
type Column string

// Columns of the operations export.
const (
	ColumnOperationDate   Column = "Дата операции"
	ColumnPaymentDate     Column = "Дата платежа"
	ColumnCardNumber      Column = "Номер карты"
	ColumnOperationAmount Column = "Сумма операции"
	ColumnPaymentAmount   Column = "Сумма платежа"
	ColumnCategory        Column = "Категория"
	ColumnDescription     Column = "Описание"
)

// KnownColumns lists the recognised columns in export order.
var KnownColumns = []Column{
	ColumnOperationDate,
	ColumnPaymentDate,
	ColumnCardNumber,
	ColumnOperationAmount,
	ColumnPaymentAmount,
	ColumnCategory,
	ColumnDescription,
}

// Transaction is one row of the operations export.
//
// Dates stay in their source text form and are parsed by the operation that
// needs them, so a malformed date fails that operation and not the load.
type Transaction struct {
	Row             int
	OperationDate   string
	PaymentDate     string
	CardNumber      string
	OperationAmount decimal.Decimal
	PaymentAmount   decimal.Decimal
	Category        string
	Description     string
}

// ParseOperationDate parses OperationDate as dd.mm.yyyy HH:MM:SS in loc.
func (t Transaction) ParseOperationDate(loc *time.Location) (time.Time, error) {
	parsed, err := dateutils.ParseInLocation(dateutils.DateTimeLayoutEuropean, t.OperationDate, loc)
	if err != nil {
		return time.Time{}, &parsererror.ParseError{
			Source: "transaction",
			Field:  string(ColumnOperationDate),
			Value:  t.OperationDate,
			Row:    t.Row,
			Err:    err,
		}
	}
	return parsed, nil
}

// HasPaymentDate reports whether the payment date cell is filled.
func (t Transaction) HasPaymentDate() bool {
	return dateutils.CleanDateString(t.PaymentDate) != ""
}

// ParsePaymentDate parses PaymentDate with any of dateutils.PaymentDateFormats.
func (t Transaction) ParsePaymentDate(loc *time.Location) (time.Time, error) {
	parsed, err := dateutils.ParseAny(t.PaymentDate, dateutils.PaymentDateFormats, loc)
	if err != nil {
		return time.Time{}, &parsererror.ParseError{
			Source: "transaction",
			Field:  string(ColumnPaymentDate),
			Value:  t.PaymentDate,
			Row:    t.Row,
			Err:    err,
		}
	}
	return parsed, nil
}

// LastDigits returns the last four characters of the card number, or the
// whole number when it is shorter.
func (t Transaction) LastDigits() string {
	runes := []rune(t.CardNumber)
	if len(runes) <= 4 {
		return string(runes)
	}
	return string(runes[len(runes)-4:])
}

// IsSpending reports whether the payment is outgoing.
func (t Transaction) IsSpending() bool {
	return t.PaymentAmount.IsNegative()
}
