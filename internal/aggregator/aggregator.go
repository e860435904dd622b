// Package aggregator turns a loaded operations table into the summary views
// of a report: the month-to-date window, card totals, the top operations and
// category spending over a rolling window.
//
// Every operation is a pure function of its inputs and the injected clock.
// The source table is never modified.
package aggregator

import (
	"sort"
	"strings"
	"time"

	"bank-report/internal/currencyutils"
	"bank-report/internal/dateutils"
	"bank-report/internal/logging"
	"bank-report/internal/models"
	"bank-report/internal/parsererror"

	"github.com/shopspring/decimal"
)

// Operation names used in errors and log fields.
const (
	OpFilterByDate       = "filter_by_date"
	OpSpendingByCategory = "spending_by_category"
	OpAggregateByCard    = "aggregate_by_card"
	OpTopFive            = "top_five"
)

// CategoryWindowDays is the length of the rolling category spending window.
const CategoryWindowDays = 90

// TopLimit is the number of operations kept by TopFive.
const TopLimit = 5

var cashbackDivisor = decimal.NewFromInt(100)

// Aggregator computes report views.
type Aggregator struct {
	logger logging.Logger
	now    func() time.Time
	loc    *time.Location
}

// New creates an Aggregator. A nil clock uses time.Now and a nil location
// uses time.Local.
func New(logger logging.Logger, now func() time.Time, loc *time.Location) *Aggregator {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	if now == nil {
		now = time.Now
	}
	if loc == nil {
		loc = time.Local
	}
	return &Aggregator{logger: logger, now: now, loc: loc}
}

// Now returns the current time of the injected clock in the table location.
func (a *Aggregator) Now() time.Time {
	return a.now().In(a.loc)
}

// FilterByDate keeps the operations from the start of endDate's month up to
// endDate, both inclusive. endDate uses the dd.mm.yyyy HH:MM:SS layout; an
// empty or invalid value falls back to the current time with a warning.
func (a *Aggregator) FilterByDate(table *models.Table, endDate string) (*models.Table, error) {
	if err := table.Require(OpFilterByDate, models.ColumnOperationDate); err != nil {
		return nil, err
	}

	end := a.resolveEndDate(endDate)
	start := dateutils.StartOfMonth(end)

	rows := table.Rows()
	kept := make([]models.Transaction, 0, len(rows))
	for _, row := range rows {
		opDate, err := row.ParseOperationDate(a.loc)
		if err != nil {
			return nil, err
		}
		if dateutils.Within(opDate, start, end) {
			kept = append(kept, row)
		}
	}

	a.logger.Debug("Filtered operations by date",
		logging.Field{Key: logging.FieldOperation, Value: OpFilterByDate},
		logging.Field{Key: logging.FieldWindowStart, Value: start.Format(dateutils.DateTimeLayoutEuropean)},
		logging.Field{Key: logging.FieldWindowEnd, Value: end.Format(dateutils.DateTimeLayoutEuropean)},
		logging.Field{Key: logging.FieldCount, Value: len(kept)})

	return table.WithRows(kept), nil
}

func (a *Aggregator) resolveEndDate(endDate string) time.Time {
	if dateutils.CleanDateString(endDate) == "" {
		now := a.Now()
		a.logger.Warn("No end date given, using current time",
			logging.Field{Key: logging.FieldOperation, Value: OpFilterByDate})
		return now
	}

	end, err := dateutils.ParseInLocation(dateutils.DateTimeLayoutEuropean, endDate, a.loc)
	if err != nil {
		now := a.Now()
		a.logger.WithError(err).Warn("Invalid end date, using current time",
			logging.Field{Key: logging.FieldOperation, Value: OpFilterByDate},
			logging.Field{Key: "end_date", Value: endDate})
		return now
	}
	return end
}

// SpendingByCategory sums the payment amount of one category over the 90
// days ending at date (dd-mm-yyyy, empty means today). Payment dates are
// compared by calendar day. Rows without a payment date are skipped.
func (a *Aggregator) SpendingByCategory(table *models.Table, category, date string) (models.CategorySpending, error) {
	result := models.CategorySpending{Category: category, Total: decimal.Zero}

	if err := table.Require(OpSpendingByCategory,
		models.ColumnCategory, models.ColumnPaymentDate, models.ColumnPaymentAmount); err != nil {
		return result, err
	}

	end := dateutils.StartOfDay(a.Now())
	if dateutils.CleanDateString(date) != "" {
		parsed, err := dateutils.ParseInLocation(dateutils.DateLayoutDashed, date, a.loc)
		if err != nil {
			return result, &parsererror.ParseError{
				Source: OpSpendingByCategory,
				Field:  "date",
				Value:  date,
				Err:    err,
			}
		}
		end = parsed
	}
	start := end.AddDate(0, 0, -CategoryWindowDays)

	matched := 0
	for _, row := range table.Rows() {
		if row.Category != category || !row.HasPaymentDate() {
			continue
		}
		payDate, err := row.ParsePaymentDate(a.loc)
		if err != nil {
			return models.CategorySpending{Category: category, Total: decimal.Zero}, err
		}
		if dateutils.Within(dateutils.StartOfDay(payDate), start, end) {
			result.Total = result.Total.Add(row.PaymentAmount)
			matched++
		}
	}

	a.logger.Debug("Computed category spending",
		logging.Field{Key: logging.FieldOperation, Value: OpSpendingByCategory},
		logging.Field{Key: logging.FieldCategory, Value: category},
		logging.Field{Key: logging.FieldWindowStart, Value: start.Format(dateutils.DateLayoutDashed)},
		logging.Field{Key: logging.FieldWindowEnd, Value: end.Format(dateutils.DateLayoutDashed)},
		logging.Field{Key: logging.FieldCount, Value: matched})

	return result, nil
}

// AggregateByCard totals the outgoing payments of each card, in the order
// cards first appear. Cashback is 1% of the total, rounded to cents. Rows
// without a card number are left out.
func (a *Aggregator) AggregateByCard(table *models.Table) ([]models.CardSummary, error) {
	if err := table.Require(OpAggregateByCard,
		models.ColumnCardNumber, models.ColumnPaymentAmount); err != nil {
		return nil, err
	}

	var order []string
	sums := make(map[string]decimal.Decimal)
	digits := make(map[string]string)
	skipped := 0
	for _, row := range table.Rows() {
		if !row.IsSpending() {
			continue
		}
		if strings.TrimSpace(row.CardNumber) == "" {
			skipped++
			continue
		}
		if _, seen := sums[row.CardNumber]; !seen {
			order = append(order, row.CardNumber)
			sums[row.CardNumber] = decimal.Zero
			digits[row.CardNumber] = row.LastDigits()
		}
		sums[row.CardNumber] = sums[row.CardNumber].Add(row.PaymentAmount)
	}

	if skipped > 0 {
		a.logger.Debug("Skipped spending rows without card number",
			logging.Field{Key: logging.FieldOperation, Value: OpAggregateByCard},
			logging.Field{Key: logging.FieldCount, Value: skipped})
	}

	cards := make([]models.CardSummary, 0, len(order))
	for _, card := range order {
		total := sums[card].Abs()
		cards = append(cards, models.CardSummary{
			LastDigits: digits[card],
			TotalSpent: total,
			Cashback:   Cashback(total),
		})
	}

	a.logger.Debug("Aggregated spending by card",
		logging.Field{Key: logging.FieldOperation, Value: OpAggregateByCard},
		logging.Field{Key: logging.FieldCount, Value: len(cards)})

	return cards, nil
}

// Cashback returns 1% of total rounded to cents, halves away from zero.
func Cashback(total decimal.Decimal) decimal.Decimal {
	return currencyutils.RoundMoney(total.Div(cashbackDivisor))
}

// TopFive returns up to five operations with the largest operation amount.
// Ties keep source order.
func (a *Aggregator) TopFive(table *models.Table) ([]models.TopTransaction, error) {
	if err := table.Require(OpTopFive,
		models.ColumnOperationDate, models.ColumnOperationAmount,
		models.ColumnCategory, models.ColumnDescription); err != nil {
		return nil, err
	}

	rows := table.Rows()
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].OperationAmount.GreaterThan(rows[j].OperationAmount)
	})
	if len(rows) > TopLimit {
		rows = rows[:TopLimit]
	}

	top := make([]models.TopTransaction, 0, len(rows))
	for _, row := range rows {
		opDate, err := row.ParseOperationDate(a.loc)
		if err != nil {
			return nil, err
		}
		top = append(top, models.TopTransaction{
			Date:        dateutils.ToEuropeanFormat(opDate),
			Amount:      row.OperationAmount,
			Category:    row.Category,
			Description: row.Description,
		})
	}
	return top, nil
}
