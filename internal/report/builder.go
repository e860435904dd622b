package report

import (
	"context"
	"time"

	"bank-report/internal/aggregator"
	"bank-report/internal/logging"
	"bank-report/internal/models"

	"github.com/google/uuid"
)

// TableLoader loads an operations table.
type TableLoader interface {
	Load(ctx context.Context, input string) (*models.Table, error)
}

// OverviewRequest holds the inputs of one overview run.
type OverviewRequest struct {
	Input      string
	EndDate    string
	Currencies []string
	Stocks     []string
}

// Enricher provides currency and stock entries.
type Enricher interface {
	Rates(ctx context.Context, currencies []string) []models.RateEntry
	Stocks(ctx context.Context, symbols []string) []models.StockEntry
}

// Builder runs the report pipelines.
type Builder struct {
	loader   TableLoader
	agg      *aggregator.Aggregator
	enricher Enricher
	logger   logging.Logger
	newRunID func() string
}

// NewBuilder creates a Builder.
func NewBuilder(loader TableLoader, agg *aggregator.Aggregator, enricher Enricher, logger logging.Logger) *Builder {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Builder{
		loader:   loader,
		agg:      agg,
		enricher: enricher,
		logger:   logger,
		newRunID: uuid.NewString,
	}
}

// Build produces the overview: greeting, card totals over the whole table,
// the top operations of the month-to-date window, then currency rates and
// stock prices.
func (b *Builder) Build(ctx context.Context, req OverviewRequest) (models.Overview, error) {
	started := time.Now()
	log := b.logger.WithFields(
		logging.Field{Key: logging.FieldRunID, Value: b.newRunID()},
		logging.Field{Key: logging.FieldInputFile, Value: req.Input},
	)
	log.Info("Building overview")

	table, err := b.loader.Load(ctx, req.Input)
	if err != nil {
		return models.Overview{}, err
	}

	greeting := b.agg.Greeting()

	window, err := b.agg.FilterByDate(table, req.EndDate)
	if err != nil {
		log.WithError(err).Error("Failed to filter operations by date")
		return models.Overview{}, err
	}

	cards, err := b.agg.AggregateByCard(table)
	if err != nil {
		log.WithError(err).Error("Failed to aggregate spending by card")
		return models.Overview{}, err
	}

	top, err := b.agg.TopFive(window)
	if err != nil {
		log.WithError(err).Error("Failed to select top operations")
		return models.Overview{}, err
	}

	rates := b.enricher.Rates(ctx, req.Currencies)
	stocks := b.enricher.Stocks(ctx, req.Stocks)

	log.Info("Overview built",
		logging.Field{Key: "cards", Value: len(cards)},
		logging.Field{Key: "top_transactions", Value: len(top)},
		logging.Field{Key: "currency_rates", Value: len(rates)},
		logging.Field{Key: "stock_prices", Value: len(stocks)},
		logging.Field{Key: logging.FieldDuration, Value: time.Since(started).Milliseconds()})

	return Assemble(greeting, cards, top, rates, stocks), nil
}

// Spending loads input and returns the category spending over the rolling
// window ending at date.
func (b *Builder) Spending(ctx context.Context, input, category, date string) (models.CategorySpending, error) {
	log := b.logger.WithFields(
		logging.Field{Key: logging.FieldRunID, Value: b.newRunID()},
		logging.Field{Key: logging.FieldInputFile, Value: input},
		logging.Field{Key: logging.FieldCategory, Value: category},
	)

	table, err := b.loader.Load(ctx, input)
	if err != nil {
		return models.CategorySpending{}, err
	}

	result, err := b.agg.SpendingByCategory(table, category, date)
	if err != nil {
		log.WithError(err).Error("Failed to compute category spending")
		return models.CategorySpending{}, err
	}

	log.Info("Category spending computed", logging.Field{Key: "total", Value: result.Total.String()})
	return result, nil
}
