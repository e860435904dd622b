// Package report assembles the overview document and writes report files.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"

	"bank-report/internal/fileutils"
	"bank-report/internal/logging"
	"bank-report/internal/models"
)

// DefaultSnapshotName is the snapshot file name used when none is given.
const DefaultSnapshotName = "reports"

const indent = "    "

// Assemble composes the overview. Nil lists become empty lists so that every
// array field is present in the output.
func Assemble(greeting string, cards []models.CardSummary, top []models.TopTransaction,
	rates []models.RateEntry, stocks []models.StockEntry) models.Overview {
	if cards == nil {
		cards = []models.CardSummary{}
	}
	if top == nil {
		top = []models.TopTransaction{}
	}
	if rates == nil {
		rates = []models.RateEntry{}
	}
	if stocks == nil {
		stocks = []models.StockEntry{}
	}
	return models.Overview{
		Greeting:        greeting,
		Cards:           cards,
		TopTransactions: top,
		CurrencyRates:   rates,
		StockPrices:     stocks,
	}
}

// Marshal renders the overview as indented JSON with non-ASCII text and
// HTML characters left as is.
func Marshal(overview models.Overview) ([]byte, error) {
	normalized := Assemble(overview.Greeting, overview.Cards, overview.TopTransactions,
		overview.CurrencyRates, overview.StockPrices)
	return encode(normalized)
}

// MarshalSpending renders one category spending result as indented JSON.
func MarshalSpending(result models.CategorySpending) ([]byte, error) {
	return encode(result)
}

func encode(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", indent)
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("failed to marshal JSON report: %w", err)
	}
	return buf.Bytes(), nil
}

// SaveSnapshot writes the category spending to filename as a one-row JSON
// array. An empty filename uses DefaultSnapshotName and .json is appended
// when missing. Write failures are logged, not returned. The resolved file
// name is returned either way.
func SaveSnapshot(result models.CategorySpending, filename string, logger logging.Logger) string {
	if filename == "" {
		filename = DefaultSnapshotName
	}
	filename = fileutils.WithJSONExtension(filename)

	log := logger.WithFields(
		logging.Field{Key: logging.FieldOutputFile, Value: filename},
		logging.Field{Key: logging.FieldCategory, Value: result.Category},
	)

	data, err := encode([]models.CategorySpending{result})
	if err != nil {
		log.WithError(err).Error("Failed to encode report snapshot")
		return filename
	}
	if err := fileutils.WriteFile(filename, data, models.PermissionReportFile); err != nil {
		log.WithError(err).Error("Failed to save report snapshot")
		return filename
	}

	log.Info("Report snapshot saved")
	return filename
}
