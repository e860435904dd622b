package loader

import (
	"strings"

	"bank-report/internal/currencyutils"
	"bank-report/internal/models"
	"bank-report/internal/parsererror"

	"github.com/shopspring/decimal"
)

// rawRecord is one export row before amount parsing.
type rawRecord struct {
	OperationDate   string `csv:"Дата операции"`
	PaymentDate     string `csv:"Дата платежа"`
	CardNumber      string `csv:"Номер карты"`
	OperationAmount string `csv:"Сумма операции"`
	PaymentAmount   string `csv:"Сумма платежа"`
	Category        string `csv:"Категория"`
	Description     string `csv:"Описание"`
}

func (r rawRecord) blank() bool {
	return strings.TrimSpace(r.OperationDate+r.PaymentDate+r.CardNumber+
		r.OperationAmount+r.PaymentAmount+r.Category+r.Description) == ""
}

func (r *rawRecord) set(c models.Column, value string) {
	switch c {
	case models.ColumnOperationDate:
		r.OperationDate = value
	case models.ColumnPaymentDate:
		r.PaymentDate = value
	case models.ColumnCardNumber:
		r.CardNumber = value
	case models.ColumnOperationAmount:
		r.OperationAmount = value
	case models.ColumnPaymentAmount:
		r.PaymentAmount = value
	case models.ColumnCategory:
		r.Category = value
	case models.ColumnDescription:
		r.Description = value
	}
}

func cleanHeader(h string) string {
	return strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
}

// knownColumns maps a header row to the recognised columns it declares.
func knownColumns(header []string) []models.Column {
	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[cleanHeader(h)] = true
	}
	var cols []models.Column
	for _, c := range models.KnownColumns {
		if present[string(c)] {
			cols = append(cols, c)
		}
	}
	return cols
}

// recordsFromMatrix maps a value matrix whose first row is the header.
// Short rows are padded with empty cells.
func recordsFromMatrix(matrix [][]string) (header []string, records []rawRecord) {
	if len(matrix) == 0 {
		return nil, nil
	}
	header = matrix[0]
	index := make(map[models.Column]int, len(header))
	for i, h := range header {
		c := models.Column(cleanHeader(h))
		if _, seen := index[c]; !seen {
			index[c] = i
		}
	}

	records = make([]rawRecord, 0, len(matrix)-1)
	for _, row := range matrix[1:] {
		var rec rawRecord
		for _, c := range models.KnownColumns {
			if i, ok := index[c]; ok {
				rec.set(c, safeGet(row, i))
			}
		}
		records = append(records, rec)
	}
	return header, records
}

func safeGet(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// buildTable parses amounts and skips blank rows. Row numbers count the
// header as row 1.
func buildTable(source string, header []string, records []rawRecord) (*models.Table, error) {
	rows := make([]models.Transaction, 0, len(records))
	for i, rec := range records {
		if rec.blank() {
			continue
		}
		rowNum := i + 2

		opAmount, err := parseAmountCell(source, models.ColumnOperationAmount, rec.OperationAmount, rowNum)
		if err != nil {
			return nil, err
		}
		payAmount, err := parseAmountCell(source, models.ColumnPaymentAmount, rec.PaymentAmount, rowNum)
		if err != nil {
			return nil, err
		}

		rows = append(rows, models.Transaction{
			Row:             rowNum,
			OperationDate:   strings.TrimSpace(rec.OperationDate),
			PaymentDate:     strings.TrimSpace(rec.PaymentDate),
			CardNumber:      strings.TrimSpace(rec.CardNumber),
			OperationAmount: opAmount,
			PaymentAmount:   payAmount,
			Category:        strings.TrimSpace(rec.Category),
			Description:     strings.TrimSpace(rec.Description),
		})
	}
	return models.NewTable(knownColumns(header), rows), nil
}

func parseAmountCell(source string, column models.Column, value string, row int) (decimal.Decimal, error) {
	amount, err := currencyutils.ParseAmount(value)
	if err != nil {
		return amount, &parsererror.ParseError{
			Source: source,
			Field:  string(column),
			Value:  value,
			Row:    row,
			Err:    err,
		}
	}
	return amount, nil
}
