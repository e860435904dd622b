package loader

import (
	"fmt"

	"bank-report/internal/logging"
	"bank-report/internal/models"
	"bank-report/internal/parsererror"

	"github.com/xuri/excelize/v2"
)

func (l *Loader) loadXLSX(filePath string) (*models.Table, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error opening XLSX file: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			l.logger.WithError(err).Warn("Failed to close workbook",
				logging.Field{Key: logging.FieldFile, Value: filePath})
		}
	}()

	sheet := l.opts.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, &parsererror.InvalidFormatError{
				FilePath:       filePath,
				ExpectedFormat: "XLSX workbook with at least one sheet",
				Msg:            "workbook has no sheets",
			}
		}
		sheet = sheets[0]
	}

	matrix, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("error reading sheet %q: %w", sheet, err)
	}
	if len(matrix) == 0 {
		return nil, &parsererror.InvalidFormatError{
			FilePath:       filePath,
			ExpectedFormat: "sheet with a header row",
			Msg:            fmt.Sprintf("sheet %q is empty", sheet),
		}
	}

	l.logger.Debug("Read XLSX rows",
		logging.Field{Key: logging.FieldFile, Value: filePath},
		logging.Field{Key: "sheet", Value: sheet},
		logging.Field{Key: logging.FieldCount, Value: len(matrix) - 1})

	header, records := recordsFromMatrix(matrix)
	return buildTable(filePath, header, records)
}
