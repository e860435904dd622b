package loader

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"bank-report/internal/logging"
	"bank-report/internal/models"
	"bank-report/internal/parsererror"

	"github.com/extrame/xls"
)

// xlsCharset is used for BIFF5 workbooks that carry no unicode strings.
const xlsCharset = "utf-8"

// oleSignature starts every compound document, BIFF workbooks included.
var oleSignature = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

func (l *Loader) loadXLS(filePath string) (table *models.Table, err error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("error opening XLS file: %w", err)
	}
	defer f.Close()

	if err := checkOLESignature(f, filePath); err != nil {
		return nil, err
	}

	// xls panics on some malformed workbooks.
	defer func() {
		if r := recover(); r != nil {
			table, err = nil, &parsererror.InvalidFormatError{
				FilePath:       filePath,
				ExpectedFormat: "XLS (BIFF) workbook",
				Msg:            fmt.Sprintf("malformed workbook: %v", r),
			}
		}
	}()

	wb, err := xls.OpenReader(f, xlsCharset)
	if err != nil {
		return nil, fmt.Errorf("error reading XLS file: %w", err)
	}
	if wb == nil || wb.NumSheets() == 0 {
		return nil, &parsererror.InvalidFormatError{
			FilePath:       filePath,
			ExpectedFormat: "XLS workbook with at least one sheet",
			Msg:            "workbook has no sheets",
		}
	}

	sheet, err := l.xlsSheet(wb)
	if err != nil {
		return nil, err
	}

	matrix := xlsMatrix(sheet)
	if len(matrix) == 0 {
		return nil, &parsererror.InvalidFormatError{
			FilePath:       filePath,
			ExpectedFormat: "sheet with a header row",
			Msg:            fmt.Sprintf("sheet %q is empty", sheet.Name),
		}
	}

	l.logger.Debug("Read XLS rows",
		logging.Field{Key: logging.FieldFile, Value: filePath},
		logging.Field{Key: "sheet", Value: sheet.Name},
		logging.Field{Key: logging.FieldCount, Value: len(matrix) - 1})

	header, records := recordsFromMatrix(matrix)
	return buildTable(filePath, header, records)
}

// checkOLESignature verifies the compound document header and rewinds f.
func checkOLESignature(f io.ReadSeeker, filePath string) error {
	head := make([]byte, len(oleSignature))
	if _, err := io.ReadFull(f, head); err != nil || !bytes.Equal(head, oleSignature) {
		return &parsererror.InvalidFormatError{
			FilePath:       filePath,
			ExpectedFormat: "XLS (BIFF) workbook",
			Msg:            "file is not a compound document",
		}
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("error rewinding XLS file: %w", err)
	}
	return nil
}

// xlsSheet returns the configured sheet, or the first one.
func (l *Loader) xlsSheet(wb *xls.WorkBook) (*xls.WorkSheet, error) {
	if l.opts.Sheet == "" {
		return wb.GetSheet(0), nil
	}
	for i := 0; i < wb.NumSheets(); i++ {
		if sheet := wb.GetSheet(i); sheet != nil && sheet.Name == l.opts.Sheet {
			return sheet, nil
		}
	}
	return nil, fmt.Errorf("sheet %q not found in workbook", l.opts.Sheet)
}

// xlsMatrix reads the sheet as text rows. Missing rows come back empty so
// row numbers in errors still match the spreadsheet.
func xlsMatrix(sheet *xls.WorkSheet) [][]string {
	if sheet == nil {
		return nil
	}
	matrix := make([][]string, 0, int(sheet.MaxRow)+1)
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheet.Row(i)
		if row == nil {
			matrix = append(matrix, nil)
			continue
		}
		cells := make([]string, row.LastCol())
		for c := row.FirstCol(); c < row.LastCol(); c++ {
			cells[c] = row.Col(c)
		}
		matrix = append(matrix, cells)
	}
	for len(matrix) > 0 && len(matrix[len(matrix)-1]) == 0 {
		matrix = matrix[:len(matrix)-1]
	}
	return matrix
}
