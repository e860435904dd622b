package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"

	"bank-report/internal/logging"
	"bank-report/internal/models"
	"bank-report/internal/parsererror"

	"github.com/gocarina/gocsv"
)

// headerCapture is a gocsv.CSVReader that normalizes and remembers the
// header row.
type headerCapture struct {
	*csv.Reader
	header []string
}

func (h *headerCapture) ReadAll() ([][]string, error) {
	records, err := h.Reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) > 0 {
		for i := range records[0] {
			records[0][i] = cleanHeader(records[0][i])
		}
		h.header = records[0]
	}
	return records, nil
}

func (l *Loader) loadCSV(filePath string) (*models.Table, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			l.logger.WithError(err).Warn("Failed to close file",
				logging.Field{Key: logging.FieldFile, Value: filePath})
		}
	}()

	reader := csv.NewReader(file)
	reader.Comma = l.opts.Delimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	capture := &headerCapture{Reader: reader}

	var records []rawRecord
	if err := gocsv.UnmarshalCSV(capture, &records); err != nil {
		if errors.Is(err, gocsv.ErrEmptyCSVFile) {
			return nil, &parsererror.InvalidFormatError{
				FilePath:       filePath,
				ExpectedFormat: "CSV with a header row",
				Msg:            "file is empty",
			}
		}
		return nil, fmt.Errorf("error parsing CSV file: %w", err)
	}

	l.logger.Debug("Read CSV records",
		logging.Field{Key: logging.FieldFile, Value: filePath},
		logging.Field{Key: logging.FieldDelimiter, Value: string(l.opts.Delimiter)},
		logging.Field{Key: logging.FieldCount, Value: len(records)})

	return buildTable(filePath, capture.header, records)
}

