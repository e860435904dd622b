// Package loader reads a bank operations export into a models.Table.
//
// Three record sources are supported: CSV files, XLSX workbooks and Google
// Sheets ranges. All of them share header mapping and amount parsing, so a
// table looks the same whichever source produced it.
package loader

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"bank-report/internal/config"
	"bank-report/internal/fileutils"
	"bank-report/internal/logging"
	"bank-report/internal/models"
	"bank-report/internal/parsererror"
)

// Options selects and configures the record source.
type Options struct {
	Source          string
	Delimiter       rune
	Sheet           string
	SpreadsheetID   string
	Range           string
	CredentialsFile string
	CredentialsJSON string
}

// OptionsFromConfig maps the input and sheets configuration sections.
func OptionsFromConfig(cfg *config.Config) Options {
	delim := ','
	if r := []rune(cfg.Input.Delimiter); len(r) > 0 {
		delim = r[0]
	}
	return Options{
		Source:          cfg.Input.Source,
		Delimiter:       delim,
		Sheet:           cfg.Input.Sheet,
		SpreadsheetID:   cfg.Sheets.SpreadsheetID,
		Range:           cfg.Sheets.Range,
		CredentialsFile: cfg.Sheets.CredentialsFile,
		CredentialsJSON: cfg.Sheets.CredentialsJSON,
	}
}

// Loader loads operation tables from the configured source.
type Loader struct {
	opts   Options
	logger logging.Logger
	values ValuesReader
}

// New creates a Loader. A nil logger is replaced by a default logrus logger.
func New(opts Options, logger logging.Logger) *Loader {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	if opts.Source == "" {
		opts.Source = config.SourceAuto
	}
	if opts.Delimiter == 0 {
		opts.Delimiter = ','
	}
	if opts.Range == "" {
		opts.Range = "A1:O"
	}
	return &Loader{opts: opts, logger: logger}
}

// WithValuesReader sets the reader used for the sheets source instead of a
// Google Sheets client built from credentials.
func (l *Loader) WithValuesReader(r ValuesReader) *Loader {
	l.values = r
	return l
}

// Load reads input and returns the resulting table. For the sheets source
// input is a spreadsheet id; an empty input uses the configured one.
func (l *Loader) Load(ctx context.Context, input string) (*models.Table, error) {
	source, err := l.resolveSource(input)
	if err != nil {
		return nil, err
	}

	log := l.logger.WithFields(
		logging.Field{Key: logging.FieldInputFile, Value: input},
		logging.Field{Key: logging.FieldSource, Value: source},
	)
	log.Info("Loading operations")

	var table *models.Table
	switch source {
	case config.SourceCSV:
		table, err = l.loadCSV(input)
	case config.SourceXLSX:
		table, err = l.loadXLSX(input)
	case config.SourceXLS:
		table, err = l.loadXLS(input)
	case config.SourceSheets:
		table, err = l.loadSheets(ctx, input)
	default:
		err = fmt.Errorf("unsupported input source: %s", source)
	}
	if err != nil {
		log.WithError(err).Error("Failed to load operations")
		return nil, err
	}

	log.Info("Loaded operations", logging.Field{Key: logging.FieldCount, Value: table.Len()})
	return table, nil
}

func (l *Loader) resolveSource(input string) (string, error) {
	if l.opts.Source != config.SourceAuto {
		return l.opts.Source, nil
	}

	switch strings.ToLower(filepath.Ext(input)) {
	case ".csv", ".txt":
		return config.SourceCSV, nil
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		return config.SourceXLSX, nil
	case ".xls":
		return config.SourceXLS, nil
	case "":
		if input == "" && l.opts.SpreadsheetID != "" {
			return config.SourceSheets, nil
		}
		if input != "" && !fileutils.FileExists(input) {
			return config.SourceSheets, nil
		}
	}

	return "", &parsererror.InvalidFormatError{
		FilePath:       input,
		ExpectedFormat: ".csv, .xlsx, .xls or a Google Sheets spreadsheet id",
		Msg:            "cannot determine input source",
	}
}
