package loader

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"bank-report/internal/logging"
	"bank-report/internal/models"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

// ValuesReader returns the cell values of a spreadsheet range.
type ValuesReader interface {
	ReadValues(ctx context.Context, spreadsheetID, rng string) ([][]interface{}, error)
}

// SheetsClient reads ranges through the Google Sheets API.
type SheetsClient struct {
	svc *gsheet.Service
}

var _ ValuesReader = (*SheetsClient)(nil)

// NewSheetsClient creates a read-only Sheets client with service account
// credentials, given inline or as a file path. Extra client options are
// appended after the credentials.
func NewSheetsClient(ctx context.Context, credentialsJSON, credentialsFile string, opts ...goption.ClientOption) (*SheetsClient, error) {
	var creds []byte
	switch {
	case strings.TrimSpace(credentialsJSON) != "":
		creds = []byte(credentialsJSON)
	case strings.TrimSpace(credentialsFile) != "":
		data, err := os.ReadFile(credentialsFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		creds = data
	}

	clientOpts := []goption.ClientOption{goption.WithScopes(gsheet.SpreadsheetsReadonlyScope)}
	if creds != nil {
		clientOpts = append(clientOpts, goption.WithCredentialsJSON(creds))
	}
	clientOpts = append(clientOpts, opts...)

	svc, err := gsheet.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return &SheetsClient{svc: svc}, nil
}

// ReadValues implements ValuesReader.
func (c *SheetsClient) ReadValues(ctx context.Context, spreadsheetID, rng string) ([][]interface{}, error) {
	resp, err := c.svc.Spreadsheets.Values.Get(spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rng, err)
	}
	return resp.Values, nil
}

func (l *Loader) loadSheets(ctx context.Context, spreadsheetID string) (*models.Table, error) {
	if spreadsheetID == "" {
		spreadsheetID = l.opts.SpreadsheetID
	}
	if spreadsheetID == "" {
		return nil, errors.New("missing spreadsheet id (pass it as input or set sheets.spreadsheet_id)")
	}

	rng := l.opts.Range
	if l.opts.Sheet != "" && !strings.Contains(rng, "!") {
		rng = fmt.Sprintf("%s!%s", l.opts.Sheet, rng)
	}

	if l.values == nil {
		client, err := NewSheetsClient(ctx, l.opts.CredentialsJSON, l.opts.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("sheets service: %w", err)
		}
		l.values = client
	}

	values, err := l.values.ReadValues(ctx, spreadsheetID, rng)
	if err != nil {
		return nil, err
	}

	l.logger.Debug("Read spreadsheet range",
		logging.Field{Key: "spreadsheet_id", Value: spreadsheetID},
		logging.Field{Key: "range", Value: rng},
		logging.Field{Key: logging.FieldCount, Value: len(values)})

	header, records := recordsFromMatrix(toMatrix(values))
	return buildTable("sheets:"+spreadsheetID, header, records)
}

func toMatrix(values [][]interface{}) [][]string {
	out := make([][]string, len(values))
	for i, row := range values {
		cells := make([]string, len(row))
		for j, v := range row {
			if v != nil {
				cells[j] = fmt.Sprint(v)
			}
		}
		out[i] = cells
	}
	return out
}
