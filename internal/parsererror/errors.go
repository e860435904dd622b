// Package parsererror defines the typed errors returned by the loaders,
// aggregators and enrichment clients.
package parsererror

import "fmt"

// ParseError represents a value that could not be parsed.
// Row is the 1-based data row in the source, or 0 when not row-bound.
type ParseError struct {
	Source string
	Field  string
	Value  string
	Row    int
	Err    error
}

func (e *ParseError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("%s: row %d: failed to parse %s='%s': %v",
			e.Source, e.Row, e.Field, e.Value, e.Err)
	}
	return fmt.Sprintf("%s: failed to parse %s='%s': %v",
		e.Source, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// MissingColumnError is returned by an operation that needs a column the
// loaded table does not have.
type MissingColumnError struct {
	Operation string
	Column    string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("%s: missing column '%s'", e.Operation, e.Column)
}

// InvalidFormatError represents an input that does not match any supported
// source format.
type InvalidFormatError struct {
	FilePath       string
	ExpectedFormat string
	Msg            string
}

func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("invalid format in file '%s': %s. Expected: %s",
		e.FilePath, e.Msg, e.ExpectedFormat)
}

// FetchError represents a failed lookup against a remote rate or price service.
// StatusCode is 0 when no HTTP response was received.
type FetchError struct {
	Service    string
	Symbol     string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: lookup of %s failed with status %d: %v",
			e.Service, e.Symbol, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: lookup of %s failed: %v", e.Service, e.Symbol, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
