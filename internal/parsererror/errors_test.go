package parsererror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseError(t *testing.T) {
	tests := []struct {
		name     string
		err      *ParseError
		expected string
	}{
		{
			name: "row bound parse error",
			err: &ParseError{
				Source: "loader",
				Field:  "Сумма платежа",
				Value:  "abc",
				Row:    3,
				Err:    errors.New("invalid decimal"),
			},
			expected: "loader: row 3: failed to parse Сумма платежа='abc': invalid decimal",
		},
		{
			name: "parse error without row",
			err: &ParseError{
				Source: "spending_by_category",
				Field:  "date",
				Value:  "",
				Err:    errors.New("empty date"),
			},
			expected: "spending_by_category: failed to parse date='': empty date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestParseError_Unwrap(t *testing.T) {
	originalErr := errors.New("original error")
	parseErr := &ParseError{
		Source: "loader",
		Field:  "amount",
		Value:  "invalid",
		Err:    originalErr,
	}

	assert.Equal(t, originalErr, parseErr.Unwrap())
	assert.True(t, errors.Is(parseErr, originalErr))
}

func TestMissingColumnError(t *testing.T) {
	err := &MissingColumnError{Operation: "aggregate_by_card", Column: "Номер карты"}
	assert.Equal(t, "aggregate_by_card: missing column 'Номер карты'", err.Error())

	wrapped := fmt.Errorf("cards: %w", err)
	var target *MissingColumnError
	require.True(t, errors.As(wrapped, &target))
	assert.Equal(t, "Номер карты", target.Column)
}

func TestInvalidFormatError(t *testing.T) {
	err := &InvalidFormatError{
		FilePath:       "operations.xls",
		ExpectedFormat: "csv, xlsx or a Google Sheets id",
		Msg:            "unsupported extension .xls",
	}
	assert.Equal(t,
		"invalid format in file 'operations.xls': unsupported extension .xls. Expected: csv, xlsx or a Google Sheets id",
		err.Error())
}

func TestFetchError(t *testing.T) {
	cause := errors.New("invalid access key")

	withStatus := &FetchError{Service: "exchangerates", Symbol: "USD", StatusCode: 401, Err: cause}
	assert.Equal(t, "exchangerates: lookup of USD failed with status 401: invalid access key", withStatus.Error())
	assert.True(t, errors.Is(withStatus, cause))

	withoutStatus := &FetchError{Service: "alphavantage", Symbol: "AAPL", Err: cause}
	assert.Equal(t, "alphavantage: lookup of AAPL failed: invalid access key", withoutStatus.Error())
}
