package models

import (
	"errors"
	"testing"
	"time"

	"bank-report/internal/parsererror"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransaction_ParseOperationDate(t *testing.T) {
	tx := Transaction{Row: 2, OperationDate: "31.12.2021 16:44:00"}

	got, err := tx.ParseOperationDate(time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2021, 12, 31, 16, 44, 0, 0, time.UTC), got)

	tx.OperationDate = "31.12.2021"
	_, err = tx.ParseOperationDate(time.UTC)
	var parseErr *parsererror.ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, string(ColumnOperationDate), parseErr.Field)
	assert.Equal(t, 2, parseErr.Row)
}

func TestTransaction_ParsePaymentDate(t *testing.T) {
	tests := []struct {
		name  string
		value string
		ok    bool
	}{
		{"dotted", "31.12.2021", true},
		{"dotted with time", "31.12.2021 00:00:00", true},
		{"dashed", "31-12-2021", true},
		{"garbage", "вчера", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Transaction{PaymentDate: tc.value}.ParsePaymentDate(time.UTC)
			if !tc.ok {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, time.Date(2021, 12, 31, 0, 0, 0, 0, time.UTC), got)
		})
	}
}

func TestTransaction_HasPaymentDate(t *testing.T) {
	assert.False(t, Transaction{}.HasPaymentDate())
	assert.False(t, Transaction{PaymentDate: "  "}.HasPaymentDate())
	assert.True(t, Transaction{PaymentDate: "01.02.2022"}.HasPaymentDate())
}

func TestTransaction_LastDigits(t *testing.T) {
	assert.Equal(t, "5678", Transaction{CardNumber: "1234567812345678"}.LastDigits())
	assert.Equal(t, "5814", Transaction{CardNumber: "*5814"}.LastDigits())
	assert.Equal(t, "123", Transaction{CardNumber: "123"}.LastDigits())
	assert.Equal(t, "", Transaction{}.LastDigits())
}

func TestTransaction_IsSpending(t *testing.T) {
	assert.True(t, Transaction{PaymentAmount: decimal.NewFromInt(-1)}.IsSpending())
	assert.False(t, Transaction{PaymentAmount: decimal.Zero}.IsSpending())
	assert.False(t, Transaction{PaymentAmount: decimal.NewFromInt(3000)}.IsSpending())
}
