package finance

import (
	"testing"
	"time"

	"github.com/fadhilmp/usahaku-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePayment_DeferredRequiresDueDate(t *testing.T) {
	txDate := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	check := ValidatePayment(decimal.NewFromInt(100000), enum.PaymentStatusDeferred,
		decimal.NewFromInt(20000), nil, txDate)

	assert.False(t, check.Valid)
	require.Len(t, check.Errors, 1)
	assert.Equal(t, "due_date", check.Errors[0].Field)
}

func TestValidatePayment_DueDateBeforeTransactionDate(t *testing.T) {
	txDate := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	due := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)

	check := ValidatePayment(decimal.NewFromInt(50000), enum.PaymentStatusDeferred,
		decimal.Zero, &due, txDate)

	assert.False(t, check.Valid)
	require.Len(t, check.Errors, 1)
	assert.Equal(t, "due_date", check.Errors[0].Field)
}

func TestValidatePayment_DownPaymentBounds(t *testing.T) {
	txDate := time.Now()
	due := txDate.AddDate(0, 0, 14)
	grand := decimal.NewFromInt(80000)

	check := ValidatePayment(grand, enum.PaymentStatusDeferred, decimal.NewFromInt(-1), &due, txDate)
	assert.False(t, check.Valid)

	check = ValidatePayment(grand, enum.PaymentStatusDeferred, decimal.NewFromInt(80001), &due, txDate)
	assert.False(t, check.Valid)

	check = ValidatePayment(grand, enum.PaymentStatusDeferred, decimal.NewFromInt(30000), &due, txDate)
	assert.True(t, check.Valid)
	assert.Empty(t, check.Warnings)
}

func TestValidatePayment_FullDownPaymentWarnsButStaysDeferred(t *testing.T) {
	txDate := time.Now()
	due := txDate.AddDate(0, 0, 7)
	grand := decimal.NewFromInt(60000)

	check := ValidatePayment(grand, enum.PaymentStatusDeferred, grand, &due, txDate)

	assert.True(t, check.Valid, "full down payment on a deferred transaction is legal")
	require.Len(t, check.Warnings, 1)
	assert.Contains(t, check.Warnings[0], "Paid")
}

func TestDeriveRemaining_SplitConservation(t *testing.T) {
	grand := decimal.NewFromInt(103100)

	for _, dp := range []int64{0, 1, 50000, 103099, 103100} {
		downPayment := decimal.NewFromInt(dp)
		remaining := DeriveRemaining(grand, enum.PaymentStatusDeferred, downPayment)
		assert.True(t, downPayment.Add(remaining).Equal(grand),
			"down payment %s + remaining %s must equal grand total", downPayment, remaining)
	}

	assert.True(t, DeriveRemaining(grand, enum.PaymentStatusPaid, decimal.Zero).IsZero())
	assert.True(t, SettledDownPayment(grand, enum.PaymentStatusPaid, decimal.Zero).Equal(grand))
}
