package finance

import (
	"time"

	"github.com/fadhilmp/usahaku-api/internal/domain/enum"
	"github.com/fadhilmp/usahaku-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

// PaymentCheck is the outcome of validating a payment choice against a grand
// total. Errors block submission; warnings are for the caller to surface and
// confirm with the user.
type PaymentCheck struct {
	Valid    bool
	Errors   []apperror.FieldError
	Warnings []string
}

// ValidatePayment enforces the down-payment and due-date invariants for the
// chosen payment status. Missing values are never defaulted here; a deferred
// payment without a due date is an error, even if the calling UI offers a
// default before submission.
func ValidatePayment(grandTotal decimal.Decimal, status enum.PaymentStatus, downPayment decimal.Decimal, dueDate *time.Time, txDate time.Time) PaymentCheck {
	var check PaymentCheck

	if !status.Valid() {
		check.Errors = append(check.Errors, apperror.FieldError{
			Field:   "payment_status",
			Message: "payment status must be Paid or Deferred",
		})
	}
	if downPayment.IsNegative() {
		check.Errors = append(check.Errors, apperror.FieldError{
			Field:   "down_payment",
			Message: "down payment must not be negative",
		})
	}
	if downPayment.GreaterThan(grandTotal) {
		check.Errors = append(check.Errors, apperror.FieldError{
			Field:   "down_payment",
			Message: "down payment must not exceed the grand total",
		})
	}

	switch status {
	case enum.PaymentStatusPaid:
		// A paid transaction settles the full amount; a nonzero down payment
		// that disagrees with the grand total means the caller's form state
		// has drifted.
		if !downPayment.IsZero() && !downPayment.Equal(grandTotal) {
			check.Errors = append(check.Errors, apperror.FieldError{
				Field:   "down_payment",
				Message: "down payment must equal the grand total when status is Paid",
			})
		}
	case enum.PaymentStatusDeferred:
		if dueDate == nil {
			check.Errors = append(check.Errors, apperror.FieldError{
				Field:   "due_date",
				Message: "due date is required for deferred payment",
			})
		} else if dueDate.Truncate(24 * time.Hour).Before(txDate.Truncate(24 * time.Hour)) {
			check.Errors = append(check.Errors, apperror.FieldError{
				Field:   "due_date",
				Message: "due date must not be earlier than the transaction date",
			})
		}
		if downPayment.Equal(grandTotal) && grandTotal.IsPositive() {
			// Legal, but almost certainly means the user wanted Paid. The
			// status stays an explicit choice; the caller decides whether to
			// ask for confirmation.
			check.Warnings = append(check.Warnings, "down payment covers the full grand total; consider marking the transaction as Paid")
		}
	}

	check.Valid = len(check.Errors) == 0
	return check
}

// DeriveRemaining computes the outstanding balance. Remaining is always
// derived, never accepted as input, so it cannot drift from
// grandTotal - downPayment.
func DeriveRemaining(grandTotal decimal.Decimal, status enum.PaymentStatus, downPayment decimal.Decimal) decimal.Decimal {
	if status == enum.PaymentStatusPaid {
		return decimal.Zero
	}
	return grandTotal.Sub(downPayment)
}

// SettledDownPayment normalizes the stored down payment for a status. Paid
// transactions record the grand total as their down payment.
func SettledDownPayment(grandTotal decimal.Decimal, status enum.PaymentStatus, downPayment decimal.Decimal) decimal.Decimal {
	if status == enum.PaymentStatusPaid {
		return grandTotal
	}
	return downPayment
}
