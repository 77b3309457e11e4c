package finance

import (
	"fmt"

	"github.com/fadhilmp/usahaku-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// DiscountSpec describes a transaction-level discount, either a percentage of
// the subtotal or a fixed amount.
type DiscountSpec struct {
	Mode  enum.DiscountMode
	Value decimal.Decimal
}

// Fee is an extra charge added after tax and withholding.
type Fee struct {
	Name   string
	Amount decimal.Decimal
}

// Totals is the result of the cascading total calculation. All values are in
// whole currency units.
type Totals struct {
	Subtotal          decimal.Decimal
	DiscountAmount    decimal.Decimal
	TaxAmount         decimal.Decimal
	WithholdingAmount decimal.Decimal
	OtherFeesTotal    decimal.Decimal
	GrandTotal        decimal.Decimal
}

// ComputeTotals combines line subtotals and the ordered adjustments into a
// grand total. The order is a business rule: withholding is computed on the
// taxable base (subtotal net of discount), not on the taxed amount.
//
// Returned warnings report every clamp that was applied; a clamp is never
// silent. The function is pure: identical inputs produce identical output.
func ComputeTotals(lines []LineItem, discount DiscountSpec, taxEnabled bool, withholdingPercent decimal.Decimal, fees []Fee) (Totals, []string) {
	var warnings []string

	subtotal := decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(line.Subtotal)
	}

	var discountAmount decimal.Decimal
	switch discount.Mode {
	case enum.DiscountModePercent:
		discountAmount = percentOf(subtotal, discount.Value)
	default:
		discountAmount = RoundMoney(discount.Value)
	}
	if discountAmount.IsNegative() {
		warnings = append(warnings, "discount was negative and has been clamped to 0")
		discountAmount = decimal.Zero
	}
	if discountAmount.GreaterThan(subtotal) {
		warnings = append(warnings, fmt.Sprintf("discount %s exceeds subtotal %s and has been clamped", discountAmount, subtotal))
		discountAmount = subtotal
	}

	taxableBase := subtotal.Sub(discountAmount)

	taxAmount := decimal.Zero
	if taxEnabled {
		taxAmount = percentOf(taxableBase, TaxRatePercent)
	}

	withholdingAmount := percentOf(taxableBase, withholdingPercent)

	otherFeesTotal := decimal.Zero
	for _, fee := range fees {
		if fee.Amount.IsNegative() {
			warnings = append(warnings, fmt.Sprintf("fee %q has a negative amount and has been ignored", fee.Name))
			continue
		}
		otherFeesTotal = otherFeesTotal.Add(RoundMoney(fee.Amount))
	}

	grandTotal := taxableBase.Add(taxAmount).Sub(withholdingAmount).Add(otherFeesTotal)
	if grandTotal.IsNegative() {
		warnings = append(warnings, fmt.Sprintf(
			"withholding %s exceeds taxable base plus tax; grand total clamped from %s to 0 (check the withholding percent)",
			withholdingAmount, grandTotal))
		grandTotal = decimal.Zero
	}
	grandTotal = RoundMoney(grandTotal)

	return Totals{
		Subtotal:          subtotal,
		DiscountAmount:    discountAmount,
		TaxAmount:         taxAmount,
		WithholdingAmount: withholdingAmount,
		OtherFeesTotal:    otherFeesTotal,
		GrandTotal:        grandTotal,
	}, warnings
}
