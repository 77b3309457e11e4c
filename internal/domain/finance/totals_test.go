package finance

import (
	"testing"

	"github.com/fadhilmp/usahaku-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func line(name string, qty, price int64) LineItem {
	item, errs := NormalizeLine(LineCandidate{
		Name:      name,
		Quantity:  decimal.NewFromInt(qty),
		UnitPrice: decimal.NewFromInt(price),
	}, "items[0]")
	if len(errs) > 0 {
		panic("invalid test line")
	}
	return item
}

func TestComputeTotals_FullCascade(t *testing.T) {
	// subtotal 100,000; 10% discount; 11% tax; 2% withholding; 5,000 fees.
	lines := []LineItem{line("Kopi bubuk", 4, 25000)}

	totals, warnings := ComputeTotals(
		lines,
		DiscountSpec{Mode: enum.DiscountModePercent, Value: decimal.NewFromInt(10)},
		true,
		decimal.NewFromInt(2),
		[]Fee{{Name: "Ongkir", Amount: decimal.NewFromInt(5000)}},
	)

	assert.Empty(t, warnings)
	assert.True(t, totals.Subtotal.Equal(decimal.NewFromInt(100000)), "subtotal = %s", totals.Subtotal)
	assert.True(t, totals.DiscountAmount.Equal(decimal.NewFromInt(10000)), "discount = %s", totals.DiscountAmount)
	assert.True(t, totals.TaxAmount.Equal(decimal.NewFromInt(9900)), "tax = %s", totals.TaxAmount)
	assert.True(t, totals.WithholdingAmount.Equal(decimal.NewFromInt(1800)), "withholding = %s", totals.WithholdingAmount)
	assert.True(t, totals.OtherFeesTotal.Equal(decimal.NewFromInt(5000)), "fees = %s", totals.OtherFeesTotal)
	assert.True(t, totals.GrandTotal.Equal(decimal.NewFromInt(103100)), "grand total = %s", totals.GrandTotal)
}

func TestComputeTotals_SubtotalAdditivity(t *testing.T) {
	lines := []LineItem{
		line("Gula", 3, 14000),
		line("Tepung terigu", 7, 12500),
		line("Minyak goreng", 2, 18000),
	}

	want := decimal.Zero
	for _, l := range lines {
		want = want.Add(l.Subtotal)
	}

	totals, warnings := ComputeTotals(lines, DiscountSpec{}, false, decimal.Zero, nil)
	assert.Empty(t, warnings)
	assert.True(t, totals.Subtotal.Equal(want))
	assert.True(t, totals.GrandTotal.Equal(want))
}

func TestComputeTotals_Deterministic(t *testing.T) {
	lines := []LineItem{line("Beras", 7, 13333)}
	discount := DiscountSpec{Mode: enum.DiscountModePercent, Value: decimal.NewFromFloat(7.5)}
	wh := decimal.NewFromFloat(1.5)
	fees := []Fee{{Name: "Admin", Amount: decimal.NewFromInt(2500)}}

	first, _ := ComputeTotals(lines, discount, true, wh, fees)
	second, _ := ComputeTotals(lines, discount, true, wh, fees)

	assert.True(t, first.GrandTotal.Equal(second.GrandTotal))
	assert.True(t, first.TaxAmount.Equal(second.TaxAmount))
	assert.True(t, first.WithholdingAmount.Equal(second.WithholdingAmount))
}

func TestComputeTotals_EmptyLinesFeesOnly(t *testing.T) {
	totals, warnings := ComputeTotals(nil, DiscountSpec{}, false, decimal.Zero,
		[]Fee{{Name: "Biaya layanan", Amount: decimal.NewFromInt(7500)}})

	assert.Empty(t, warnings)
	assert.True(t, totals.Subtotal.IsZero())
	assert.True(t, totals.GrandTotal.Equal(decimal.NewFromInt(7500)))
}

func TestComputeTotals_NegativeGrandTotalClampedWithWarning(t *testing.T) {
	lines := []LineItem{line("Jasa desain", 1, 1000)}

	totals, warnings := ComputeTotals(lines, DiscountSpec{}, false, decimal.NewFromInt(100),
		nil)

	// withholding equals the taxable base; now push it over with a discount
	// mode that leaves the base intact but uses a custom percent > 100 via a
	// fee-free setup. 100% withholding yields 0, not negative.
	assert.True(t, totals.GrandTotal.IsZero())
	assert.Empty(t, warnings)

	totals, warnings = ComputeTotals(lines, DiscountSpec{}, false, decimal.NewFromInt(150), nil)
	assert.True(t, totals.GrandTotal.IsZero(), "grand total must be clamped to 0")
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "withholding")
}

func TestComputeTotals_DiscountClamping(t *testing.T) {
	lines := []LineItem{line("Pulsa", 1, 50000)}

	totals, warnings := ComputeTotals(lines,
		DiscountSpec{Mode: enum.DiscountModeAmount, Value: decimal.NewFromInt(80000)},
		false, decimal.Zero, nil)

	assert.True(t, totals.DiscountAmount.Equal(decimal.NewFromInt(50000)))
	assert.True(t, totals.GrandTotal.IsZero())
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "discount")
}

func TestComputeTotals_FixedDiscountAmount(t *testing.T) {
	lines := []LineItem{line("Sabun", 10, 4000)}

	totals, warnings := ComputeTotals(lines,
		DiscountSpec{Mode: enum.DiscountModeAmount, Value: decimal.NewFromInt(5000)},
		false, decimal.Zero, nil)

	assert.Empty(t, warnings)
	assert.True(t, totals.DiscountAmount.Equal(decimal.NewFromInt(5000)))
	assert.True(t, totals.GrandTotal.Equal(decimal.NewFromInt(35000)))
}
