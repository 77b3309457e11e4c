package finance

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeLines_CollectsEveryOffense(t *testing.T) {
	_, errs := NormalizeLines([]LineCandidate{
		{Name: "", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(100)},
		{Name: "Teh botol", Quantity: decimal.Zero, UnitPrice: decimal.NewFromInt(-5)},
	})

	require.Len(t, errs, 3)
	assert.Equal(t, "items[0].name", errs[0].Field)
	assert.Equal(t, "items[1].quantity", errs[1].Field)
	assert.Equal(t, "items[1].unit_price", errs[2].Field)
}

func TestNormalizeLine_RoundsSubtotalPerLine(t *testing.T) {
	item, errs := NormalizeLine(LineCandidate{
		Name:      "Kain per meter",
		Quantity:  decimal.NewFromFloat(1.5),
		Unit:      "m",
		UnitPrice: decimal.NewFromInt(12345),
	}, "items[0]")

	require.Empty(t, errs)
	// 1.5 * 12345 = 18517.5, rounded half-up to whole rupiah.
	assert.True(t, item.Subtotal.Equal(decimal.NewFromInt(18518)), "subtotal = %s", item.Subtotal)
}

func TestMergeDuplicates_SumsSameProduct(t *testing.T) {
	productID := uuid.New()
	otherID := uuid.New()

	lines, errs := NormalizeLines([]LineCandidate{
		{ProductID: &productID, Name: "Kopi susu", Quantity: decimal.NewFromInt(3), UnitPrice: decimal.NewFromInt(15000)},
		{ProductID: &otherID, Name: "Roti bakar", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(12000)},
		{ProductID: &productID, Name: "Kopi susu", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(15000)},
	})
	require.Empty(t, errs)

	merged := MergeDuplicates(lines)

	require.Len(t, merged, 2)
	assert.Equal(t, "Kopi susu", merged[0].Name, "lowest-index ordering must be preserved")
	assert.True(t, merged[0].Quantity.Equal(decimal.NewFromInt(5)), "quantity = %s", merged[0].Quantity)
	assert.True(t, merged[0].Subtotal.Equal(decimal.NewFromInt(75000)))
	assert.Equal(t, "Roti bakar", merged[1].Name)
}

func TestMergeDuplicates_FreeFormLinesNeverMerge(t *testing.T) {
	lines, errs := NormalizeLines([]LineCandidate{
		{Name: "Jasa antar", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(10000)},
		{Name: "Jasa antar", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(10000)},
	})
	require.Empty(t, errs)

	assert.Len(t, MergeDuplicates(lines), 2)
}
