package finance

import (
	"fmt"

	"github.com/fadhilmp/usahaku-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// TaxRatePercent is the statutory PPN rate applied when tax is enabled on a
// transaction. It is not user-editable.
var TaxRatePercent = decimal.NewFromInt(11)

// CashAlertMultiplier is the suggested cash buffer expressed as a multiple of
// the average monthly operational cost. Consumed by the dashboard service.
var CashAlertMultiplier = decimal.NewFromInt(2)

// withholdingRates maps each named PPh preset to its fixed percentage.
var withholdingRates = map[enum.WithholdingPreset]decimal.Decimal{
	enum.WithholdingNone:  decimal.Zero,
	enum.WithholdingFinal: decimal.NewFromFloat(0.5),
	enum.WithholdingPPh22: decimal.NewFromFloat(1.5),
	enum.WithholdingPPh23: decimal.NewFromInt(2),
}

// WithholdingRate resolves a preset to the percentage the calculator applies.
// Custom uses the caller-supplied percentage, which must be within [0, 100];
// for every other preset the custom value is ignored.
func WithholdingRate(preset enum.WithholdingPreset, customPercent decimal.Decimal) (decimal.Decimal, error) {
	if rate, ok := withholdingRates[preset]; ok {
		return rate, nil
	}
	if preset != enum.WithholdingCustom {
		return decimal.Zero, fmt.Errorf("unknown withholding preset %d", int(preset))
	}
	if customPercent.IsNegative() || customPercent.GreaterThan(oneHundred) {
		return decimal.Zero, fmt.Errorf("custom withholding percent %s out of range [0, 100]", customPercent)
	}
	return customPercent, nil
}
