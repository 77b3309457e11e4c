package finance

import (
	"fmt"
	"strings"

	"github.com/fadhilmp/usahaku-api/pkg/apperror"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LineCandidate is a raw line entry as submitted by the caller, before
// normalization.
type LineCandidate struct {
	ProductID *uuid.UUID
	Name      string
	Quantity  decimal.Decimal
	Unit      string
	UnitPrice decimal.Decimal
}

// LineItem is a normalized, priced line. Subtotal is always
// round(quantity * unit price) in whole currency units.
type LineItem struct {
	ProductID *uuid.UUID
	Name      string
	Quantity  decimal.Decimal
	Unit      string
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}

// NormalizeLine validates a single candidate and prices it. All offenses are
// returned, not just the first, so a form can highlight every problem at once.
// The field prefix (e.g. "items[2]") is prepended to field names.
func NormalizeLine(c LineCandidate, fieldPrefix string) (LineItem, []apperror.FieldError) {
	var errs []apperror.FieldError

	name := strings.TrimSpace(c.Name)
	if name == "" {
		errs = append(errs, apperror.FieldError{
			Field:   fieldPrefix + ".name",
			Message: "product name is required",
		})
	}
	if !c.Quantity.IsPositive() {
		errs = append(errs, apperror.FieldError{
			Field:   fieldPrefix + ".quantity",
			Message: "quantity must be greater than zero",
		})
	}
	if c.UnitPrice.IsNegative() {
		errs = append(errs, apperror.FieldError{
			Field:   fieldPrefix + ".unit_price",
			Message: "unit price must not be negative",
		})
	}
	if len(errs) > 0 {
		return LineItem{}, errs
	}

	return LineItem{
		ProductID: c.ProductID,
		Name:      name,
		Quantity:  c.Quantity,
		Unit:      strings.TrimSpace(c.Unit),
		UnitPrice: c.UnitPrice,
		Subtotal:  RoundMoney(c.Quantity.Mul(c.UnitPrice)),
	}, nil
}

// NormalizeLines validates and prices every candidate, collecting the errors
// of all lines into one list.
func NormalizeLines(candidates []LineCandidate) ([]LineItem, []apperror.FieldError) {
	lines := make([]LineItem, 0, len(candidates))
	var errs []apperror.FieldError

	for i, c := range candidates {
		line, lineErrs := NormalizeLine(c, fmt.Sprintf("items[%d]", i))
		if len(lineErrs) > 0 {
			errs = append(errs, lineErrs...)
			continue
		}
		lines = append(lines, line)
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return lines, nil
}

// MergeDuplicates sums lines referencing the same product into a single line,
// keeping the position of the first occurrence for display. Lines without a
// product reference are free-form and never merged. Merged lines are repriced
// from the summed quantity and the first line's unit price.
func MergeDuplicates(lines []LineItem) []LineItem {
	merged := make([]LineItem, 0, len(lines))
	index := make(map[uuid.UUID]int)

	for _, line := range lines {
		if line.ProductID == nil {
			merged = append(merged, line)
			continue
		}
		if at, seen := index[*line.ProductID]; seen {
			merged[at].Quantity = merged[at].Quantity.Add(line.Quantity)
			merged[at].Subtotal = RoundMoney(merged[at].Quantity.Mul(merged[at].UnitPrice))
			continue
		}
		index[*line.ProductID] = len(merged)
		merged = append(merged, line)
	}

	return merged
}
