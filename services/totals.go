package services

import (
	"errors"
	"fmt"

	"jewelbill-backend/models"

	"github.com/shopspring/decimal"
)

// Business failures callers can match on programmatically.
var (
	ErrNoItems        = errors.New("invoice must contain at least one item")
	ErrNegativeValue  = errors.New("item weight and rate cannot be negative")
	ErrAmountMismatch = errors.New("submitted amount does not match weight times rate")
	ErrTotalsMismatch = errors.New("submitted totals do not match computed totals")
)

// ValidationError wraps a sentinel error with item-level detail.
type ValidationError struct {
	Err     error
	Details string
}

func (e *ValidationError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Totals are the derived monetary fields of an invoice. All three values are
// rounded to 2 decimal places.
type Totals struct {
	Subtotal   decimal.Decimal
	TaxAmount  decimal.Decimal
	GrandTotal decimal.Decimal
}

var oneHundred = decimal.NewFromInt(100)

// ItemAmount computes a line item's amount: weight times rate, rounded to
// 2 decimal places (half away from zero).
func ItemAmount(weight, unitRate decimal.Decimal) decimal.Decimal {
	return weight.Mul(unitRate).Round(2)
}

// CalculateTotals derives subtotal, tax and grand total from the item
// amounts. Item amounts are already exact 2-decimal values, so the sum is
// exact; the tax is computed at full precision and rounded exactly once.
// An empty item list yields three zeros.
func CalculateTotals(items []models.InvoiceItem, taxRatePercent decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.Amount)
	}

	taxAmount := subtotal.Mul(taxRatePercent).Div(oneHundred).Round(2)

	return Totals{
		Subtotal:   subtotal.Round(2),
		TaxAmount:  taxAmount,
		GrandTotal: subtotal.Add(taxAmount).Round(2),
	}
}

// ValidateItems enforces the item invariants: a non-empty list, non-negative
// weights and rates, and amount == round2(weight * rate) for every item.
func ValidateItems(items []models.InvoiceItem) error {
	if len(items) == 0 {
		return ErrNoItems
	}
	for i, item := range items {
		if item.Weight.IsNegative() || item.UnitRate.IsNegative() {
			return &ValidationError{Err: ErrNegativeValue, Details: fmt.Sprintf("item %d", i+1)}
		}
		if !item.Amount.Equal(ItemAmount(item.Weight, item.UnitRate)) {
			return &ValidationError{Err: ErrAmountMismatch, Details: fmt.Sprintf("item %d", i+1)}
		}
	}
	return nil
}
