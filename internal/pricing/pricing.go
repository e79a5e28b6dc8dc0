package pricing

import (
	"github.com/shopspring/decimal"
)

// LineTotal computes (basePrice + surcharge) * quantity for a single draft line.
// An unknown or missing size id contributes a zero surcharge rather than an error.
func LineTotal(basePrice decimal.Decimal, surcharges map[string]decimal.Decimal, sizeID string, quantity int) decimal.Decimal {
	surcharge, ok := surcharges[sizeID]
	if !ok {
		surcharge = decimal.Zero
	}

	return basePrice.Add(surcharge).Mul(decimal.NewFromInt(int64(quantity)))
}

// Summary holds the named inputs of an order total. The storefront computes the
// final figure two different ways in two different views, so both formulas are
// exposed and the caller picks the one its view documents.
type Summary struct {
	Subtotal decimal.Decimal
	Discount decimal.Decimal
	TaxRate  decimal.Decimal
}

// Tax returns subtotal * taxRate.
func (s Summary) Tax() decimal.Decimal {
	return s.Subtotal.Mul(s.TaxRate)
}

// TotalAfterDiscount returns subtotal - discount. Used by the payment view.
func (s Summary) TotalAfterDiscount() decimal.Decimal {
	return s.Subtotal.Sub(s.Discount)
}

// TotalWithTax returns subtotal * (1 + taxRate). Used by the manager
// order-details view. Not reconciled with TotalAfterDiscount on purpose.
func (s Summary) TotalWithTax() decimal.Decimal {
	return s.Subtotal.Add(s.Tax())
}

// Increment raises a quantity by one. A max of 0 means unlimited.
func Increment(quantity, max int) int {
	if max > 0 && quantity >= max {
		return max
	}

	return quantity + 1
}

// Decrement lowers a quantity by one, never going below 1.
func Decrement(quantity int) int {
	if quantity <= 1 {
		return 1
	}

	return quantity - 1
}

// ClampQuantity normalizes an arbitrary quantity into the allowed range.
func ClampQuantity(quantity, max int) int {
	if quantity < 1 {
		return 1
	}
	if max > 0 && quantity > max {
		return max
	}

	return quantity
}
