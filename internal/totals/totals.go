package totals

import (
	"strconv"
	"strings"

	"billcraft-cli/internal/model"
)

// Totals is the computed money breakdown for an invoice. It is derived state:
// recomputed from the current items and rates on every render, never stored.
type Totals struct {
	Subtotal      float64 `json:"subtotal"`
	TaxValue      float64 `json:"taxValue"`
	DiscountValue float64 `json:"discountValue"`
	Total         float64 `json:"total"`
}

// Compute returns the money breakdown:
//
//	subtotal = Σ price×quantity
//	taxValue = taxPercent/100 × subtotal
//	discountValue = discountPercent/100 × subtotal
//	total = subtotal + taxValue − discountValue
//
// Pure and side-effect free; there are no error conditions.
func Compute(items []model.LineItem, taxPercent, discountPercent float64) Totals {
	var subtotal float64
	for _, it := range items {
		subtotal += it.Price * float64(it.Quantity)
	}
	tax := taxPercent / 100 * subtotal
	discount := discountPercent / 100 * subtotal
	return Totals{
		Subtotal:      subtotal,
		TaxValue:      tax,
		DiscountValue: discount,
		Total:         subtotal + tax - discount,
	}
}

// ParsePrice parses free-form price input. Malformed input counts as 0
// rather than failing: form fields feed this directly and an unparseable
// price must not block the edit.
func ParsePrice(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}

// ParseQuantity parses free-form quantity input; malformed input counts as 1.
func ParseQuantity(s string) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 1
	}
	return v
}

// ParsePercent parses a tax/discount percentage; malformed input counts as 0.
func ParsePercent(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}
