package pricing

import (
	"regexp"

	"github.com/Lixing-Zhang/order-intake/internal/order"
)

// giftCardPattern matches line items that are exempt from tax
var giftCardPattern = regexp.MustCompile(`(?i)gift[\s-]*card`)

// Totals represents the server-side pricing breakdown for an order
type Totals struct {
	Subtotal        float64 `json:"subtotal"`
	TaxableSubtotal float64 `json:"taxableSubtotal"`
	TaxAmount       float64 `json:"taxAmount"`
	GrandTotal      float64 `json:"grandTotal"`
}

// IsTaxExempt reports whether the item is excluded from the tax base
func IsTaxExempt(item order.LineItem) bool {
	return giftCardPattern.MatchString(item.Name)
}

// LineTotal returns unit price times quantity
func LineTotal(item order.LineItem) float64 {
	return item.UnitPrice * item.Quantity
}

// Compute calculates order totals from the line items and tax percentage.
// Tax applies to the taxable subset only, but the grand total is built on
// the full subtotal, so gift cards count toward the total untaxed.
func Compute(items []order.LineItem, taxPercent float64) Totals {
	var subtotal, taxable float64
	for _, item := range items {
		line := LineTotal(item)
		subtotal += line
		if !IsTaxExempt(item) {
			taxable += line
		}
	}

	tax := taxable * (taxPercent / 100)

	return Totals{
		Subtotal:        subtotal,
		TaxableSubtotal: taxable,
		TaxAmount:       tax,
		GrandTotal:      subtotal + tax,
	}
}
