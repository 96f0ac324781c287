package pricing

import (
	"testing"

	"github.com/Lixing-Zhang/order-intake/internal/order"
)

func TestCompute(t *testing.T) {
	tests := []struct {
		name       string
		items      []order.LineItem
		taxPercent float64
		want       Totals
	}{
		{
			name: "gift card excluded from tax base",
			items: []order.LineItem{
				{Name: "Gift Card", UnitPrice: 50, Quantity: 1},
				{Name: "Widget", UnitPrice: 10, Quantity: 2},
			},
			taxPercent: 10,
			want:       Totals{Subtotal: 70, TaxableSubtotal: 20, TaxAmount: 2, GrandTotal: 72},
		},
		{
			name: "no tax",
			items: []order.LineItem{
				{Name: "Widget", UnitPrice: 10, Quantity: 3},
			},
			taxPercent: 0,
			want:       Totals{Subtotal: 30, TaxableSubtotal: 30, TaxAmount: 0, GrandTotal: 30},
		},
		{
			name: "only gift cards",
			items: []order.LineItem{
				{Name: "eGift-Card $25", UnitPrice: 25, Quantity: 2},
			},
			taxPercent: 20,
			want:       Totals{Subtotal: 50, TaxableSubtotal: 0, TaxAmount: 0, GrandTotal: 50},
		},
		{
			name: "fractional quantity",
			items: []order.LineItem{
				{Name: "Coffee beans (lb)", UnitPrice: 16, Quantity: 1.5},
			},
			taxPercent: 50,
			want:       Totals{Subtotal: 24, TaxableSubtotal: 24, TaxAmount: 12, GrandTotal: 36},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compute(tt.items, tt.taxPercent)
			if got != tt.want {
				t.Errorf("Compute() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestCompute_Idempotent(t *testing.T) {
	items := []order.LineItem{
		{Name: "Widget", UnitPrice: 9.99, Quantity: 3},
		{Name: "GIFT CARD", UnitPrice: 20, Quantity: 1},
	}

	first := Compute(items, 7.5)
	second := Compute(items, 7.5)

	if first != second {
		t.Errorf("Compute() not deterministic: %+v vs %+v", first, second)
	}
}

func TestIsTaxExempt(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"Gift Card", true},
		{"gift card - birthday", true},
		{"GIFTCARD", true},
		{"Holiday gift-card", true},
		{"Gift wrap", false},
		{"Card game", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsTaxExempt(order.LineItem{Name: tt.name}); got != tt.want {
				t.Errorf("IsTaxExempt(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}
