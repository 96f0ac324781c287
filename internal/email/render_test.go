package email

import (
	"strings"
	"testing"
	"time"

	"github.com/Lixing-Zhang/order-intake/internal/money"
	"github.com/Lixing-Zhang/order-intake/internal/order"
	"github.com/Lixing-Zhang/order-intake/internal/pricing"
)

func testSubmission() Submission {
	payload := order.Payload{
		Customer: order.Customer{
			Name:      "Ada Lovelace",
			Email:     "ada@example.com",
			Phone:     "555-0100",
			OrderDate: "2024-05-01",
		},
		Items: []order.LineItem{
			{Name: "Gift Card", UnitPrice: 50, Quantity: 1},
			{Name: "Widget", UnitPrice: 10, Quantity: 2},
		},
		TaxPercent: 10,
	}

	return Submission{
		Reference:  "ref-123",
		ReceivedAt: time.Date(2024, 5, 1, 15, 4, 5, 0, time.UTC),
		Payload:    payload,
		Totals:     pricing.Compute(payload.Items, payload.TaxPercent),
	}
}

func newTestRenderer(brand Brand) *Renderer {
	return NewRenderer(money.MustFormatter(money.DefaultCurrency), brand)
}

func TestRenderer_Subjects(t *testing.T) {
	r := newTestRenderer(Brand{})
	s := testSubmission()

	if got, want := r.MerchantSubject(s), "New Order from Ada Lovelace — $72.00"; got != want {
		t.Errorf("MerchantSubject() = %q, want %q", got, want)
	}
	if got, want := r.CustomerSubject(s), "We received your order — New Order from Ada Lovelace — $72.00"; got != want {
		t.Errorf("CustomerSubject() = %q, want %q", got, want)
	}
}

func TestRenderer_MerchantText(t *testing.T) {
	r := newTestRenderer(Brand{})

	want := strings.Join([]string{
		"New Order",
		"Reference: ref-123",
		"Customer: Ada Lovelace",
		"Email: ada@example.com",
		"Phone: 555-0100",
		"Order Date: 2024-05-01",
		"- Gift Card x1 @ $50.00 = $50.00",
		"- Widget x2 @ $10.00 = $20.00",
		"Subtotal: $70.00",
		"Tax (10%): $2.00",
		"Grand Total: $72.00",
	}, "\n")

	if got := r.MerchantText(testSubmission()); got != want {
		t.Errorf("MerchantText() =\n%s\nwant\n%s", got, want)
	}
}

func TestRenderer_MerchantText_NoBlankLines(t *testing.T) {
	r := newTestRenderer(Brand{})
	s := testSubmission()
	s.Payload.Customer.Phone = ""
	s.Payload.Customer.OrderDate = ""

	for i, line := range strings.Split(r.MerchantText(s), "\n") {
		if strings.TrimSpace(line) == "" {
			t.Errorf("MerchantText() line %d is blank", i+1)
		}
	}
}

func TestRenderer_MerchantHTML(t *testing.T) {
	r := newTestRenderer(Brand{})
	got := r.MerchantHTML(testSubmission())

	for _, want := range []string{
		"<h2 style=\"margin:0 0 6px;\">New Order</h2>",
		"Submitted on May 1, 2024, 3:04:05 PM UTC",
		"<strong>Name:</strong> Ada Lovelace",
		"<strong>Phone:</strong> 555-0100",
		"<strong>Order Date:</strong> 2024-05-01",
		">Widget</td>",
		">$20.00</td>",
		"Tax (10%)",
		"<strong>$72.00</strong>",
		"Reference: ref-123",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("MerchantHTML() missing %q", want)
		}
	}

	if strings.Contains(got, "Address:") {
		t.Error("MerchantHTML() should omit empty address")
	}
}

func TestRenderer_EscapesHTML(t *testing.T) {
	r := newTestRenderer(Brand{Name: "Tom & Jerry's"})
	s := testSubmission()
	s.Payload.Customer.Name = "<script>alert(1)</script>"
	s.Payload.Items[1].Name = "Nuts & Bolts"

	merchant := r.MerchantHTML(s)
	customer := r.CustomerHTML(s)

	for _, body := range []string{merchant, customer} {
		if strings.Contains(body, "<script>") {
			t.Error("HTML body contains unescaped customer input")
		}
		if !strings.Contains(body, "Nuts &amp; Bolts") {
			t.Error("HTML body should escape item names")
		}
	}
	if !strings.Contains(customer, "Tom &amp; Jerry&#39;s") {
		t.Error("customer HTML should escape brand name")
	}
}

func TestRenderer_CustomerText(t *testing.T) {
	tests := []struct {
		name        string
		brand       Brand
		wantSupport string
		wantSignOff bool
	}{
		{
			name:        "no branding",
			brand:       Brand{},
			wantSupport: "",
		},
		{
			name:        "support email and phone with brand",
			brand:       Brand{Name: "Acme Bakery", SupportEmail: "help@acme.test", SupportPhone: "555-0199"},
			wantSupport: "Questions? Contact us at help@acme.test or 555-0199.",
			wantSignOff: true,
		},
		{
			name:        "support phone only",
			brand:       Brand{SupportPhone: "555-0199"},
			wantSupport: "Questions? Call us at 555-0199.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRenderer(tt.brand)
			got := r.CustomerText(testSubmission())

			if !strings.HasPrefix(got, "Thanks Ada Lovelace, we received your order totaling $72.00.") {
				t.Errorf("CustomerText() has unexpected greeting:\n%s", got)
			}
			if !strings.Contains(got, "Grand Total: $72.00") {
				t.Error("CustomerText() missing grand total")
			}
			if tt.wantSupport != "" && !strings.Contains(got, tt.wantSupport) {
				t.Errorf("CustomerText() missing support line %q", tt.wantSupport)
			}
			if tt.wantSupport == "" && strings.Contains(got, "Questions?") {
				t.Error("CustomerText() should not include a support line")
			}
			if tt.wantSignOff != strings.HasSuffix(got, "Thanks,\n"+tt.brand.Name) {
				t.Errorf("CustomerText() sign-off mismatch, want sign-off %v:\n%s", tt.wantSignOff, got)
			}
		})
	}
}

func TestRenderer_Deterministic(t *testing.T) {
	r := newTestRenderer(Brand{Name: "Acme", SupportEmail: "help@acme.test"})
	s := testSubmission()

	if r.MerchantHTML(s) != r.MerchantHTML(s) {
		t.Error("MerchantHTML() not deterministic")
	}
	if r.MerchantText(s) != r.MerchantText(s) {
		t.Error("MerchantText() not deterministic")
	}
	if r.CustomerHTML(s) != r.CustomerHTML(s) {
		t.Error("CustomerHTML() not deterministic")
	}

	before := s.Totals
	_ = r.CustomerText(s)
	if s.Totals != before {
		t.Error("rendering mutated totals")
	}
}

func TestFormatQuantity(t *testing.T) {
	tests := map[float64]string{
		1:    "1",
		2:    "2",
		1.5:  "1.5",
		8.25: "8.25",
	}

	for in, want := range tests {
		if got := FormatQuantity(in); got != want {
			t.Errorf("FormatQuantity(%v) = %q, want %q", in, got, want)
		}
	}
}
