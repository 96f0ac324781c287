// Package email renders the order notification and confirmation emails.
//
// Every function here is pure: the output depends only on the Submission and
// the Renderer's settings. Bodies are built as plain strings; user-supplied
// text is HTML-escaped before it is placed in an HTML body.
package email

import (
	"fmt"
	"html"
	"strconv"
	"strings"
	"time"

	"github.com/Lixing-Zhang/order-intake/internal/money"
	"github.com/Lixing-Zhang/order-intake/internal/order"
	"github.com/Lixing-Zhang/order-intake/internal/pricing"
)

// TimestampLayout is used for the "Submitted on" line of the merchant email
const TimestampLayout = "Jan 2, 2006, 3:04:05 PM MST"

// Submission is everything known about one accepted order
type Submission struct {
	Reference  string
	ReceivedAt time.Time
	Payload    order.Payload
	Totals     pricing.Totals
}

// Brand carries the optional customer-facing branding
type Brand struct {
	Name         string
	SupportEmail string
	SupportPhone string
}

// Renderer produces subjects and bodies for both audiences
type Renderer struct {
	money *money.Formatter
	brand Brand
}

// NewRenderer creates a renderer using the given currency formatter and branding
func NewRenderer(formatter *money.Formatter, brand Brand) *Renderer {
	return &Renderer{
		money: formatter,
		brand: brand,
	}
}

// MerchantSubject returns the subject line of the merchant notification
func (r *Renderer) MerchantSubject(s Submission) string {
	return fmt.Sprintf("New Order from %s — %s", s.Payload.Customer.Name, r.money.Format(s.Totals.GrandTotal))
}

// CustomerSubject returns the subject line of the customer confirmation
func (r *Renderer) CustomerSubject(s Submission) string {
	return "We received your order — " + r.MerchantSubject(s)
}

const (
	cellStyle   = `padding:8px;border-bottom:1px solid #eee;`
	headerStyle = `padding:8px;border-bottom:2px solid #333;`
	footerStyle = `padding:8px;`
)

// MerchantHTML renders the HTML body of the merchant notification
func (r *Renderer) MerchantHTML(s Submission) string {
	c := s.Payload.Customer
	var b strings.Builder

	b.WriteString(`<div style="font-family:system-ui,Segoe UI,Roboto,Arial;">`)
	b.WriteString(`<h2 style="margin:0 0 6px;">New Order</h2>`)
	fmt.Fprintf(&b, `<p style="margin:0 0 16px;color:#555;">Submitted on %s</p>`, html.EscapeString(s.ReceivedAt.Format(TimestampLayout)))
	if s.Reference != "" {
		fmt.Fprintf(&b, `<p style="margin:0 0 16px;color:#555;">Reference: %s</p>`, html.EscapeString(s.Reference))
	}

	b.WriteString(`<h3 style="margin:0 0 6px;">Customer</h3>`)
	b.WriteString(`<div style="margin:0 0 16px;">`)
	writeField(&b, "Name", c.Name)
	writeField(&b, "Email", c.Email)
	writeField(&b, "Phone", c.Phone)
	writeField(&b, "Address", c.Address)
	writeField(&b, "Order Date", c.OrderDate)
	b.WriteString(`</div>`)

	b.WriteString(`<h3 style="margin:0 0 6px;">Items</h3>`)
	r.writeItemsTable(&b, s)
	b.WriteString(`</div>`)

	return b.String()
}

// MerchantText renders the plain-text body of the merchant notification.
// Lines are packed without blank separators.
func (r *Renderer) MerchantText(s Submission) string {
	c := s.Payload.Customer

	lines := []string{"New Order"}
	if s.Reference != "" {
		lines = append(lines, "Reference: "+s.Reference)
	}
	lines = append(lines, "Customer: "+c.Name, "Email: "+c.Email)
	lines = appendIfSet(lines, "Phone: ", c.Phone)
	lines = appendIfSet(lines, "Address: ", c.Address)
	lines = appendIfSet(lines, "Order Date: ", c.OrderDate)
	lines = append(lines, r.itemLines(s)...)
	lines = append(lines, r.totalLines(s)...)

	return strings.Join(lines, "\n")
}

// CustomerHTML renders the HTML body of the customer confirmation
func (r *Renderer) CustomerHTML(s Submission) string {
	var b strings.Builder

	b.WriteString(`<div style="font-family:system-ui,Segoe UI,Roboto,Arial;">`)
	fmt.Fprintf(&b, `<h2 style="margin:0 0 6px;">Thanks, %s!</h2>`, html.EscapeString(s.Payload.Customer.Name))
	fmt.Fprintf(&b, `<p style="margin:0 0 16px;">We received your order totaling <strong>%s</strong>.</p>`, html.EscapeString(r.money.Format(s.Totals.GrandTotal)))
	if s.Reference != "" {
		fmt.Fprintf(&b, `<p style="margin:0 0 16px;color:#555;">Order reference: %s</p>`, html.EscapeString(s.Reference))
	}

	r.writeItemsTable(&b, s)

	if line := r.supportLine(); line != "" {
		fmt.Fprintf(&b, `<p style="margin:16px 0 0;">%s</p>`, html.EscapeString(line))
	}
	if r.brand.Name != "" {
		fmt.Fprintf(&b, `<p style="margin:16px 0 0;">Thanks,<br>%s</p>`, html.EscapeString(r.brand.Name))
	}
	b.WriteString(`</div>`)

	return b.String()
}

// CustomerText renders the plain-text body of the customer confirmation
func (r *Renderer) CustomerText(s Submission) string {
	lines := []string{
		fmt.Sprintf("Thanks %s, we received your order totaling %s.", s.Payload.Customer.Name, r.money.Format(s.Totals.GrandTotal)),
	}
	if s.Reference != "" {
		lines = append(lines, "Order reference: "+s.Reference)
	}

	lines = append(lines, "")
	lines = append(lines, r.itemLines(s)...)
	lines = append(lines, "")
	lines = append(lines, r.totalLines(s)...)

	if line := r.supportLine(); line != "" {
		lines = append(lines, "", line)
	}
	if r.brand.Name != "" {
		lines = append(lines, "", "Thanks,", r.brand.Name)
	}

	return strings.Join(lines, "\n")
}

func (r *Renderer) writeItemsTable(b *strings.Builder, s Submission) {
	b.WriteString(`<table cellpadding="0" cellspacing="0" style="border-collapse:collapse;width:100%;max-width:720px;">`)
	b.WriteString(`<thead><tr>`)
	for _, h := range []string{"Item", "Unit Price", "Qty", "Line Total"} {
		fmt.Fprintf(b, `<th align="left" style="%s">%s</th>`, headerStyle, h)
	}
	b.WriteString(`</tr></thead><tbody>`)

	for _, item := range s.Payload.Items {
		b.WriteString(`<tr>`)
		for _, cell := range []string{
			item.Name,
			r.money.Format(item.UnitPrice),
			FormatQuantity(item.Quantity),
			r.money.Format(pricing.LineTotal(item)),
		} {
			fmt.Fprintf(b, `<td style="%s">%s</td>`, cellStyle, html.EscapeString(cell))
		}
		b.WriteString(`</tr>`)
	}

	b.WriteString(`</tbody><tfoot>`)
	fmt.Fprintf(b, `<tr><td colspan="3" align="right" style="%s">Subtotal</td><td style="%s">%s</td></tr>`,
		footerStyle, footerStyle, html.EscapeString(r.money.Format(s.Totals.Subtotal)))
	fmt.Fprintf(b, `<tr><td colspan="3" align="right" style="%s">Tax (%s%%)</td><td style="%s">%s</td></tr>`,
		footerStyle, FormatQuantity(s.Payload.TaxPercent), footerStyle, html.EscapeString(r.money.Format(s.Totals.TaxAmount)))
	fmt.Fprintf(b, `<tr><td colspan="3" align="right" style="%s"><strong>Grand Total</strong></td><td style="%s"><strong>%s</strong></td></tr>`,
		footerStyle, footerStyle, html.EscapeString(r.money.Format(s.Totals.GrandTotal)))
	b.WriteString(`</tfoot></table>`)
}

func (r *Renderer) itemLines(s Submission) []string {
	lines := make([]string, 0, len(s.Payload.Items))
	for _, item := range s.Payload.Items {
		lines = append(lines, fmt.Sprintf("- %s x%s @ %s = %s",
			item.Name,
			FormatQuantity(item.Quantity),
			r.money.Format(item.UnitPrice),
			r.money.Format(pricing.LineTotal(item)),
		))
	}
	return lines
}

func (r *Renderer) totalLines(s Submission) []string {
	return []string{
		"Subtotal: " + r.money.Format(s.Totals.Subtotal),
		fmt.Sprintf("Tax (%s%%): %s", FormatQuantity(s.Payload.TaxPercent), r.money.Format(s.Totals.TaxAmount)),
		"Grand Total: " + r.money.Format(s.Totals.GrandTotal),
	}
}

func (r *Renderer) supportLine() string {
	switch {
	case r.brand.SupportEmail != "" && r.brand.SupportPhone != "":
		return fmt.Sprintf("Questions? Contact us at %s or %s.", r.brand.SupportEmail, r.brand.SupportPhone)
	case r.brand.SupportEmail != "":
		return fmt.Sprintf("Questions? Contact us at %s.", r.brand.SupportEmail)
	case r.brand.SupportPhone != "":
		return fmt.Sprintf("Questions? Call us at %s.", r.brand.SupportPhone)
	}
	return ""
}

// FormatQuantity prints a number in its shortest form: 2, 1.5, 8.25
func FormatQuantity(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}

func writeField(b *strings.Builder, label, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(b, `<div><strong>%s:</strong> %s</div>`, label, html.EscapeString(value))
}

func appendIfSet(lines []string, prefix, value string) []string {
	if value == "" {
		return lines
	}
	return append(lines, prefix+value)
}
