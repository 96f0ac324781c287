package order

import (
	"encoding/json"
	"errors"
	"math"
	"regexp"
	"strconv"
)

// Reason enumerates why a payload was rejected
type Reason int

const (
	ReasonNone Reason = iota
	ReasonInvalidPayload
	ReasonCustomerName
	ReasonCustomerEmail
	ReasonNoItems
	ReasonInvalidItem
	ReasonTaxPercent
)

var reasonMessages = map[Reason]string{
	ReasonInvalidPayload: "Invalid payload.",
	ReasonCustomerName:   "Customer name is required.",
	ReasonCustomerEmail:  "Valid email is required.",
	ReasonNoItems:        "At least one item required.",
	ReasonInvalidItem:    "Invalid item data.",
	ReasonTaxPercent:     "Invalid tax percent.",
}

// Message returns the user-facing text for the reason
func (r Reason) Message() string {
	return reasonMessages[r]
}

func (r Reason) String() string {
	if r == ReasonNone {
		return "ok"
	}
	return r.Message()
}

// Result is the outcome of Validate: Ok when Reason is ReasonNone
type Result struct {
	Reason Reason
}

// OK reports whether the payload passed validation
func (r Result) OK() bool {
	return r.Reason == ReasonNone
}

func invalid(reason Reason) (Payload, Result) {
	return Payload{}, Result{Reason: reason}
}

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// Validate checks a decoded JSON document against the order rules.
// Checks run in a fixed order and stop at the first failure.
// The returned Payload is only populated when the result is OK.
func Validate(raw any) (Payload, Result) {
	var doc map[string]any
	switch v := raw.(type) {
	case map[string]any:
		doc = v
	case []any:
		// arrays are objects too; they carry no customer and fail below
		doc = map[string]any{}
	default:
		return invalid(ReasonInvalidPayload)
	}

	customer, _ := doc["customer"].(map[string]any)

	name, _ := customer["name"].(string)
	if name == "" {
		return invalid(ReasonCustomerName)
	}

	email, _ := customer["email"].(string)
	if email == "" || !emailPattern.MatchString(email) {
		return invalid(ReasonCustomerEmail)
	}

	rawItems, ok := doc["items"].([]any)
	if !ok || len(rawItems) == 0 {
		return invalid(ReasonNoItems)
	}

	items := make([]LineItem, 0, len(rawItems))
	for _, ri := range rawItems {
		item, ok := parseItem(ri)
		if !ok {
			return invalid(ReasonInvalidItem)
		}
		items = append(items, item)
	}

	totals, _ := doc["totals"].(map[string]any)
	taxPercent, ok := number(totals["taxPercent"])
	if !ok || taxPercent < 0 || taxPercent > 100 {
		return invalid(ReasonTaxPercent)
	}

	payload := Payload{
		Customer: Customer{
			Name:      name,
			Email:     email,
			Phone:     optionalString(customer, "phone"),
			Address:   optionalString(customer, "address"),
			OrderDate: optionalString(customer, "orderDate"),
		},
		Items:      items,
		TaxPercent: taxPercent,
	}

	return payload, Result{}
}

func parseItem(raw any) (LineItem, bool) {
	m, ok := raw.(map[string]any)
	if !ok {
		return LineItem{}, false
	}

	name, _ := m["name"].(string)
	if name == "" {
		return LineItem{}, false
	}

	unitPrice, ok := number(m["unitPrice"])
	if !ok || math.IsNaN(unitPrice) || unitPrice < 0 {
		return LineItem{}, false
	}

	quantity, ok := number(m["quantity"])
	if !ok || math.IsNaN(quantity) || math.IsInf(quantity, 0) || quantity <= 0 {
		return LineItem{}, false
	}

	return LineItem{Name: name, UnitPrice: unitPrice, Quantity: quantity}, true
}

// number accepts float64 and json.Number values.
// Literals beyond the float64 range become ±Inf instead of failing.
func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case json.Number:
		f, err := strconv.ParseFloat(n.String(), 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func optionalString(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}
