// Package money formats monetary amounts for display.
//
// Formatting is driven by an explicit currency code, symbol and locale so
// output never depends on the host's locale settings.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Currency configures how amounts are rendered
type Currency struct {
	Code   string
	Symbol string
	Locale string
}

// DefaultCurrency renders US dollars for an en-US audience
var DefaultCurrency = Currency{Code: "USD", Symbol: "$", Locale: "en-US"}

// Formatter renders amounts as currency strings with two decimals
type Formatter struct {
	unit    currency.Unit
	symbol  string
	printer *message.Printer
}

// NewFormatter validates the currency settings and builds a Formatter
func NewFormatter(c Currency) (*Formatter, error) {
	unit, err := currency.ParseISO(c.Code)
	if err != nil {
		return nil, fmt.Errorf("invalid currency code %q: %w", c.Code, err)
	}

	tag, err := language.Parse(c.Locale)
	if err != nil {
		return nil, fmt.Errorf("invalid currency locale %q: %w", c.Locale, err)
	}

	symbol := c.Symbol
	if symbol == "" {
		symbol = unit.String() + " "
	}

	return &Formatter{
		unit:    unit,
		symbol:  symbol,
		printer: message.NewPrinter(tag),
	}, nil
}

// MustFormatter is like NewFormatter but panics on invalid settings
func MustFormatter(c Currency) *Formatter {
	f, err := NewFormatter(c)
	if err != nil {
		panic(err)
	}
	return f
}

// Code returns the ISO 4217 code of the formatter's currency
func (f *Formatter) Code() string {
	return f.unit.String()
}

// Format renders v rounded half away from zero to two decimals,
// e.g. 1234.5 -> "$1,234.50" for the default currency.
func (f *Formatter) Format(v float64) string {
	d := decimal.NewFromFloat(v).Round(2)

	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}

	amount := f.printer.Sprintf("%v", number.Decimal(d.InexactFloat64(), number.Scale(2)))
	return sign + f.symbol + amount
}
