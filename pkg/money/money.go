// Package money formats and rounds currency amounts.
package money

import (
	"math"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// DefaultCurrency is used when a code cannot be parsed.
const DefaultCurrency = "USD"

var printer = message.NewPrinter(language.English)

// Round rounds amount to whole cents, half away from zero.
func Round(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// Format renders amount with the ISO code, grouping and the currency's
// standard number of decimals, e.g. Format(1234.5, "USD") → "USD 1,234.50".
func Format(amount float64, code string) string {
	unit, err := currency.ParseISO(code)
	if err != nil {
		unit = currency.MustParseISO(DefaultCurrency)
	}
	scale, _ := currency.Standard.Rounding(unit)
	return unit.String() + " " + printer.Sprint(number.Decimal(amount, number.Scale(scale)))
}

// Valid reports whether code is a known ISO 4217 currency.
func Valid(code string) bool {
	_, err := currency.ParseISO(code)
	return err == nil
}
