// Package format renders amounts and markdown reports for the terminal.
package format

import (
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money formats amount in currency using the currency's symbol, separators
// and minor units: Money(1234.5, "USD") is "$1,234.50". Unknown currency
// codes fall back to two decimals followed by the code.
func Money(amount decimal.Decimal, currency string) string {
	code := strings.ToUpper(currency)
	if money.GetCurrency(code) == nil {
		return amount.StringFixed(2) + " " + code
	}
	// money.New never returns a nil currency.
	cur := money.New(0, code).Currency()
	minor := amount.Round(int32(cur.Fraction)).Shift(int32(cur.Fraction))
	return cur.Formatter().Format(minor.IntPart())
}

// Signed is Money with an explicit "+" on positive amounts. Zero renders as "-".
func Signed(amount decimal.Decimal, currency string) string {
	switch {
	case amount.IsZero():
		return "-"
	case amount.IsPositive():
		return "+" + Money(amount, currency)
	}
	return Money(amount, currency)
}

// Percent renders p (already scaled to 100) with no decimals: "42%".
func Percent(p decimal.Decimal) string {
	return p.Round(0).String() + "%"
}
