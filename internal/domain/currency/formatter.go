// internal/domain/currency/formatter.go
package currency

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// maxExactFloat is the largest integer float64 represents exactly. The locale
// renderer takes a float64; converted values whose minor-unit magnitude
// exceeds this bound must bypass it to stay exact.
var maxExactFloat = decimal.NewFromInt(1 << 53)

// Format renders a base-unit amount in the given currency. Conversion is
// display-only: stored amounts stay in base units and the converted value is
// recomputed from them on every call. Currencies without minor units render
// with zero fractional digits, all others with the currency's digit count.
func Format(amountInBaseUnits int64, cur Currency) string {
	converted := decimal.NewFromInt(amountInBaseUnits).
		Mul(decimal.NewFromFloat(cur.Rate)).
		Round(int32(cur.MinorUnits))

	if converted.Shift(int32(cur.MinorUnits)).Abs().Cmp(maxExactFloat) > 0 {
		return cur.Symbol + converted.StringFixed(int32(cur.MinorUnits))
	}

	tag, err := language.Parse(cur.Locale)
	if err != nil {
		tag = language.English
	}

	p := message.NewPrinter(tag)
	formatted := p.Sprintf("%v", number.Decimal(
		converted.InexactFloat64(),
		number.Scale(cur.MinorUnits),
	))

	return cur.Symbol + formatted
}

// Convert returns the converted amount as a decimal without rendering it.
// Useful for consumers that need the numeric value in the active currency.
func Convert(amountInBaseUnits int64, cur Currency) decimal.Decimal {
	return decimal.NewFromInt(amountInBaseUnits).
		Mul(decimal.NewFromFloat(cur.Rate)).
		Round(int32(cur.MinorUnits))
}
