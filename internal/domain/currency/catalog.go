// internal/domain/currency/catalog.go
package currency

// Currency represents a display currency with its conversion rate from the base unit
type Currency struct {
	Code       string  `json:"code"`
	Symbol     string  `json:"symbol"`
	Name       string  `json:"name"`
	Rate       float64 `json:"rate"`        // Conversion rate from base units
	MinorUnits int     `json:"minor_units"` // Fractional digits for display
	Locale     string  `json:"locale"`      // BCP 47 tag for grouping/decimal rules
}

// catalog is the static currency reference data. It is immutable at runtime;
// Catalog returns copies so callers cannot modify it.
var catalog = []Currency{
	{Code: "USD", Symbol: "$", Name: "US Dollar", Rate: 1.0, MinorUnits: 2, Locale: "en-US"},
	{Code: "EUR", Symbol: "€", Name: "Euro", Rate: 0.92, MinorUnits: 2, Locale: "de-DE"},
	{Code: "GBP", Symbol: "£", Name: "British Pound", Rate: 0.79, MinorUnits: 2, Locale: "en-GB"},
	{Code: "INR", Symbol: "₹", Name: "Indian Rupee", Rate: 83.10, MinorUnits: 2, Locale: "en-IN"},
	{Code: "JPY", Symbol: "¥", Name: "Japanese Yen", Rate: 147.60, MinorUnits: 0, Locale: "ja-JP"},
}

// Catalog returns all available currencies
func Catalog() []Currency {
	out := make([]Currency, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup finds a currency by its code
func Lookup(code string) (Currency, bool) {
	for _, c := range catalog {
		if c.Code == code {
			return c, true
		}
	}
	return Currency{}, false
}

// Default returns the base currency
func Default() Currency {
	return catalog[0]
}
