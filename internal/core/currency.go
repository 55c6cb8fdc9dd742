// Package core holds the transaction model, the fixed currency table and
// the monthly aggregation rules.
//
// All cross-currency arithmetic goes through a reference currency (USD,
// rate 1): reference_amount = native_amount / rate. Totals are kept at
// full decimal precision and only rounded to two places for display.
package core

import "github.com/shopspring/decimal"

// ReferenceCurrency is the common unit amounts are normalized to before
// cross-currency summation.
const ReferenceCurrency = "USD"

// Fixed exchange rates relative to the reference currency. There is no
// live rate fetching; the table is a deliberate constant.
var exchangeRates = map[string]decimal.Decimal{
	"USD": decimal.NewFromInt(1),
	"AED": decimal.RequireFromString("3.67"),
	"PKR": decimal.RequireFromString("283.5"),
}

var currencyOrder = []string{"USD", "AED", "PKR"}

// Rate returns the exchange rate for code relative to the reference
// currency. Unknown codes degrade to rate 1 (treated as already in
// reference units) so malformed import data never breaks aggregation.
// A zero or negative table entry would make normalization divide by
// zero, so those degrade to 1 as well.
func Rate(code string) decimal.Decimal {
	r, ok := exchangeRates[code]
	if !ok || !r.IsPositive() {
		return decimal.NewFromInt(1)
	}
	return r
}

// KnownCurrency reports whether code has a real table entry.
func KnownCurrency(code string) bool {
	r, ok := exchangeRates[code]
	return ok && r.IsPositive()
}

// SupportedCurrencies returns the currency codes in presentation order.
func SupportedCurrencies() []string {
	out := make([]string, len(currencyOrder))
	copy(out, currencyOrder)
	return out
}
