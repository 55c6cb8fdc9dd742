package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// The aggregation pipeline is always filter -> normalize -> sum ->
// display-convert. Sums stay in reference-currency units at full
// precision; conversion and rounding happen only at the display edge.

// Normalize converts the transaction's native amount to reference units
// by dividing by its own currency's rate.
func Normalize(t Transaction) decimal.Decimal {
	return t.Amount.Div(Rate(t.Currency))
}

// TotalByType sums the normalized amounts of all transactions with the
// given type in the given YYYY-MM month. An empty or non-matching list
// yields zero.
func TotalByType(txs []Transaction, typ TransactionType, month string) decimal.Decimal {
	sum := decimal.Zero
	for _, t := range txs {
		if t.Type == typ && t.InMonth(month) {
			sum = sum.Add(Normalize(t))
		}
	}
	return sum
}

// NetSavings is total income minus total expenses for the month, in
// reference units.
func NetSavings(txs []Transaction, month string) decimal.Decimal {
	return TotalByType(txs, Income, month).Sub(TotalByType(txs, Expense, month))
}

// FixedMonthlySavings estimates recurring guaranteed cash flow: income
// restricted to the "Salary" category minus expenses whose category is
// prefixed "Monthly". Variable and discretionary categories are excluded,
// which makes this narrower than NetSavings.
func FixedMonthlySavings(txs []Transaction, month string) decimal.Decimal {
	fixedIncome := decimal.Zero
	fixedExpenses := decimal.Zero
	for _, t := range txs {
		if !t.InMonth(month) {
			continue
		}
		switch {
		case t.Type == Income && t.Category == "Salary":
			fixedIncome = fixedIncome.Add(Normalize(t))
		case t.Type == Expense && strings.HasPrefix(t.Category, "Monthly"):
			fixedExpenses = fixedExpenses.Add(Normalize(t))
		}
	}
	return fixedIncome.Sub(fixedExpenses)
}

// ToDisplay converts a reference-currency amount to the display currency.
func ToDisplay(ref decimal.Decimal, currency string) decimal.Decimal {
	return ref.Mul(Rate(currency))
}

// FormatDisplay renders a reference-currency amount in the display
// currency with exactly two decimal places. The zero value formats as
// "0.00".
func FormatDisplay(ref decimal.Decimal, currency string) string {
	return ToDisplay(ref, currency).StringFixed(2)
}
