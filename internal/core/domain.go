package core

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
	// Opening is reserved for starting-balance records. Nothing constructs
	// it yet; it only round-trips through persistence and import.
	Opening TransactionType = "opening"
)

type (
	TransactionType string

	// Transaction is the sole persisted entity. Amount is a non-negative
	// magnitude denominated in Currency; the sign is implied by Type.
	// Date is always YYYY-MM-DD with zero-padded month and day so that
	// month selection can use a plain string-prefix match.
	Transaction struct {
		ID       string          `json:"id"`
		Amount   decimal.Decimal `json:"amount"`
		Type     TransactionType `json:"type"`
		Category string          `json:"category"`
		Date     string          `json:"date"`
		Currency string          `json:"currency"`
	}
)

var (
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrInvalidMonth    = errors.New("invalid month")
	ErrInvalidType     = errors.New("invalid transaction type")
	ErrUnknownCategory = errors.New("unknown category for transaction type")
)

// Categories lists the selectable category set per transaction type.
// The add path enforces membership; bulk import deliberately does not.
var Categories = map[TransactionType][]string{
	Income: {
		"Salary",
		"Freelance",
		"Recovered",
	},
	Expense: {
		"Monthly - Utilities",
		"Monthly - Rent",
		"Monthly - Transportation",
		"Variable - Food",
		"Variable - Entertainment",
		"Variable - Transportation",
		"Recurring Investment",
	},
}

// ValidCategory reports whether category belongs to the set for typ.
func ValidCategory(typ TransactionType, category string) bool {
	for _, c := range Categories[typ] {
		if c == category {
			return true
		}
	}
	return false
}

func (t TransactionType) Valid() bool {
	switch t {
	case Income, Expense, Opening:
		return true
	}
	return false
}

// InMonth reports whether the transaction falls in the given YYYY-MM month.
func (t Transaction) InMonth(month string) bool {
	return strings.HasPrefix(t.Date, month)
}

// ParseAmount parses a user-entered decimal magnitude. Empty, unparseable
// and negative inputs are rejected; the add path never stores them.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Decimal{}, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, ErrInvalidAmount
	}
	if d.IsNegative() {
		return decimal.Decimal{}, ErrInvalidAmount
	}
	return d, nil
}

// ValidateMonth checks a YYYY-MM month selector.
func ValidateMonth(month string) error {
	if len(month) != 7 {
		return ErrInvalidMonth
	}
	if _, err := time.Parse("2006-01", month); err != nil {
		return ErrInvalidMonth
	}
	return nil
}

// CurrentMonth returns the current calendar month as YYYY-MM.
func CurrentMonth() string {
	return time.Now().Format("2006-01")
}

// MonthStart converts a YYYY-MM selector to the first-of-month date that
// all records created for that month carry.
func MonthStart(month string) string {
	return month + "-01"
}
