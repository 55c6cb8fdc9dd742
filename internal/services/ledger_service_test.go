package services

import (
	"context"
	"testing"

	"spendera/internal/core"
	"spendera/internal/ledger"
)

func newTestService(t *testing.T) *LedgerService {
	t.Helper()
	store := ledger.NewStore(ledger.NewMemoryRepository())
	svc := NewLedgerService(store, nil) // no broker in tests
	if err := svc.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	return svc
}

func TestSummarize(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	add := func(amount string, typ core.TransactionType, category, currency string) {
		t.Helper()
		if _, err := svc.Add(ctx, amount, typ, category, "2025-03", currency); err != nil {
			t.Fatalf("add %s %s: %v", typ, category, err)
		}
	}
	add("1000", core.Income, "Salary", "USD")
	add("367", core.Income, "Freelance", "AED") // 100 reference units
	add("300", core.Expense, "Monthly - Rent", "USD")
	add("200", core.Expense, "Variable - Food", "USD")

	sum := svc.Summarize("2025-03", "USD")
	if sum.Income != "1100.00" {
		t.Fatalf("income: %s", sum.Income)
	}
	if sum.Expenses != "500.00" {
		t.Fatalf("expenses: %s", sum.Expenses)
	}
	if sum.NetSavings != "600.00" {
		t.Fatalf("net savings: %s", sum.NetSavings)
	}
	// Salary only, minus Monthly-prefixed expenses.
	if sum.FixedSavings != "700.00" {
		t.Fatalf("fixed savings: %s", sum.FixedSavings)
	}
}

func TestSummarizeDisplayCurrency(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Add(ctx, "367", core.Income, "Salary", "2025-03", "AED"); err != nil {
		t.Fatalf("add: %v", err)
	}

	sum := svc.Summarize("2025-03", "PKR")
	if sum.Income != "28350.00" {
		t.Fatalf("100 reference units in PKR should be 28350.00, got %s", sum.Income)
	}
}

func TestSummarizeDefaultsToStoredSettings(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if err := svc.SetSelectedMonth(ctx, "2025-07"); err != nil {
		t.Fatalf("set month: %v", err)
	}
	if err := svc.SetCurrency(ctx, "AED"); err != nil {
		t.Fatalf("set currency: %v", err)
	}
	if _, err := svc.Add(ctx, "100", core.Income, "Salary", "2025-07", "USD"); err != nil {
		t.Fatalf("add: %v", err)
	}

	sum := svc.Summarize("", "")
	if sum.Month != "2025-07" || sum.Currency != "AED" {
		t.Fatalf("expected stored settings, got %s %s", sum.Month, sum.Currency)
	}
	if sum.Income != "367.00" {
		t.Fatalf("income in AED: %s", sum.Income)
	}
}

func TestSummarizeEmptyMonth(t *testing.T) {
	svc := newTestService(t)
	sum := svc.Summarize("2025-12", "USD")
	if sum.Income != "0.00" || sum.Expenses != "0.00" || sum.NetSavings != "0.00" || sum.FixedSavings != "0.00" {
		t.Fatalf("empty month should be all zeros: %+v", sum)
	}
}

func TestImportRowsNeverAborts(t *testing.T) {
	svc := newTestService(t)
	added, rowErrs, err := svc.ImportRows(context.Background(), [][]string{
		{"2025-01-01", "income", "Salary", "100", "USD"},
		{"", "", "", "garbage", ""},
	})
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if added != 2 {
		t.Fatalf("expected 2 added, got %d", added)
	}
	if len(rowErrs) != 1 {
		t.Fatalf("expected 1 coercion error, got %v", rowErrs)
	}
	if len(svc.Transactions()) != 2 {
		t.Fatal("both rows must land in the store")
	}
}
