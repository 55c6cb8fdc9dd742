package ledger

import (
	"context"
	"errors"
	"testing"

	"spendera/internal/core"
)

func newTestStore(t *testing.T) (*Store, *MemoryRepository) {
	t.Helper()
	repo := NewMemoryRepository()
	s := NewStore(repo)
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	return s, repo
}

func TestAddAppendsInOrder(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	first, err := s.Add(ctx, "100", core.Income, "Salary", "2025-01", "USD")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	second, err := s.Add(ctx, "50", core.Expense, "Variable - Food", "2025-01", "AED")
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	txs := s.Transactions()
	if len(txs) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(txs))
	}
	if txs[0].ID != first.ID || txs[1].ID != second.ID {
		t.Fatal("insertion order must equal display order")
	}
	if first.ID == second.ID {
		t.Fatal("ids must be unique")
	}
	if txs[0].Date != "2025-01-01" {
		t.Fatalf("date should be first of month, got %s", txs[0].Date)
	}
}

func TestAddRejectsInvalidInput(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	cases := []struct {
		name     string
		amount   string
		typ      core.TransactionType
		category string
		month    string
		wantErr  error
	}{
		{"empty amount", "", core.Income, "Salary", "2025-01", core.ErrInvalidAmount},
		{"non-numeric amount", "abc", core.Income, "Salary", "2025-01", core.ErrInvalidAmount},
		{"negative amount", "-10", core.Income, "Salary", "2025-01", core.ErrInvalidAmount},
		{"category of wrong type", "10", core.Income, "Monthly - Rent", "2025-01", core.ErrUnknownCategory},
		{"opening not addable", "10", core.Opening, "Salary", "2025-01", core.ErrInvalidType},
		{"bad month", "10", core.Income, "Salary", "2025-1", core.ErrInvalidMonth},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := s.Add(ctx, tc.amount, tc.typ, tc.category, tc.month, "USD"); !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
	if n := len(s.Transactions()); n != 0 {
		t.Fatalf("rejected adds must not grow the store, got %d", n)
	}
}

func TestBulkAddCoercion(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	rows := [][]string{
		{"2025-01-05", "income", "Salary", "1000", "USD"},
		{"", "bogus", "", "not-a-number", "XYZ"},
		{"2025-01-07"}, // short row
	}
	added, rowErrs, err := s.BulkAdd(ctx, rows)
	if err != nil {
		t.Fatalf("bulk add: %v", err)
	}
	if added != 3 {
		t.Fatalf("every row must produce a record, got %d", added)
	}

	txs := s.Transactions()
	bad := txs[1]
	if !bad.Amount.IsZero() {
		t.Fatalf("unparseable amount must coerce to 0, got %s", bad.Amount)
	}
	if bad.Type != core.Expense {
		t.Fatalf("invalid type must default to expense, got %s", bad.Type)
	}
	if bad.Currency != "XYZ" {
		t.Fatalf("unknown currency is kept (degrades at aggregation), got %s", bad.Currency)
	}
	short := txs[2]
	if short.Currency != "USD" || short.Type != core.Expense || short.Category != "" {
		t.Fatalf("missing fields must default, got %+v", short)
	}

	if len(rowErrs) == 0 {
		t.Fatal("coercions must be reported")
	}
	for _, re := range rowErrs {
		if re.Row == 1 {
			t.Fatalf("clean row reported an error: %v", re)
		}
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	repo := NewMemoryRepository()
	s := NewStore(repo)
	ctx := context.Background()
	if err := s.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}

	if _, err := s.Add(ctx, "367", core.Income, "Salary", "2025-03", "AED"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := s.SetCurrency(ctx, "PKR"); err != nil {
		t.Fatalf("set currency: %v", err)
	}
	if err := s.SetSelectedMonth(ctx, "2025-03"); err != nil {
		t.Fatalf("set month: %v", err)
	}

	reloaded := NewStore(repo)
	if err := reloaded.Load(ctx); err != nil {
		t.Fatalf("reload: %v", err)
	}
	txs := reloaded.Transactions()
	if len(txs) != 1 {
		t.Fatalf("expected 1 transaction after reload, got %d", len(txs))
	}
	got := txs[0]
	if got.Amount.String() != "367" || got.Type != core.Income ||
		got.Category != "Salary" || got.Date != "2025-03-01" || got.Currency != "AED" {
		t.Fatalf("round trip altered the record: %+v", got)
	}
	currency, month := reloaded.Settings()
	if currency != "PKR" || month != "2025-03" {
		t.Fatalf("settings did not round trip: %s %s", currency, month)
	}
}

func TestClearErasesPersistedState(t *testing.T) {
	repo := NewMemoryRepository()
	s := NewStore(repo)
	ctx := context.Background()
	if err := s.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, err := s.Add(ctx, "10", core.Expense, "Monthly - Rent", "2025-02", "USD"); err != nil {
		t.Fatalf("add: %v", err)
	}

	if err := s.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if n := len(s.Transactions()); n != 0 {
		t.Fatalf("clear must empty the store, got %d", n)
	}

	fresh := NewStore(repo)
	if err := fresh.Load(ctx); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if n := len(fresh.Transactions()); n != 0 {
		t.Fatalf("load after clear must yield empty list, got %d", n)
	}
	currency, month := fresh.Settings()
	if currency != "USD" || month != core.CurrentMonth() {
		t.Fatalf("load after clear must yield defaults, got %s %s", currency, month)
	}
}

func TestLoadCorruptSlotFallsBackToDefaults(t *testing.T) {
	repo := NewMemoryRepository()
	s := NewStore(repo)
	ctx := context.Background()
	if err := s.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, err := s.Add(ctx, "10", core.Income, "Salary", "2025-02", "USD"); err != nil {
		t.Fatalf("add: %v", err)
	}

	repo.Corrupt()

	recovered := NewStore(repo)
	if err := recovered.Load(ctx); err != nil {
		t.Fatalf("corrupt slot must not fail load: %v", err)
	}
	if n := len(recovered.Transactions()); n != 0 {
		t.Fatalf("corrupt slot must yield defaults, got %d transactions", n)
	}
}

func TestSetCurrencyRejectsUnknown(t *testing.T) {
	s, _ := newTestStore(t)
	if err := s.SetCurrency(context.Background(), "ZZZ"); !errors.Is(err, ErrUnknownCurrency) {
		t.Fatalf("expected ErrUnknownCurrency, got %v", err)
	}
}

func TestDarkModeRoundTrip(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	if s.DarkMode(ctx) {
		t.Fatal("dark mode should default to off")
	}
	if err := s.SetDarkMode(ctx, true); err != nil {
		t.Fatalf("set dark mode: %v", err)
	}
	if !s.DarkMode(ctx) {
		t.Fatal("dark mode should persist")
	}
}
