package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"spendera/internal/core"
)

// Store is the single owner of the transaction list and the two user
// settings. Every mutation writes the full snapshot back to the
// repository; there is no dirty tracking. Record counts are small, so
// simplicity wins over efficiency here.
type Store struct {
	mu            sync.Mutex
	repo          SnapshotRepository
	txs           []core.Transaction
	currency      string
	selectedMonth string
}

func NewStore(repo SnapshotRepository) *Store {
	return &Store{
		repo:          repo,
		currency:      core.ReferenceCurrency,
		selectedMonth: core.CurrentMonth(),
	}
}

// Load reads the persisted snapshot. An absent slot yields defaults; a
// corrupt slot is logged and also yields defaults. Neither is a crash.
func (s *Store) Load(ctx context.Context) error {
	snap, err := s.repo.Load(ctx)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			// First run.
		case errors.Is(err, ErrCorrupt):
			slog.WarnContext(ctx, "Persisted snapshot corrupt, starting from defaults", "error", err)
		default:
			return fmt.Errorf("load snapshot: %w", err)
		}
		snap = Snapshot{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.txs = snap.Transactions
	s.currency = snap.Currency
	if s.currency == "" {
		s.currency = core.ReferenceCurrency
	}
	s.selectedMonth = snap.SelectedMonth
	if s.selectedMonth == "" {
		s.selectedMonth = core.CurrentMonth()
	}

	slog.InfoContext(ctx, "Ledger loaded",
		"transactions", len(s.txs),
		"currency", s.currency,
		"month", s.selectedMonth)
	return nil
}

// Add validates and appends a single transaction for the given YYYY-MM
// month, then persists the full snapshot. Insertion order is display
// order; nothing re-sorts the list.
func (s *Store) Add(ctx context.Context, amount string, typ core.TransactionType, category, month, currency string) (core.Transaction, error) {
	amt, err := core.ParseAmount(amount)
	if err != nil {
		return core.Transaction{}, err
	}
	if typ != core.Income && typ != core.Expense {
		return core.Transaction{}, core.ErrInvalidType
	}
	if !core.ValidCategory(typ, category) {
		return core.Transaction{}, core.ErrUnknownCategory
	}
	if err := core.ValidateMonth(month); err != nil {
		return core.Transaction{}, err
	}
	if currency == "" {
		currency = core.ReferenceCurrency
	}

	t := core.Transaction{
		ID:       uuid.NewString(),
		Amount:   amt,
		Type:     typ,
		Category: category,
		Date:     core.MonthStart(month),
		Currency: currency,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.txs = append(s.txs, t)
	if err := s.saveLocked(ctx); err != nil {
		return t, err
	}

	slog.InfoContext(ctx, "Transaction added",
		"id", t.ID,
		"type", t.Type,
		"category", t.Category,
		"amount", t.Amount.String(),
		"currency", t.Currency,
		"date", t.Date)
	return t, nil
}

// BulkAdd appends one record per external row, coercing malformed fields
// to safe defaults instead of rejecting rows. The returned RowErrors
// describe every coercion; the batch itself never partially fails.
func (s *Store) BulkAdd(ctx context.Context, rows [][]string) (int, []RowError, error) {
	if len(rows) == 0 {
		return 0, nil, nil
	}

	var (
		added []core.Transaction
		errs  []RowError
	)
	for i, row := range rows {
		t, rowErrs := coerceRow(i+1, row)
		added = append(added, t)
		errs = append(errs, rowErrs...)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.txs = append(s.txs, added...)
	if err := s.saveLocked(ctx); err != nil {
		return len(added), errs, err
	}

	slog.InfoContext(ctx, "Bulk import completed",
		"rows", len(rows),
		"added", len(added),
		"coercions", len(errs))
	return len(added), errs, nil
}

// coerceRow maps a positional (date, type, category, amount, currency)
// row to a transaction. Missing or invalid fields degrade per field:
// date to "", type to expense, category to "", amount to 0, currency to
// the reference currency. A record is always produced.
func coerceRow(rowNum int, row []string) (core.Transaction, []RowError) {
	field := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	var errs []RowError

	date := field(0)

	typ := core.TransactionType(field(1))
	if !typ.Valid() {
		if typ != "" {
			errs = append(errs, RowError{Row: rowNum, Field: "type", Value: string(typ), Reason: "not a transaction type, defaulted to expense"})
		}
		typ = core.Expense
	}

	category := field(2)

	amount := decimal.Zero
	if raw := field(3); raw != "" {
		if parsed, err := decimal.NewFromString(raw); err == nil && !parsed.IsNegative() {
			amount = parsed
		} else {
			errs = append(errs, RowError{Row: rowNum, Field: "amount", Value: raw, Reason: "unparseable amount, coerced to 0"})
		}
	}

	currency := field(4)
	if currency == "" {
		currency = core.ReferenceCurrency
	} else if !core.KnownCurrency(currency) {
		errs = append(errs, RowError{Row: rowNum, Field: "currency", Value: currency, Reason: "not in the currency table, aggregation will treat rate as 1"})
	}

	return core.Transaction{
		ID:       uuid.NewString(),
		Amount:   amount,
		Type:     typ,
		Category: category,
		Date:     date,
		Currency: currency,
	}, errs
}

// Clear empties the list and erases the persisted slot entirely. A
// subsequent Load yields defaults.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.txs = nil
	if err := s.repo.Erase(ctx); err != nil {
		return fmt.Errorf("erase snapshot: %w", err)
	}
	slog.InfoContext(ctx, "Ledger cleared")
	return nil
}

// SetCurrency changes the display currency and persists the snapshot.
// Transactions keep their original currency forever; only presentation
// changes.
func (s *Store) SetCurrency(ctx context.Context, code string) error {
	if !core.KnownCurrency(code) {
		return ErrUnknownCurrency
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currency = code
	return s.saveLocked(ctx)
}

// SetSelectedMonth changes the selected month and persists the snapshot.
func (s *Store) SetSelectedMonth(ctx context.Context, month string) error {
	if err := core.ValidateMonth(month); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedMonth = month
	return s.saveLocked(ctx)
}

// SetDarkMode persists the dark-mode preference in its own slot,
// independent from the snapshot.
func (s *Store) SetDarkMode(ctx context.Context, enabled bool) error {
	if err := s.repo.SaveDarkMode(ctx, enabled); err != nil {
		return fmt.Errorf("save dark mode: %w", err)
	}
	return nil
}

// DarkMode reads the dark-mode preference; an absent slot means off.
func (s *Store) DarkMode(ctx context.Context) bool {
	enabled, err := s.repo.LoadDarkMode(ctx)
	if err != nil && !errors.Is(err, ErrNotFound) {
		slog.WarnContext(ctx, "Dark mode preference unreadable", "error", err)
	}
	return enabled
}

// Transactions returns a copy of the full list in insertion order.
func (s *Store) Transactions() []core.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Transaction, len(s.txs))
	copy(out, s.txs)
	return out
}

// TransactionsForMonth returns the transactions whose date falls in the
// given YYYY-MM month, in insertion order.
func (s *Store) TransactionsForMonth(month string) []core.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.Transaction
	for _, t := range s.txs {
		if t.InMonth(month) {
			out = append(out, t)
		}
	}
	return out
}

// Settings returns the current display currency and selected month.
func (s *Store) Settings() (currency, selectedMonth string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currency, s.selectedMonth
}

// Snapshot returns a copy of the full persisted state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() Snapshot {
	txs := make([]core.Transaction, len(s.txs))
	copy(txs, s.txs)
	return Snapshot{
		Transactions:  txs,
		Currency:      s.currency,
		SelectedMonth: s.selectedMonth,
	}
}

func (s *Store) saveLocked(ctx context.Context) error {
	if err := s.repo.Save(ctx, s.snapshotLocked()); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}
