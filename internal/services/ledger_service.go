package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"spendera/internal/amqp"
	"spendera/internal/core"
	"spendera/internal/ledger"
)

// LedgerService orchestrates the ledger store and the optional AMQP
// notification channel. Every successful mutation already persisted the
// snapshot; the publish afterwards is fire-and-forget so a broken broker
// never fails a user action.
type LedgerService struct {
	store      *ledger.Store
	amqpClient *amqp.Client
	revision   atomic.Int64
}

func NewLedgerService(store *ledger.Store, amqpClient *amqp.Client) *LedgerService {
	return &LedgerService{
		store:      store,
		amqpClient: amqpClient,
	}
}

// MonthSummary is the aggregated view for one month, display-converted.
type MonthSummary struct {
	Month        string `json:"month"`
	Currency     string `json:"currency"`
	Income       string `json:"income"`
	Expenses     string `json:"expenses"`
	NetSavings   string `json:"netSavings"`
	FixedSavings string `json:"fixedSavings"`
}

func (s *LedgerService) Load(ctx context.Context) error {
	return s.store.Load(ctx)
}

func (s *LedgerService) Add(ctx context.Context, amount string, typ core.TransactionType, category, month, currency string) (core.Transaction, error) {
	t, err := s.store.Add(ctx, amount, typ, category, month, currency)
	if err != nil {
		return core.Transaction{}, err
	}
	s.notifySaved(ctx)
	return t, nil
}

// ImportRows bulk-appends external rows. The batch never aborts; the
// returned RowErrors describe the per-field coercions that happened.
func (s *LedgerService) ImportRows(ctx context.Context, rows [][]string) (int, []ledger.RowError, error) {
	added, rowErrs, err := s.store.BulkAdd(ctx, rows)
	if err != nil {
		return added, rowErrs, err
	}
	if added > 0 {
		s.notifySaved(ctx)
	}
	return added, rowErrs, nil
}

func (s *LedgerService) Clear(ctx context.Context) error {
	if err := s.store.Clear(ctx); err != nil {
		return err
	}
	s.notifySaved(ctx)
	return nil
}

func (s *LedgerService) SetCurrency(ctx context.Context, code string) error {
	if err := s.store.SetCurrency(ctx, code); err != nil {
		return err
	}
	s.notifySaved(ctx)
	return nil
}

func (s *LedgerService) SetSelectedMonth(ctx context.Context, month string) error {
	if err := s.store.SetSelectedMonth(ctx, month); err != nil {
		return err
	}
	s.notifySaved(ctx)
	return nil
}

func (s *LedgerService) SetDarkMode(ctx context.Context, enabled bool) error {
	return s.store.SetDarkMode(ctx, enabled)
}

func (s *LedgerService) DarkMode(ctx context.Context) bool {
	return s.store.DarkMode(ctx)
}

func (s *LedgerService) Transactions() []core.Transaction {
	return s.store.Transactions()
}

func (s *LedgerService) TransactionsForMonth(month string) []core.Transaction {
	return s.store.TransactionsForMonth(month)
}

func (s *LedgerService) Settings() (currency, selectedMonth string) {
	return s.store.Settings()
}

func (s *LedgerService) Snapshot() ledger.Snapshot {
	return s.store.Snapshot()
}

// Summarize recomputes the month's totals from current store state.
// Missing month or currency fall back to the persisted settings.
func (s *LedgerService) Summarize(month, currency string) MonthSummary {
	storedCurrency, storedMonth := s.store.Settings()
	if month == "" {
		month = storedMonth
	}
	if currency == "" {
		currency = storedCurrency
	}

	txs := s.store.Transactions()
	income := core.TotalByType(txs, core.Income, month)
	expenses := core.TotalByType(txs, core.Expense, month)

	return MonthSummary{
		Month:        month,
		Currency:     currency,
		Income:       core.FormatDisplay(income, currency),
		Expenses:     core.FormatDisplay(expenses, currency),
		NetSavings:   core.FormatDisplay(income.Sub(expenses), currency),
		FixedSavings: core.FormatDisplay(core.FixedMonthlySavings(txs, month), currency),
	}
}

func (s *LedgerService) notifySaved(ctx context.Context) {
	if s.amqpClient == nil {
		return
	}
	rev := s.revision.Add(1)
	if err := s.amqpClient.PublishSnapshotSaved(ctx, rev); err != nil {
		// Fire-and-forget: the snapshot is already persisted locally.
		slog.ErrorContext(ctx, "Failed to publish snapshot message",
			"revision", rev, "error", err)
	}
}

func (s *LedgerService) Close() error {
	if s.amqpClient != nil {
		if err := s.amqpClient.Close(); err != nil {
			return fmt.Errorf("close amqp client: %w", err)
		}
	}
	return nil
}
