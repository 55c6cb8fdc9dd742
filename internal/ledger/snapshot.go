// Package ledger owns the transaction list and user settings, and the
// persistence round-trip to a durable snapshot slot.
package ledger

import (
	"context"
	"errors"
	"strconv"

	"spendera/internal/core"
)

// Snapshot is the persisted blob: the full transaction list plus the two
// user settings, written as one JSON object under a single storage key.
// There is no version field; absent fields default on load.
type Snapshot struct {
	Transactions  []core.Transaction `json:"transactions"`
	Currency      string             `json:"currency"`
	SelectedMonth string             `json:"selectedMonth"`
}

var (
	// ErrNotFound means the slot has never been written (or was erased).
	ErrNotFound = errors.New("snapshot not found")
	// ErrCorrupt means the slot exists but its JSON does not parse.
	// Callers recover by falling back to defaults; it never propagates
	// as a crash.
	ErrCorrupt = errors.New("snapshot corrupt")

	ErrUnknownCurrency = errors.New("unsupported display currency")
)

// SnapshotRepository is the durable key-value slot behind the store. One
// key holds the snapshot JSON; an independent second key holds the
// dark-mode preference.
type SnapshotRepository interface {
	Load(ctx context.Context) (Snapshot, error)
	Save(ctx context.Context, snap Snapshot) error
	Erase(ctx context.Context) error

	LoadDarkMode(ctx context.Context) (bool, error)
	SaveDarkMode(ctx context.Context, enabled bool) error
}

// RowError describes a field that bulk import had to coerce. Import is
// lossy but total: a malformed row still produces a record, and the
// coercions are collected here for caller inspection instead of aborting
// the batch.
type RowError struct {
	Row    int    `json:"row"` // 1-based data row, header excluded
	Field  string `json:"field"`
	Value  string `json:"value"`
	Reason string `json:"reason"`
}

func (e RowError) Error() string {
	return "row " + strconv.Itoa(e.Row) + " " + e.Field + ": " + e.Reason
}
