package sheets

import (
	"context"

	"spendera/internal/ledger"
)

// Ports for outbound spreadsheet adapters.
type (
	// LedgerMirror rewrites a remote sheet with the full ledger
	// snapshot. Mirroring is best-effort; the ledger itself never
	// depends on it.
	LedgerMirror interface {
		MirrorSnapshot(ctx context.Context, snap ledger.Snapshot) error
	}

	// RowSource reads positional (date, type, category, amount,
	// currency) rows from a remote sheet for bulk import.
	RowSource interface {
		ReadRows(ctx context.Context) ([][]string, error)
	}
)
