// Package spreadsheet holds the import/export adapters: CSV export of
// the full transaction list, the XLSX import template, and XLSX
// workbook reading for bulk import.
package spreadsheet

import (
	"encoding/csv"
	"fmt"
	"io"

	"spendera/internal/core"
)

// ExportFilename is the download name for CSV exports.
const ExportFilename = "spendera_export.csv"

// Header is the shared column layout of every adapter in this package.
var Header = []string{"Date", "Type", "Category", "Amount", "Currency"}

// WriteCSV serializes the entire transaction list (not filtered by
// month) in store order. Fields with embedded delimiters are quoted per
// RFC 4180, so categories containing commas survive a re-import.
func WriteCSV(w io.Writer, txs []core.Transaction) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, t := range txs {
		rec := []string{t.Date, string(t.Type), t.Category, t.Amount.String(), t.Currency}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write csv record: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
