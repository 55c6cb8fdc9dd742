package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"spendera/internal/core"
	"spendera/internal/ledger"
	"spendera/internal/spreadsheet"
)

// maxImportSize caps uploaded workbook size at 8 MiB.
const maxImportSize = 8 << 20

// handleTransactions dispatches on method: list, add or clear.
func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.listTransactions(w, r)
	case http.MethodPost:
		s.addTransaction(w, r)
	case http.MethodDelete:
		s.clearTransactions(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) listTransactions(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")

	var txs []core.Transaction
	if month == "" {
		txs = s.svc.Transactions()
	} else {
		if err := core.ValidateMonth(month); err != nil {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		txs = s.svc.TransactionsForMonth(month)
	}
	if txs == nil {
		txs = []core.Transaction{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"transactions": txs})
}

func (s *Server) addTransaction(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form data")
		return
	}

	t, err := s.svc.Add(r.Context(),
		r.FormValue("amount"),
		core.TransactionType(r.FormValue("type")),
		r.FormValue("category"),
		r.FormValue("month"),
		r.FormValue("currency"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, t)
}

func (s *Server) clearTransactions(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Clear(r.Context()); err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	month := r.URL.Query().Get("month")
	if month != "" {
		if err := core.ValidateMonth(month); err != nil {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
	}
	currency := r.URL.Query().Get("currency")
	if currency != "" && !core.KnownCurrency(currency) {
		writeError(w, http.StatusUnprocessableEntity, "unknown currency")
		return
	}

	writeJSON(w, http.StatusOK, s.svc.Summarize(month, currency))
}

type settingsResponse struct {
	Currency      string `json:"currency"`
	SelectedMonth string `json:"selectedMonth"`
	DarkMode      bool   `json:"darkMode"`
}

// handleSettings reads or updates the user settings. PUT applies only
// the fields present in the form, so a currency change does not have to
// resend the month.
func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
	case http.MethodPut:
		if err := r.ParseForm(); err != nil {
			writeError(w, http.StatusBadRequest, "invalid form data")
			return
		}
		if code := r.FormValue("currency"); code != "" {
			if err := s.svc.SetCurrency(r.Context(), code); err != nil {
				writeDomainError(w, r, err)
				return
			}
		}
		if month := r.FormValue("selectedMonth"); month != "" {
			if err := s.svc.SetSelectedMonth(r.Context(), month); err != nil {
				writeDomainError(w, r, err)
				return
			}
		}
		if mode := r.FormValue("darkMode"); mode != "" {
			if err := s.svc.SetDarkMode(r.Context(), mode == "true"); err != nil {
				writeDomainError(w, r, err)
				return
			}
		}
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	currency, month := s.svc.Settings()
	writeJSON(w, http.StatusOK, settingsResponse{
		Currency:      currency,
		SelectedMonth: month,
		DarkMode:      s.svc.DarkMode(r.Context()),
	})
}

type importResponse struct {
	Added     int               `json:"added"`
	RowErrors []ledger.RowError `json:"rowErrors"`
}

// handleImport accepts a multipart upload under the "file" field,
// reads the workbook's first sheet and bulk-appends its rows.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if err := r.ParseMultipartForm(maxImportSize); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart upload")
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing 'file' field")
		return
	}
	defer file.Close()

	rows, err := spreadsheet.ReadWorkbook(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unreadable workbook: %v", err))
		return
	}

	added, rowErrs, err := s.svc.ImportRows(r.Context(), rows)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	if rowErrs == nil {
		rowErrs = []ledger.RowError{}
	}

	writeJSON(w, http.StatusOK, importResponse{Added: added, RowErrors: rowErrs})
}

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", spreadsheet.ExportFilename))
	if err := spreadsheet.WriteCSV(w, s.svc.Transactions()); err != nil {
		slog.ErrorContext(r.Context(), "CSV export failed", "error", err)
	}
}

func (s *Server) handleExportTemplate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", spreadsheet.TemplateFilename))
	if err := spreadsheet.WriteTemplate(w); err != nil {
		slog.ErrorContext(r.Context(), "Template export failed", "error", err)
	}
}

// writeDomainError maps validation errors to 422 and everything else to
// 500, logging only the latter.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, core.ErrInvalidAmount),
		errors.Is(err, core.ErrInvalidMonth),
		errors.Is(err, core.ErrInvalidType),
		errors.Is(err, core.ErrUnknownCategory),
		errors.Is(err, ledger.ErrUnknownCurrency):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		slog.ErrorContext(r.Context(), "Request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
