package spreadsheet

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// TemplateFilename is the download name for the import template.
const TemplateFilename = "spendera_template.xlsx"

// TemplateSheetName is the single sheet in the generated template.
const TemplateSheetName = "Template"

// templatePlaceholders describes the expected value format per column.
var templatePlaceholders = []string{"YYYY-MM-DD", "income/expense", "category", "amount", "USD/AED/PKR"}

// WriteTemplate produces the two-row import template workbook: the
// header row and one placeholder row describing expected formats.
func WriteTemplate(w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", TemplateSheetName); err != nil {
		return fmt.Errorf("rename template sheet: %w", err)
	}
	if err := f.SetSheetRow(TemplateSheetName, "A1", &Header); err != nil {
		return fmt.Errorf("write template header: %w", err)
	}
	if err := f.SetSheetRow(TemplateSheetName, "A2", &templatePlaceholders); err != nil {
		return fmt.Errorf("write template placeholders: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write template workbook: %w", err)
	}
	return nil
}

// ReadWorkbook reads an uploaded workbook, takes the first sheet, skips
// the header row and returns the remaining rows positionally. Row
// coercion is the ledger's job; this adapter only extracts cells.
func ReadWorkbook(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheetList := f.GetSheetList()
	if len(sheetList) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheetList[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheetList[0], err)
	}
	if len(rows) <= 1 {
		return nil, nil // header only, or empty
	}

	out := make([][]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		trimmed := make([]string, len(row))
		for i, cell := range row {
			trimmed[i] = strings.TrimSpace(cell)
		}
		out = append(out, trimmed)
	}
	return out, nil
}
