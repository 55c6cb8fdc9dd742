package spreadsheet

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestTemplateRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteTemplate(&buf); err != nil {
		t.Fatalf("write template: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("open generated template: %v", err)
	}
	defer f.Close()

	sheetList := f.GetSheetList()
	if len(sheetList) != 1 || sheetList[0] != TemplateSheetName {
		t.Fatalf("expected single %q sheet, got %v", TemplateSheetName, sheetList)
	}

	rows, err := f.GetRows(TemplateSheetName)
	if err != nil {
		t.Fatalf("read rows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("template must have header + placeholder row, got %d", len(rows))
	}
	for i, want := range Header {
		if rows[0][i] != want {
			t.Fatalf("header column %d: want %q, got %q", i, want, rows[0][i])
		}
	}
	if rows[1][0] != "YYYY-MM-DD" {
		t.Fatalf("unexpected placeholder row: %v", rows[1])
	}
}

func TestReadWorkbookSkipsHeader(t *testing.T) {
	f := excelize.NewFile()
	data := [][]string{
		{"Date", "Type", "Category", "Amount", "Currency"},
		{"2025-01-05", "income", "Salary", "1000", "USD"},
		{"2025-01-06", "expense", "Variable - Food", "12.75", "AED"},
	}
	for i, row := range data {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	f.Close()

	rows, err := ReadWorkbook(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("read workbook: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("header row must be skipped, got %d rows", len(rows))
	}
	if rows[0][3] != "1000" || rows[1][4] != "AED" {
		t.Fatalf("unexpected rows: %v", rows)
	}
}

func TestReadWorkbookHeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteTemplate(&buf); err != nil {
		t.Fatalf("write template: %v", err)
	}
	// A template has a placeholder row, so strip down to header only.
	f := excelize.NewFile()
	header := Header
	if err := f.SetSheetRow("Sheet1", "A1", &header); err != nil {
		t.Fatalf("set header: %v", err)
	}
	buf.Reset()
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	f.Close()

	rows, err := ReadWorkbook(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("read workbook: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("header-only workbook should yield no rows, got %d", len(rows))
	}
}
