package export

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/theirongolddev/spendfold/internal/model"
)

func rows() []model.FlatExpense {
	return []model.FlatExpense{
		{Expense: model.Expense{
			ID: 1700000000001, Title: "Rent", Amount: decimal.NewFromInt(500),
			Category: model.CategoryRent, Date: model.NewDate(2026, time.October, 1), FolderID: 1700000000000,
			Tags: []string{"fixed", "home"},
		}, FolderName: "Home"},
		{Expense: model.Expense{
			ID: 1700000000003, Title: "Train", Amount: decimal.RequireFromString("30.5"),
			Category: model.CategoryTravel, Date: model.NewDate(2026, time.October, 3), FolderID: 1700000000002,
			PaymentMethod: model.PaymentUPI,
		}, FolderName: "Trips"},
	}
}

func readRows(t *testing.T, f *excelize.File) [][]string {
	t.Helper()
	if got := f.GetSheetList(); len(got) != 1 || got[0] != SheetName {
		t.Fatalf("sheets = %v, want [%s]", got, SheetName)
	}
	r, err := f.GetRows(SheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	return r
}

func TestWriteOneSheetOneRowPerExpense(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, rows()); err != nil {
		t.Fatalf("Write: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer func() { _ = f.Close() }()

	got := readRows(t, f)
	if len(got) != 3 {
		t.Fatalf("rows = %d, want header + 2", len(got))
	}
	for i, c := range Columns {
		if got[0][i] != c {
			t.Errorf("header[%d] = %q, want %q", i, got[0][i], c)
		}
	}
	if got[1][0] != "1700000000001" || got[1][1] != "Rent" || got[1][2] != "500" {
		t.Errorf("row 1 = %v", got[1])
	}
	if got[1][8] != "fixed, home" || got[1][9] != "Home" {
		t.Errorf("row 1 tags/folder = %v", got[1])
	}
	if got[2][4] != "2026-10-03" || got[2][7] != "UPI" || got[2][9] != "Trips" {
		t.Errorf("row 2 = %v", got[2])
	}
}

func TestWriteFileEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFilename)
	if err := WriteFile(path, nil); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	defer func() { _ = f.Close() }()

	if got := readRows(t, f); len(got) != 1 {
		t.Errorf("rows = %d, want header only", len(got))
	}
}
