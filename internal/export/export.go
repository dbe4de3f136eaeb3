// Package export writes the flattened expense list to an xlsx workbook.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/theirongolddev/spendfold/internal/model"
)

const (
	// SheetName is the only sheet in an exported workbook.
	SheetName = "Expenses"
	// DefaultFilename is used when no output path is given.
	DefaultFilename = "expenses.xlsx"
)

// Columns is the header row, one column per flattened expense field.
var Columns = []string{
	"id", "title", "amount", "category", "date",
	"folderId", "description", "paymentMethod", "tags", "folderName",
}

// Workbook builds an in-memory workbook. The caller must Close it.
func Workbook(flat []model.FlatExpense) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("naming sheet: %w", err)
	}

	header := make([]any, len(Columns))
	for i, c := range Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("writing header: %w", err)
	}

	for i, e := range flat {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("locating row %d: %w", i+2, err)
		}
		row := []any{
			e.ID,
			e.Title,
			e.Amount.InexactFloat64(),
			string(e.Category),
			e.Date.String(),
			e.FolderID,
			e.Description,
			string(e.PaymentMethod),
			strings.Join(e.Tags, ", "),
			e.FolderName,
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return f, nil
}

// Write streams the workbook to w.
func Write(w io.Writer, flat []model.FlatExpense) error {
	f, err := Workbook(flat)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

// WriteFile saves the workbook at path.
func WriteFile(path string, flat []model.FlatExpense) error {
	f, err := Workbook(flat)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}
