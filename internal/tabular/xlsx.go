package tabular

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Spreadsheet exports often carry title rows above the real header, so the
// reader scans the first few rows for a cell that names a category column.
const headerScanDepth = 10

func readXLSX(path string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return &Table{}, nil
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading sheet %s: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return &Table{}, nil
	}

	header := findHeaderRow(rows)
	t := NewTable(trimmed(rows[header]))
	for _, row := range rows[header+1:] {
		t.Append(row)
	}
	return t, nil
}

func writeXLSX(path string, t *Table) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	if err := setRow(f, sheet, 1, t.Columns); err != nil {
		return err
	}
	for i, row := range t.Rows {
		if err := setRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, rowNum int, cells []string) error {
	values := make([]interface{}, len(cells))
	for i, c := range cells {
		values[i] = c
	}
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return fmt.Errorf("addressing row %d: %w", rowNum, err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("writing row %d: %w", rowNum, err)
	}
	return nil
}

func findHeaderRow(rows [][]string) int {
	depth := headerScanDepth
	if len(rows) < depth {
		depth = len(rows)
	}
	for i := 0; i < depth; i++ {
		for _, cell := range rows[i] {
			c := strings.TrimSpace(cell)
			if c == "Expense Category" || c == "Category" {
				return i
			}
		}
	}
	return 0
}

func trimmed(row []string) []string {
	out := make([]string, len(row))
	for i, c := range row {
		out[i] = strings.TrimSpace(c)
	}
	return out
}
