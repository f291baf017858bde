// Package tabular reads and writes ledger files as plain tables: a header
// of column names plus string-valued rows. Field semantics live one layer
// up, in the schema adapters; this package only knows file formats.
//
// Supported formats, chosen by extension: CSV, XLSX workbooks, and
// single-table SQLite files.
package tabular

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Table is a rectangular, stringly-typed view of a ledger file.
type Table struct {
	Columns []string
	Rows    [][]string
}

// ErrUnsupportedFormat is wrapped into the error returned for an extension
// no reader or writer handles.
var ErrUnsupportedFormat = fmt.Errorf("unsupported file format")

// NewTable builds an empty table with the given header.
func NewTable(columns []string) *Table {
	return &Table{Columns: append([]string(nil), columns...)}
}

// Append adds a row, padding or truncating it to the header width.
func (t *Table) Append(row []string) {
	fitted := make([]string, len(t.Columns))
	copy(fitted, row)
	t.Rows = append(t.Rows, fitted)
}

// Cell returns the value at (row, column index), or "" when the row is
// ragged and does not reach the column.
func (t *Table) Cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}

// ColumnIndex returns the position of the named column, or -1. Matching
// trims surrounding whitespace, as spreadsheet headers often carry it.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if strings.TrimSpace(c) == name {
			return i
		}
	}
	return -1
}

// ReadFile loads the table from path, picking the reader by extension.
func ReadFile(path string) (*Table, error) {
	switch ext(path) {
	case ".csv":
		return readCSV(path)
	case ".xlsx":
		return readXLSX(path)
	case ".db", ".sqlite", ".sqlite3":
		return readSQLite(path)
	default:
		return nil, fmt.Errorf("read %s: %w: %s", path, ErrUnsupportedFormat, ext(path))
	}
}

// WriteFile writes the table to path, picking the writer by extension.
func WriteFile(path string, t *Table) error {
	switch ext(path) {
	case ".csv":
		return writeCSV(path, t)
	case ".xlsx":
		return writeXLSX(path, t)
	case ".db", ".sqlite", ".sqlite3":
		return writeSQLite(path, t)
	default:
		return fmt.Errorf("write %s: %w: %s", path, ErrUnsupportedFormat, ext(path))
	}
}

// Supported reports whether the path's extension names a known format.
func Supported(path string) bool {
	switch ext(path) {
	case ".csv", ".xlsx", ".db", ".sqlite", ".sqlite3":
		return true
	}
	return false
}

func ext(path string) string {
	return strings.ToLower(filepath.Ext(path))
}
