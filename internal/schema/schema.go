// Package schema turns raw tables into ledger records. Each supported file
// layout is an Adapter; Translate tries them in order and converts with the
// first one whose required columns are all present.
package schema

import (
	"path/filepath"
	"strings"

	"ledgerdesk/internal/core"
	"ledgerdesk/internal/tabular"
)

// Canonical column names, as written by Render and expected by the
// standard adapter.
const (
	ColReportName         = "Report Name"
	ColTotal              = "Total"
	ColExpenseDate        = "Expense Date"
	ColExpenseAmount      = "Expense Amount"
	ColExpenseDescription = "Expense Description"
	ColExpenseCategory    = "Expense Category"
	ColPaidThrough        = "Paid Through"
	ColMerchantName       = "Merchant Name"
	ColIncomeAmount       = "Income Amount"
)

// Adapter recognizes one file layout and converts its rows to records.
type Adapter interface {
	// Name identifies the layout in logs and errors.
	Name() string
	// Match reports whether the table carries the adapter's required columns.
	Match(t *tabular.Table) bool
	// Records converts every row. Conversion never fails per row: malformed
	// cells degrade to empty dates and zero amounts.
	Records(t *tabular.Table, sourcePath string) []core.Record
}

// adapters in match order. The vendor export is tried first because its
// column set is a near-subset of what a sloppy standard file can look like,
// not the other way around.
var adapters = []Adapter{vendorAdapter{}, standardAdapter{}}

// Translate converts the table using the first matching adapter. The
// returned name identifies which layout matched.
func Translate(t *tabular.Table, sourcePath string) ([]core.Record, string, error) {
	for _, a := range adapters {
		if a.Match(t) {
			return a.Records(t, sourcePath), a.Name(), nil
		}
	}
	return nil, "", &core.LoadError{
		Path:   sourcePath,
		Reason: "no known column layout matched the file header",
	}
}

// Render builds the canonical table for the given records, ready to be
// written back to disk in any supported format.
func Render(records []core.Record) *tabular.Table {
	t := tabular.NewTable([]string{
		ColReportName,
		ColExpenseDate,
		ColExpenseAmount,
		ColExpenseDescription,
		ColExpenseCategory,
		ColPaidThrough,
		ColMerchantName,
		ColIncomeAmount,
	})
	for _, r := range records {
		date := ""
		if !r.Date.IsEmpty() {
			date = r.Date.String()
		}
		t.Append([]string{
			r.ReportName,
			date,
			r.Expense.String(),
			r.Description,
			r.Category,
			r.PaidThrough,
			r.Merchant,
			r.Income.String(),
		})
	}
	return t
}

func baseName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func hasAll(t *tabular.Table, names ...string) bool {
	for _, n := range names {
		if t.ColumnIndex(n) < 0 {
			return false
		}
	}
	return true
}
