// Package export writes query results to files the user takes elsewhere:
// CSV tables and the figures behind the summary charts.
package export

import (
	"encoding/csv"
	"fmt"
	"os"

	"ledgerdesk/internal/engine"
)

var csvHeader = []string{
	"Report Name",
	"Expense Date",
	"Expense Amount",
	"Expense Description",
	"Expense Category",
	"Paid Through",
	"Merchant Name",
	"Income Amount",
	"Balance",
}

// WriteCSV writes the rows, including the running balance column, in the
// order given. Amounts are fixed to two decimals.
func WriteCSV(path string, rows []engine.Row) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("writing export header: %w", err)
	}
	for _, row := range rows {
		r := row.Record
		date := ""
		if !r.Date.IsEmpty() {
			date = r.Date.String()
		}
		record := []string{
			r.ReportName,
			date,
			r.Expense.StringFixed(2),
			r.Description,
			r.Category,
			r.PaidThrough,
			r.Merchant,
			r.Income.StringFixed(2),
			row.Balance.StringFixed(2),
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("writing export row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing export: %w", err)
	}
	return f.Close()
}
