package schema

import (
	"strings"

	"ledgerdesk/internal/core"
	"ledgerdesk/internal/tabular"
)

// vendorAdapter handles the bank-export layout: one Amount column routed to
// income or expense by a Type column. The export has no merchant or report
// column, so the report name falls back to the file's base name.
type vendorAdapter struct{}

func (vendorAdapter) Name() string { return "vendor" }

func (vendorAdapter) Match(t *tabular.Table) bool {
	return hasAll(t, "Date", "Category", "Description", "Type", "Amount")
}

func (vendorAdapter) Records(t *tabular.Table, sourcePath string) []core.Record {
	date := t.ColumnIndex("Date")
	category := t.ColumnIndex("Category")
	description := t.ColumnIndex("Description")
	kind := t.ColumnIndex("Type")
	amount := t.ColumnIndex("Amount")

	report := baseName(sourcePath)
	records := make([]core.Record, 0, len(t.Rows))
	for _, row := range t.Rows {
		d, _ := core.ParseDate(t.Cell(row, date))
		r := core.Record{
			ReportName:  report,
			Date:        d,
			Description: t.Cell(row, description),
			Category:    t.Cell(row, category),
		}
		// Only the two known types carry the amount over. Anything else
		// keeps both sides at zero rather than guessing a direction.
		value := core.CoerceAmount(t.Cell(row, amount))
		switch rowType := strings.TrimSpace(t.Cell(row, kind)); {
		case strings.EqualFold(rowType, "income"):
			r.Income = value
		case strings.EqualFold(rowType, "expense"):
			r.Expense = value
		}
		records = append(records, r)
	}
	return records
}
