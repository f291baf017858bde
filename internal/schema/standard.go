package schema

import (
	"ledgerdesk/internal/core"
	"ledgerdesk/internal/tabular"
)

// standardAdapter handles files the tool wrote itself, or anything that
// matches the canonical header. The Total column, when present, is derived
// data and is dropped on load.
type standardAdapter struct{}

func (standardAdapter) Name() string { return "standard" }

func (standardAdapter) Match(t *tabular.Table) bool {
	return hasAll(t,
		ColReportName,
		ColExpenseDate,
		ColExpenseAmount,
		ColExpenseDescription,
		ColExpenseCategory,
		ColMerchantName,
		ColIncomeAmount,
	)
}

func (standardAdapter) Records(t *tabular.Table, sourcePath string) []core.Record {
	report := t.ColumnIndex(ColReportName)
	date := t.ColumnIndex(ColExpenseDate)
	expense := t.ColumnIndex(ColExpenseAmount)
	description := t.ColumnIndex(ColExpenseDescription)
	category := t.ColumnIndex(ColExpenseCategory)
	paid := t.ColumnIndex(ColPaidThrough) // optional, older files lack it
	merchant := t.ColumnIndex(ColMerchantName)
	income := t.ColumnIndex(ColIncomeAmount)

	records := make([]core.Record, 0, len(t.Rows))
	for _, row := range t.Rows {
		d, _ := core.ParseDate(t.Cell(row, date))
		records = append(records, core.Record{
			ReportName:  t.Cell(row, report),
			Date:        d,
			Expense:     core.CoerceAmount(t.Cell(row, expense)),
			Income:      core.CoerceAmount(t.Cell(row, income)),
			Description: t.Cell(row, description),
			Category:    t.Cell(row, category),
			Merchant:    t.Cell(row, merchant),
			PaidThrough: t.Cell(row, paid),
		})
	}
	return records
}
