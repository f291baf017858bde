package tui

import (
	"ledgerdesk/internal/core"
	"ledgerdesk/internal/engine"
)

// recordForm holds the edit screen's raw inputs. Parsing happens on
// submit so the user can type freely.
type recordForm struct {
	Date        string
	Expense     string
	Income      string
	Description string
	Category    string
	Merchant    string
	PaidThrough string
	Report      string
}

func formFromRecord(r core.Record) recordForm {
	date := ""
	if !r.Date.IsEmpty() {
		date = r.Date.String()
	}
	return recordForm{
		Date:        date,
		Expense:     r.Expense.String(),
		Income:      r.Income.String(),
		Description: r.Description,
		Category:    r.Category,
		Merchant:    r.Merchant,
		PaidThrough: r.PaidThrough,
		Report:      r.ReportName,
	}
}

// toFields validates the inputs and returns the field set to apply.
func (f recordForm) toFields() (core.Fields, error) {
	var fields core.Fields

	if f.Date != "" {
		d, err := core.ParseUserDate(f.Date)
		if err != nil {
			return fields, err
		}
		fields.Date = &d
	} else {
		var empty core.Date
		fields.Date = &empty
	}

	expense, err := core.ParseUserAmount("expense amount", f.Expense)
	if err != nil {
		return fields, err
	}
	income, err := core.ParseUserAmount("income amount", f.Income)
	if err != nil {
		return fields, err
	}
	fields.Expense = &expense
	fields.Income = &income

	fields.Description = &f.Description
	fields.Category = &f.Category
	fields.Merchant = &f.Merchant
	fields.PaidThrough = &f.PaidThrough
	fields.ReportName = &f.Report
	return fields, nil
}

func (f *recordForm) field(i uint) *string {
	switch i {
	case editDate:
		return &f.Date
	case editExpense:
		return &f.Expense
	case editIncome:
		return &f.Income
	case editDescription:
		return &f.Description
	case editCategory:
		return &f.Category
	case editMerchant:
		return &f.Merchant
	case editPaidThrough:
		return &f.PaidThrough
	default:
		return &f.Report
	}
}

func specField(s *engine.FilterSpec, i uint) *string {
	switch i {
	case filterReport:
		return &s.Report
	case filterYear:
		return &s.Year
	case filterMonth:
		return &s.Month
	case filterCategory:
		return &s.Category
	case filterMerchant:
		return &s.Merchant
	case filterPaidThrough:
		return &s.PaidThrough
	case filterDescription:
		return &s.Description
	case filterDateFrom:
		return &s.DateFrom
	case filterDateTo:
		return &s.DateTo
	case filterExpenseMin:
		return &s.ExpenseMin
	case filterExpenseMax:
		return &s.ExpenseMax
	case filterIncomeMin:
		return &s.IncomeMin
	default:
		return &s.IncomeMax
	}
}
