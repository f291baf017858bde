package engine

import (
	"log/slog"
	"sort"
	"strconv"

	"github.com/shopspring/decimal"

	"ledgerdesk/internal/core"
	"ledgerdesk/internal/store"
)

type (
	// Row is one matched record annotated with its derived balance.
	Row struct {
		Record  core.Record
		Balance decimal.Decimal
	}

	// Warning reports a filter input that was ignored rather than applied,
	// typically a malformed range bound. The query still ran; the warning
	// exists so the caller can tell the user.
	Warning struct {
		Field  string
		Value  string
		Reason string
	}

	// Result is the outcome of a query that ran. A nil *Result means the
	// query was never run; a Result with no rows means it ran and matched
	// nothing. Callers distinguish the two.
	Result struct {
		Rows     []Row
		Warnings []Warning
	}
)

// Empty reports that the query ran and matched no records.
func (r *Result) Empty() bool {
	return r != nil && len(r.Rows) == 0
}

// Query applies the full filter spec to a snapshot and returns the matched
// rows sorted by expense date descending (ties keep their original relative
// order). Records without a date are excluded up front. Every active
// predicate must match (AND combination).
func Query(snap store.Snapshot, spec FilterSpec) *Result {
	res := &Result{}

	dateFrom, dateTo := spec.dateBounds(res)
	expMin := parseBound(&res.Warnings, "expense_min", spec.ExpenseMin)
	expMax := parseBound(&res.Warnings, "expense_max", spec.ExpenseMax)
	incMin := parseBound(&res.Warnings, "income_min", spec.IncomeMin)
	incMax := parseBound(&res.Warnings, "income_max", spec.IncomeMax)
	year := parseIntFilter(&res.Warnings, KeyYear, spec.Year)
	month := parseIntFilter(&res.Warnings, KeyMonth, spec.Month)

	for _, rec := range snap.Records {
		if rec.Date.IsEmpty() {
			continue
		}
		if active(spec.Report) && !containsFold(rec.ReportName, spec.Report) {
			continue
		}
		if year != nil && rec.Date.Year() != *year {
			continue
		}
		if month != nil && rec.Date.Month() != *month {
			continue
		}
		if active(spec.Category) && !containsFold(rec.Category, spec.Category) {
			continue
		}
		if active(spec.Merchant) && !containsFold(rec.Merchant, spec.Merchant) {
			continue
		}
		if active(spec.PaidThrough) && !containsFold(rec.PaidThrough, spec.PaidThrough) {
			continue
		}
		if active(spec.Description) && !containsFold(rec.Description, spec.Description) {
			continue
		}
		if dateFrom != nil && rec.Date.Before(*dateFrom) {
			continue
		}
		if dateTo != nil && rec.Date.After(*dateTo) {
			continue
		}
		if expMin != nil && rec.Expense.Cmp(*expMin) < 0 {
			continue
		}
		if expMax != nil && rec.Expense.Cmp(*expMax) > 0 {
			continue
		}
		if incMin != nil && rec.Income.Cmp(*incMin) < 0 {
			continue
		}
		if incMax != nil && rec.Income.Cmp(*incMax) > 0 {
			continue
		}
		res.Rows = append(res.Rows, Row{Record: rec, Balance: rec.Balance()})
	}

	sort.SliceStable(res.Rows, func(i, j int) bool {
		return res.Rows[j].Record.Date.Before(res.Rows[i].Record.Date)
	})

	for _, w := range res.Warnings {
		slog.Warn("Filter input ignored", "field", w.Field, "value", w.Value, "reason", w.Reason)
	}
	return res
}

func (s FilterSpec) dateBounds(res *Result) (from, to *core.Date) {
	if active(s.DateFrom) {
		if d, ok := core.ParseDate(s.DateFrom); ok {
			from = &d
		} else {
			res.Warnings = append(res.Warnings, Warning{Field: "date_from", Value: s.DateFrom, Reason: "unparseable date"})
		}
	}
	if active(s.DateTo) {
		if d, ok := core.ParseDate(s.DateTo); ok {
			to = &d
		} else {
			res.Warnings = append(res.Warnings, Warning{Field: "date_to", Value: s.DateTo, Reason: "unparseable date"})
		}
	}
	return from, to
}

func parseBound(warnings *[]Warning, field, v string) *decimal.Decimal {
	if !active(v) {
		return nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		*warnings = append(*warnings, Warning{Field: field, Value: v, Reason: "not a number"})
		return nil
	}
	return &d
}

func parseIntFilter(warnings *[]Warning, field, v string) *int {
	if !active(v) {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		*warnings = append(*warnings, Warning{Field: field, Value: v, Reason: "not an integer"})
		return nil
	}
	return &n
}
