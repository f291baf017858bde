package engine

import (
	"testing"
	"time"

	"ledgerdesk/internal/core"
	"ledgerdesk/internal/store"
)

func snapshot(t *testing.T, records ...core.Record) store.Snapshot {
	t.Helper()
	s := store.New()
	s.Replace(records)
	return s.Snapshot()
}

func rec(date core.Date, category, merchant, expense, income string) core.Record {
	return core.Record{
		Date:     date,
		Category: category,
		Merchant: merchant,
		Expense:  core.CoerceAmount(expense),
		Income:   core.CoerceAmount(income),
	}
}

func TestQueryNoFiltersReturnsDatedRecords(t *testing.T) {
	snap := snapshot(t,
		rec(core.NewDate(2024, time.January, 1), "Food", "Cafe", "10", "0"),
		rec(core.Date{}, "Food", "Cafe", "10", "0"), // no date, excluded
	)
	res := Query(snap, FilterSpec{})
	if len(res.Rows) != 1 {
		t.Fatalf("rows=%d, want 1", len(res.Rows))
	}
}

func TestQuerySubstringCaseInsensitive(t *testing.T) {
	snap := snapshot(t,
		rec(core.NewDate(2024, time.January, 1), "Food & Drink", "Cafe", "10", "0"),
		rec(core.NewDate(2024, time.January, 2), "Travel", "Airline", "50", "0"),
	)
	res := Query(snap, FilterSpec{Category: "food"})
	if len(res.Rows) != 1 || res.Rows[0].Record.Category != "Food & Drink" {
		t.Fatalf("unexpected rows: %+v", res.Rows)
	}
}

func TestQueryAllMeansNoConstraint(t *testing.T) {
	snap := snapshot(t,
		rec(core.NewDate(2024, time.January, 1), "Food", "Cafe", "10", "0"),
		rec(core.NewDate(2024, time.January, 2), "Travel", "Airline", "50", "0"),
	)
	res := Query(snap, FilterSpec{Category: All, Merchant: All})
	if len(res.Rows) != 2 {
		t.Fatalf("rows=%d, want 2", len(res.Rows))
	}
}

func TestQueryYearMonthExact(t *testing.T) {
	snap := snapshot(t,
		rec(core.NewDate(2024, time.January, 5), "Food", "Cafe", "10", "0"),
		rec(core.NewDate(2024, time.February, 5), "Food", "Cafe", "20", "0"),
		rec(core.NewDate(2023, time.January, 5), "Food", "Cafe", "30", "0"),
	)
	res := Query(snap, FilterSpec{Year: "2024", Month: "01"})
	if len(res.Rows) != 1 || res.Rows[0].Record.Expense.String() != "10" {
		t.Fatalf("unexpected rows: %+v", res.Rows)
	}
}

func TestQueryDateRangeInclusive(t *testing.T) {
	snap := snapshot(t,
		rec(core.NewDate(2024, time.January, 1), "Food", "Cafe", "1", "0"),
		rec(core.NewDate(2024, time.January, 15), "Food", "Cafe", "2", "0"),
		rec(core.NewDate(2024, time.January, 31), "Food", "Cafe", "3", "0"),
	)
	res := Query(snap, FilterSpec{DateFrom: "2024-01-01", DateTo: "2024-01-15"})
	if len(res.Rows) != 2 {
		t.Fatalf("rows=%d, want 2 (bounds inclusive)", len(res.Rows))
	}
}

func TestQueryAmountRangeInclusive(t *testing.T) {
	snap := snapshot(t,
		rec(core.NewDate(2024, time.January, 1), "Food", "Cafe", "10", "0"),
		rec(core.NewDate(2024, time.January, 2), "Food", "Cafe", "20", "0"),
		rec(core.NewDate(2024, time.January, 3), "Food", "Cafe", "30", "0"),
	)
	res := Query(snap, FilterSpec{ExpenseMin: "10", ExpenseMax: "20"})
	if len(res.Rows) != 2 {
		t.Fatalf("rows=%d, want 2", len(res.Rows))
	}
}

func TestQueryMalformedBoundIgnoredWithWarning(t *testing.T) {
	snap := snapshot(t,
		rec(core.NewDate(2024, time.January, 1), "Food", "Cafe", "10", "0"),
	)
	res := Query(snap, FilterSpec{ExpenseMin: "abc", DateTo: "nonsense"})
	if len(res.Rows) != 1 {
		t.Fatalf("rows=%d, want 1 (bad bounds must not filter)", len(res.Rows))
	}
	if len(res.Warnings) != 2 {
		t.Fatalf("warnings=%d, want 2: %+v", len(res.Warnings), res.Warnings)
	}
}

func TestQueryMinAboveMaxMatchesNothing(t *testing.T) {
	snap := snapshot(t,
		rec(core.NewDate(2024, time.January, 1), "Food", "Cafe", "10", "0"),
	)
	res := Query(snap, FilterSpec{ExpenseMin: "100", ExpenseMax: "1"})
	if !res.Empty() {
		t.Fatalf("want empty result, got %d rows", len(res.Rows))
	}
	if len(res.Warnings) != 0 {
		t.Fatalf("contradictory bounds are valid input, got warnings %+v", res.Warnings)
	}
}

func TestQueryAllDatesEmptySignalsEmpty(t *testing.T) {
	snap := snapshot(t,
		rec(core.Date{}, "Food", "Cafe", "10", "0"),
		rec(core.Date{}, "Travel", "Airline", "20", "0"),
	)
	res := Query(snap, FilterSpec{})
	if res == nil {
		t.Fatal("query ran, result must not be nil")
	}
	if !res.Empty() {
		t.Fatalf("want empty result, got %d rows", len(res.Rows))
	}
}

func TestQuerySortDateDescending(t *testing.T) {
	snap := snapshot(t,
		rec(core.NewDate(2024, time.January, 1), "Food", "Cafe", "1", "0"),
		rec(core.NewDate(2024, time.March, 1), "Food", "Cafe", "2", "0"),
		rec(core.NewDate(2024, time.February, 1), "Food", "Cafe", "3", "0"),
	)
	res := Query(snap, FilterSpec{})
	want := []string{"2024-03-01", "2024-02-01", "2024-01-01"}
	for i, w := range want {
		if got := res.Rows[i].Record.Date.String(); got != w {
			t.Fatalf("row %d date=%s, want %s", i, got, w)
		}
	}
}

func TestQueryBalancePerRow(t *testing.T) {
	snap := snapshot(t,
		rec(core.NewDate(2024, time.January, 1), "Salary", "Employer", "0", "1000"),
		rec(core.NewDate(2024, time.January, 2), "Food", "Cafe", "25", "0"),
	)
	res := Query(snap, FilterSpec{})
	for _, row := range res.Rows {
		want := row.Record.Income.Sub(row.Record.Expense)
		if !row.Balance.Equal(want) {
			t.Fatalf("balance=%s, want %s", row.Balance, want)
		}
	}
}

func TestQueryPredicatesCombineWithAnd(t *testing.T) {
	snap := snapshot(t,
		rec(core.NewDate(2024, time.January, 1), "Food", "Cafe", "10", "0"),
		rec(core.NewDate(2024, time.January, 2), "Food", "Market", "20", "0"),
		rec(core.NewDate(2023, time.January, 3), "Food", "Cafe", "30", "0"),
	)
	res := Query(snap, FilterSpec{Category: "Food", Merchant: "Cafe", Year: "2024"})
	if len(res.Rows) != 1 || res.Rows[0].Record.Expense.String() != "10" {
		t.Fatalf("unexpected rows: %+v", res.Rows)
	}
}
