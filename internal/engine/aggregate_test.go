package engine

import (
	"testing"
	"time"

	"ledgerdesk/internal/core"
)

func rows(records ...core.Record) []Row {
	out := make([]Row, len(records))
	for i, r := range records {
		out[i] = Row{Record: r, Balance: r.Balance()}
	}
	return out
}

func TestAggregateGroups(t *testing.T) {
	in := rows(
		rec(core.NewDate(2024, time.January, 1), "Food", "Cafe", "30", "0"),
		rec(core.NewDate(2024, time.January, 2), "Travel", "Airline", "50", "0"),
		rec(core.NewDate(2024, time.January, 3), "Food", "Cafe", "20", "0"),
	)
	sum := Aggregate(in)

	if sum.Totals.Count != 3 {
		t.Fatalf("count=%d", sum.Totals.Count)
	}
	if sum.Totals.Expense.String() != "100" {
		t.Fatalf("expense=%s", sum.Totals.Expense)
	}
	if sum.Totals.Net.String() != "-100" {
		t.Fatalf("net=%s", sum.Totals.Net)
	}

	if len(sum.Groups) != 2 {
		t.Fatalf("groups=%d, want 2", len(sum.Groups))
	}
	// first-appearance order
	if sum.Groups[0].Category != "Food" || sum.Groups[1].Category != "Travel" {
		t.Fatalf("group order: %+v", sum.Groups)
	}
	if sum.Groups[0].Expense.String() != "50" || sum.Groups[0].Count != 2 {
		t.Fatalf("food group: %+v", sum.Groups[0])
	}
	if sum.Groups[1].Expense.String() != "50" || sum.Groups[1].Count != 1 {
		t.Fatalf("travel group: %+v", sum.Groups[1])
	}
}

func TestAggregateSameCategoryDifferentMerchant(t *testing.T) {
	in := rows(
		rec(core.NewDate(2024, time.January, 1), "Food", "Cafe", "10", "0"),
		rec(core.NewDate(2024, time.January, 2), "Food", "Market", "20", "0"),
	)
	sum := Aggregate(in)
	if len(sum.Groups) != 2 {
		t.Fatalf("groups=%d, want 2 (merchant is part of the key)", len(sum.Groups))
	}
}

func TestAggregateEmptyInput(t *testing.T) {
	sum := Aggregate(nil)
	if sum.Totals.Count != 0 || !sum.Totals.Net.IsZero() || len(sum.Groups) != 0 {
		t.Fatalf("unexpected summary: %+v", sum)
	}
}

func TestCategoryExpensesExcludesZero(t *testing.T) {
	in := rows(
		rec(core.NewDate(2024, time.January, 1), "Food", "Cafe", "10", "0"),
		rec(core.NewDate(2024, time.January, 2), "Salary", "Employer", "0", "1000"),
	)
	cats := CategoryExpenses(in)
	if len(cats) != 1 || cats[0].Category != "Food" {
		t.Fatalf("unexpected categories: %+v", cats)
	}
}

func TestTopCategoriesOrderAndLimit(t *testing.T) {
	in := rows(
		rec(core.NewDate(2024, time.January, 1), "A", "M", "10", "0"),
		rec(core.NewDate(2024, time.January, 2), "B", "M", "30", "0"),
		rec(core.NewDate(2024, time.January, 3), "C", "M", "20", "0"),
	)
	top := TopCategories(in, 2)
	if len(top) != 2 || top[0].Category != "B" || top[1].Category != "C" {
		t.Fatalf("unexpected top: %+v", top)
	}
}
