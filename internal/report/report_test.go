package report

import (
	"strings"
	"testing"
	"time"

	"ledgerdesk/internal/core"
	"ledgerdesk/internal/engine"
)

func row(date core.Date, category, expense, income string) engine.Row {
	r := core.Record{
		Date:     date,
		Category: category,
		Merchant: "M",
		Expense:  core.CoerceAmount(expense),
		Income:   core.CoerceAmount(income),
	}
	return engine.Row{Record: r, Balance: r.Balance()}
}

func TestBuild(t *testing.T) {
	rows := []engine.Row{
		row(core.NewDate(2024, time.March, 10), "Food", "30", "0"),
		row(core.NewDate(2024, time.January, 2), "Travel", "50", "0"),
		row(core.Date{}, "Salary", "0", "1000"), // undated, no period impact
	}
	r := Build(rows, Profile{AdminName: "Jo", CompanyName: "Acme"})

	if r.ID.String() == "00000000-0000-0000-0000-000000000000" {
		t.Fatal("report must get a real ID")
	}
	if r.Totals.Count != 3 || r.Totals.Net.String() != "920" {
		t.Fatalf("totals: %+v", r.Totals)
	}
	if r.PeriodFrom.String() != "2024-01-02" || r.PeriodTo.String() != "2024-03-10" {
		t.Fatalf("period: %s - %s", r.PeriodFrom, r.PeriodTo)
	}
	if len(r.TopCategories) != 2 || r.TopCategories[0].Category != "Travel" {
		t.Fatalf("top categories: %+v", r.TopCategories)
	}
}

func TestBuildNoRows(t *testing.T) {
	r := Build(nil, Profile{})
	if !r.PeriodFrom.IsEmpty() || !r.PeriodTo.IsEmpty() {
		t.Fatalf("period should be empty: %s - %s", r.PeriodFrom, r.PeriodTo)
	}
	if r.Totals.Count != 0 {
		t.Fatalf("count=%d", r.Totals.Count)
	}
}

func TestRender(t *testing.T) {
	rows := []engine.Row{
		row(core.NewDate(2024, time.January, 2), "Food", "30", "0"),
	}
	r := Build(rows, Profile{AdminName: "Jo", AdminRole: "Accountant", CompanyName: "Acme"})

	var b strings.Builder
	if err := r.Render(&b); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := b.String()

	for _, want := range []string{
		"LEDGER SUMMARY",
		"Acme",
		"Prepared by Jo, Accountant",
		"Period 2024-01-02 - 2024-01-02",
		"Expense:  30.00",
		"Food",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}
