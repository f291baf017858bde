package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"ledgerdesk/internal/core"
	"ledgerdesk/internal/engine"
)

func row(date core.Date, category, expense, income string) engine.Row {
	r := core.Record{
		ReportName: "Trip",
		Date:       date,
		Category:   category,
		Merchant:   "Cafe",
		Expense:    core.CoerceAmount(expense),
		Income:     core.CoerceAmount(income),
	}
	return engine.Row{Record: r, Balance: r.Balance()}
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	rows := []engine.Row{
		row(core.NewDate(2024, time.January, 2), "Food", "12.5", "0"),
		row(core.Date{}, "Salary", "0", "1000"),
	}
	if err := WriteCSV(path, rows); err != nil {
		t.Fatalf("write: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	all, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if len(all) != 3 {
		t.Fatalf("lines=%d, want header + 2 rows", len(all))
	}
	first := all[1]
	if first[1] != "2024-01-02" || first[2] != "12.50" || first[8] != "-12.50" {
		t.Fatalf("row=%v", first)
	}
	// undated records export with a blank date cell
	if all[2][1] != "" || all[2][7] != "1000.00" {
		t.Fatalf("row=%v", all[2])
	}
}

func TestBuildChartData(t *testing.T) {
	rows := []engine.Row{
		row(core.NewDate(2024, time.January, 1), "Food", "30", "0"),
		row(core.NewDate(2024, time.January, 2), "Food", "20", "0"),
		row(core.NewDate(2024, time.January, 3), "Salary", "0", "1000"),
	}
	c := BuildChartData(rows)

	if len(c.CategoryExpenses) != 1 || c.CategoryExpenses[0].Category != "Food" {
		t.Fatalf("categories=%+v", c.CategoryExpenses)
	}
	if c.CategoryExpenses[0].Amount.String() != "50" {
		t.Fatalf("food sum=%s", c.CategoryExpenses[0].Amount)
	}
	if c.TotalIncome.String() != "1000" || c.TotalExpense.String() != "50" {
		t.Fatalf("totals: %s / %s", c.TotalIncome, c.TotalExpense)
	}
	if c.Empty() {
		t.Fatal("non-trivial chart reported empty")
	}
	if !BuildChartData(nil).Empty() {
		t.Fatal("no rows should report empty")
	}
}
