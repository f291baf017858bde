package engine

import (
	"sort"

	"github.com/shopspring/decimal"
)

type (
	// Totals are the grand totals over a matched subset.
	Totals struct {
		Count   int
		Income  decimal.Decimal
		Expense decimal.Decimal
		Net     decimal.Decimal
	}

	// GroupRow is the per-(category, merchant) breakdown line.
	GroupRow struct {
		Category string
		Merchant string
		Count    int
		Income   decimal.Decimal
		Expense  decimal.Decimal
		Net      decimal.Decimal
	}

	// Summary is the aggregation output: grand totals plus one group row
	// per distinct (category, merchant) pair, in first-appearance order of
	// the pair in the input. Identical input yields identical order.
	Summary struct {
		Totals Totals
		Groups []GroupRow
	}

	// CategoryAmount is a category with its summed expense, the shape the
	// chart and report collaborators consume.
	CategoryAmount struct {
		Category string
		Amount   decimal.Decimal
	}
)

type groupKey struct {
	category string
	merchant string
}

// Aggregate computes the summary over a matched subset. Grouping key
// equality is exact string match; by the time rows reach here the blank
// category and merchant fields have already become their sentinels.
func Aggregate(rows []Row) Summary {
	sum := Summary{
		Totals: Totals{Income: decimal.Zero, Expense: decimal.Zero, Net: decimal.Zero},
	}
	index := map[groupKey]int{}

	for _, row := range rows {
		sum.Totals.Count++
		sum.Totals.Income = sum.Totals.Income.Add(row.Record.Income)
		sum.Totals.Expense = sum.Totals.Expense.Add(row.Record.Expense)

		key := groupKey{category: row.Record.Category, merchant: row.Record.Merchant}
		i, ok := index[key]
		if !ok {
			i = len(sum.Groups)
			index[key] = i
			sum.Groups = append(sum.Groups, GroupRow{
				Category: key.category,
				Merchant: key.merchant,
				Income:   decimal.Zero,
				Expense:  decimal.Zero,
				Net:      decimal.Zero,
			})
		}
		g := &sum.Groups[i]
		g.Count++
		g.Income = g.Income.Add(row.Record.Income)
		g.Expense = g.Expense.Add(row.Record.Expense)
		g.Net = g.Net.Add(row.Balance)
	}

	sum.Totals.Net = sum.Totals.Income.Sub(sum.Totals.Expense)
	return sum
}

// CategoryExpenses sums expenses per category over a matched subset,
// excluding categories whose expense total is zero, sorted by category.
// This is the pie-chart input shape.
func CategoryExpenses(rows []Row) []CategoryAmount {
	sums := map[string]decimal.Decimal{}
	for _, row := range rows {
		sums[row.Record.Category] = sums[row.Record.Category].Add(row.Record.Expense)
	}

	out := make([]CategoryAmount, 0, len(sums))
	for cat, amt := range sums {
		if amt.IsZero() || amt.IsNegative() {
			continue
		}
		out = append(out, CategoryAmount{Category: cat, Amount: amt})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out
}

// TopCategories returns the n largest categories by expense sum,
// descending (ties broken by category name for determinism).
func TopCategories(rows []Row, n int) []CategoryAmount {
	cats := CategoryExpenses(rows)
	sort.Slice(cats, func(i, j int) bool {
		c := cats[i].Amount.Cmp(cats[j].Amount)
		if c != 0 {
			return c > 0
		}
		return cats[i].Category < cats[j].Category
	})
	if len(cats) > n {
		cats = cats[:n]
	}
	return cats
}
