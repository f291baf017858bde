package export

import (
	"github.com/shopspring/decimal"

	"ledgerdesk/internal/engine"
)

// ChartData carries the numbers behind the two summary charts: expense
// distribution per category and the income versus expense comparison.
// Categories with no positive expense are left out of the distribution.
type ChartData struct {
	CategoryExpenses []engine.CategoryAmount
	TotalIncome      decimal.Decimal
	TotalExpense     decimal.Decimal
}

// BuildChartData derives chart figures from the current result rows.
func BuildChartData(rows []engine.Row) ChartData {
	summary := engine.Aggregate(rows)
	return ChartData{
		CategoryExpenses: engine.CategoryExpenses(rows),
		TotalIncome:      summary.Totals.Income,
		TotalExpense:     summary.Totals.Expense,
	}
}

// Empty reports whether there is nothing to plot.
func (c ChartData) Empty() bool {
	return len(c.CategoryExpenses) == 0 && c.TotalIncome.IsZero() && c.TotalExpense.IsZero()
}
