package core

// PeriodSummary is the derived aggregation for one user over one period.
// It is computed fresh on every request and never persisted.
type PeriodSummary struct {
	TotalExpenses      Money
	ExpensesByCategory map[string]Money
	TotalIncome        Money
	IncomeByCategory   map[string]Money
}

// Balance returns income minus expenses for the period.
func (s PeriodSummary) Balance() Money {
	return Money{Cents: s.TotalIncome.Cents - s.TotalExpenses.Cents}
}

// Empty reports whether the period holds no transactions at all, in which
// case there is nothing to chart.
func (s PeriodSummary) Empty() bool {
	return len(s.ExpensesByCategory) == 0 && len(s.IncomeByCategory) == 0
}

// SumCategories adds up a category map; used to check the conservation
// property against the stored totals.
func SumCategories(byCategory map[string]Money) Money {
	var total Money
	for _, amount := range byCategory {
		total = total.Add(amount)
	}
	return total
}
