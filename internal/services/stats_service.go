// Package services orchestrates domain operations across the store, the
// export pipeline and the reporting layer.
package services

import (
	"context"
	"fmt"
	"time"

	"fintrack/internal/core"
)

// StatsStore is the slice of the transaction store the statistics engine
// reads from.
type StatsStore interface {
	SumByCategory(ctx context.Context, userID int64, kind core.Kind, w core.Window) (map[string]core.Money, error)
	Totals(ctx context.Context, userID int64, w core.Window) (expense, income core.Money, err error)
}

type StatsService struct {
	store StatsStore
}

func NewStatsService(store StatsStore) *StatsService {
	return &StatsService{store: store}
}

// Summary computes the period aggregation for one user. All three store
// calls share one window computed here, which is what keeps the totals
// equal to the sums of the category maps.
func (s *StatsService) Summary(ctx context.Context, userID int64, period core.Period, now time.Time) (core.PeriodSummary, error) {
	w := period.Window(now)

	expenses, err := s.store.SumByCategory(ctx, userID, core.Expense, w)
	if err != nil {
		return core.PeriodSummary{}, fmt.Errorf("sum expenses: %w", err)
	}

	income, err := s.store.SumByCategory(ctx, userID, core.Income, w)
	if err != nil {
		return core.PeriodSummary{}, fmt.Errorf("sum income: %w", err)
	}

	totalExpense, totalIncome, err := s.store.Totals(ctx, userID, w)
	if err != nil {
		return core.PeriodSummary{}, fmt.Errorf("totals: %w", err)
	}

	return core.PeriodSummary{
		TotalExpenses:      totalExpense,
		ExpensesByCategory: expenses,
		TotalIncome:        totalIncome,
		IncomeByCategory:   income,
	}, nil
}
