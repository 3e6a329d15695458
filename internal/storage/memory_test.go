package storage

import (
	"context"
	"reflect"
	"testing"
	"time"

	"fintrack/internal/core"
)

func TestMemoryStoreMirrorsRepository(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	for _, cents := range []int64{20000, 30000} {
		_, err := store.Add(ctx, core.Transaction{
			UserID: 1, Kind: core.Expense, Category: "Food", Amount: core.Money{Cents: cents},
		})
		if err != nil {
			t.Fatalf("add: %v", err)
		}
	}
	if _, err := store.Add(ctx, core.Transaction{UserID: 1, Kind: core.Expense, Category: "Food"}); err == nil {
		t.Fatalf("expected validation error for zero amount")
	}

	w := core.PeriodDay.Window(time.Now())
	sums, err := store.SumByCategory(ctx, 1, core.Expense, w)
	if err != nil {
		t.Fatalf("sum: %v", err)
	}
	if sums["Food"].Cents != 50000 {
		t.Fatalf("expected 50000, got %d", sums["Food"].Cents)
	}

	// Reading twice with no writes in between yields identical results.
	again, err := store.SumByCategory(ctx, 1, core.Expense, w)
	if err != nil {
		t.Fatalf("sum again: %v", err)
	}
	if !reflect.DeepEqual(sums, again) {
		t.Fatalf("aggregation must be idempotent: %v vs %v", sums, again)
	}

	expense, income, err := store.Totals(ctx, 1, w)
	if err != nil {
		t.Fatalf("totals: %v", err)
	}
	if expense.Cents != 50000 || income.Cents != 0 {
		t.Fatalf("unexpected totals expense=%d income=%d", expense.Cents, income.Cents)
	}
}

func TestMemoryStoreRecentOrdering(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	// Frozen clock: ordering must fall back to insertion ids.
	frozen := time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)
	store.Now = func() time.Time { return frozen }

	for i := 0; i < 15; i++ {
		if _, err := store.Add(ctx, core.Transaction{
			UserID: 1, Kind: core.Income, Category: "Salary", Amount: core.Money{Cents: int64(1 + i)},
		}); err != nil {
			t.Fatalf("add: %v", err)
		}
	}

	recent, err := store.Recent(ctx, 1, 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(recent) != 10 {
		t.Fatalf("expected 10 rows, got %d", len(recent))
	}
	if recent[0].ID != 15 || recent[9].ID != 6 {
		t.Fatalf("unexpected window: first=%d last=%d", recent[0].ID, recent[9].ID)
	}
}
