package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"fintrack/internal/core"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "fintrack.db"))
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func mustAdd(t *testing.T, repo *SQLiteRepository, userID int64, kind core.Kind, category string, cents int64) core.Transaction {
	t.Helper()
	tx, err := repo.Add(context.Background(), core.Transaction{
		UserID:   userID,
		Kind:     kind,
		Category: category,
		Amount:   core.Money{Cents: cents},
	})
	if err != nil {
		t.Fatalf("add transaction: %v", err)
	}
	return tx
}

func TestAddAssignsIDAndTimestamp(t *testing.T) {
	repo := newTestRepo(t)

	tx := mustAdd(t, repo, 1, core.Income, "Salary", 150000)
	if tx.ID == 0 {
		t.Fatalf("expected store-assigned id")
	}
	if tx.CreatedAt.IsZero() {
		t.Fatalf("expected store-assigned timestamp")
	}

	second := mustAdd(t, repo, 1, core.Expense, "Food", 20000)
	if second.ID <= tx.ID {
		t.Fatalf("ids must increase: %d then %d", tx.ID, second.ID)
	}
}

func TestAddRejectsInvalidInput(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.Add(ctx, core.Transaction{UserID: 1, Kind: core.Expense, Category: "Food", Amount: core.Money{Cents: 0}})
	if !errors.Is(err, core.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}

	_, err = repo.Add(ctx, core.Transaction{UserID: 1, Kind: core.Expense, Category: "", Amount: core.Money{Cents: 100}})
	if !errors.Is(err, core.ErrEmptyCategory) {
		t.Fatalf("expected ErrEmptyCategory, got %v", err)
	}

	// Nothing may have been written for the rejected inputs.
	recent, err := repo.Recent(ctx, 1, 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(recent) != 0 {
		t.Fatalf("expected no rows after rejected inserts, got %d", len(recent))
	}
}

func TestSumByCategoryAccumulates(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	mustAdd(t, repo, 1, core.Expense, "Food", 20000)
	mustAdd(t, repo, 1, core.Expense, "Food", 30000)
	mustAdd(t, repo, 1, core.Expense, "Transport", 1000)
	mustAdd(t, repo, 1, core.Income, "Salary", 150000)
	mustAdd(t, repo, 2, core.Expense, "Food", 999) // other user, must not leak

	w := core.PeriodDay.Window(time.Now())
	sums, err := repo.SumByCategory(ctx, 1, core.Expense, w)
	if err != nil {
		t.Fatalf("sum by category: %v", err)
	}
	if got := sums["Food"].Cents; got != 50000 {
		t.Fatalf("Food expected 50000 cents, got %d", got)
	}
	if got := sums["Transport"].Cents; got != 1000 {
		t.Fatalf("Transport expected 1000 cents, got %d", got)
	}
	if _, ok := sums["Salary"]; ok {
		t.Fatalf("income category must not appear in expense sums")
	}
}

func TestTotalsMatchCategorySums(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	mustAdd(t, repo, 1, core.Expense, "Food", 20000)
	mustAdd(t, repo, 1, core.Expense, "Health", 4550)
	mustAdd(t, repo, 1, core.Income, "Salary", 150000)
	mustAdd(t, repo, 1, core.Income, "Gifts", 2500)

	w := core.PeriodWeek.Window(time.Now())
	expense, income, err := repo.Totals(ctx, 1, w)
	if err != nil {
		t.Fatalf("totals: %v", err)
	}

	expSums, err := repo.SumByCategory(ctx, 1, core.Expense, w)
	if err != nil {
		t.Fatalf("sum expenses: %v", err)
	}
	incSums, err := repo.SumByCategory(ctx, 1, core.Income, w)
	if err != nil {
		t.Fatalf("sum income: %v", err)
	}

	if expense.Cents != core.SumCategories(expSums).Cents {
		t.Fatalf("expense total %d != category sum %d", expense.Cents, core.SumCategories(expSums).Cents)
	}
	if income.Cents != core.SumCategories(incSums).Cents {
		t.Fatalf("income total %d != category sum %d", income.Cents, core.SumCategories(incSums).Cents)
	}
	if expense.Cents != 24550 || income.Cents != 152500 {
		t.Fatalf("unexpected totals: expense=%d income=%d", expense.Cents, income.Cents)
	}
}

func TestWindowExcludesOutsideRows(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	// Freeze the clock to yesterday for the first insert.
	yesterday := time.Now().AddDate(0, 0, -1)
	repo.now = func() time.Time { return yesterday }
	mustAdd(t, repo, 1, core.Expense, "Food", 11111)

	repo.now = time.Now
	mustAdd(t, repo, 1, core.Expense, "Food", 20000)

	sums, err := repo.SumByCategory(ctx, 1, core.Expense, core.PeriodDay.Window(time.Now()))
	if err != nil {
		t.Fatalf("sum by category: %v", err)
	}
	if got := sums["Food"].Cents; got != 20000 {
		t.Fatalf("day window must exclude yesterday: got %d", got)
	}
}

func TestRecentNewestFirst(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	var last core.Transaction
	for i := 0; i < 15; i++ {
		last = mustAdd(t, repo, 1, core.Expense, "Food", int64(100+i))
	}

	recent, err := repo.Recent(ctx, 1, 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(recent) != 10 {
		t.Fatalf("expected 10 rows, got %d", len(recent))
	}
	if recent[0].ID != last.ID {
		t.Fatalf("expected newest first, got id %d", recent[0].ID)
	}
	for i := 1; i < len(recent); i++ {
		if recent[i].ID >= recent[i-1].ID {
			t.Fatalf("rows out of order at %d", i)
		}
	}
}

func TestExportTracking(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	first := mustAdd(t, repo, 1, core.Expense, "Food", 100)
	second := mustAdd(t, repo, 1, core.Expense, "Food", 200)

	pending, err := repo.ListUnexported(ctx, 10)
	if err != nil {
		t.Fatalf("list unexported: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("expected 2 pending, got %d", len(pending))
	}

	if err := repo.MarkExported(ctx, first.ID); err != nil {
		t.Fatalf("mark exported: %v", err)
	}
	pending, err = repo.ListUnexported(ctx, 10)
	if err != nil {
		t.Fatalf("list unexported: %v", err)
	}
	if len(pending) != 1 || pending[0].ID != second.ID {
		t.Fatalf("expected only second transaction pending")
	}

	if err := repo.MarkExportError(ctx, second.ID); err != nil {
		t.Fatalf("mark export error: %v", err)
	}
	pending, err = repo.ListUnexported(ctx, 10)
	if err != nil {
		t.Fatalf("list unexported: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("export errors must stay pending for retry")
	}
}

func TestGet(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	added := mustAdd(t, repo, 7, core.Income, "Freelance", 42000)
	got, err := repo.Get(ctx, added.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.UserID != 7 || got.Kind != core.Income || got.Category != "Freelance" || got.Amount.Cents != 42000 {
		t.Fatalf("unexpected transaction %+v", got)
	}

	if _, err := repo.Get(ctx, 99999); err == nil {
		t.Fatalf("expected error for missing id")
	}
}
