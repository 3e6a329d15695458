package report

import (
	"strings"
	"testing"
	"time"

	"fintrack/internal/core"
)

var testNow = time.Date(2025, time.March, 15, 13, 45, 0, 0, time.UTC)

func TestRenderTextSections(t *testing.T) {
	r := NewRenderer("₽")
	summary := core.PeriodSummary{
		TotalIncome:      core.Money{Cents: 150000},
		IncomeByCategory: map[string]core.Money{"Salary": {Cents: 150000}},
		TotalExpenses:    core.Money{Cents: 50000},
		ExpensesByCategory: map[string]core.Money{
			"Transport": {Cents: 20000},
			"Food":      {Cents: 30000},
		},
	}

	text := r.RenderText(summary, core.PeriodWeek, testNow)

	for _, want := range []string{
		"Report for this week",
		"15.03.2025 13:45",
		"💵 Income:",
		"- Salary: 1500.00 ₽",
		"Total: 1500.00 ₽",
		"💸 Expenses:",
		"- Food: 300.00 ₽",
		"- Transport: 200.00 ₽",
		"💰 Balance: 1000.00 ₽",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("report missing %q:\n%s", want, text)
		}
	}

	// Sections in order: income before expenses before balance;
	// categories alphabetical.
	if strings.Index(text, "Income:") > strings.Index(text, "Expenses:") {
		t.Fatalf("income block must precede expenses")
	}
	if strings.Index(text, "Expenses:") > strings.Index(text, "Balance:") {
		t.Fatalf("expense block must precede balance")
	}
	if strings.Index(text, "Food") > strings.Index(text, "Transport") {
		t.Fatalf("categories must be sorted")
	}
}

func TestRenderTextDeterministic(t *testing.T) {
	r := NewRenderer("₽")
	summary := core.PeriodSummary{
		TotalExpenses: core.Money{Cents: 600},
		ExpensesByCategory: map[string]core.Money{
			"Food": {Cents: 100}, "Health": {Cents: 200}, "Housing": {Cents: 300},
		},
	}
	first := r.RenderText(summary, core.PeriodDay, testNow)
	for i := 0; i < 10; i++ {
		if r.RenderText(summary, core.PeriodDay, testNow) != first {
			t.Fatalf("render must be deterministic")
		}
	}
}

func TestRenderTextEmpty(t *testing.T) {
	r := NewRenderer("₽")
	text := r.RenderText(core.PeriodSummary{}, core.PeriodDay, testNow)

	if strings.Count(text, "no data") != 2 {
		t.Fatalf("expected no-data markers for both blocks:\n%s", text)
	}
	if !strings.Contains(text, "Balance: 0.00 ₽") {
		t.Fatalf("expected zero balance:\n%s", text)
	}
}

func TestRenderHistory(t *testing.T) {
	r := NewRenderer("₽")
	if got := r.RenderHistory(nil); !strings.Contains(got, "No transactions yet") {
		t.Fatalf("unexpected empty history: %q", got)
	}

	text := r.RenderHistory([]core.Transaction{
		{Kind: core.Expense, Category: "Food", Amount: core.Money{Cents: 20000}, CreatedAt: testNow, Description: "lunch"},
		{Kind: core.Income, Category: "Salary", Amount: core.Money{Cents: 150000}, CreatedAt: testNow},
	})
	for _, want := range []string{"📉 Expense | Food", "📝 lunch", "📈 Income | Salary", "1500.00 ₽", "15.03 13:45"} {
		if !strings.Contains(text, want) {
			t.Fatalf("history missing %q:\n%s", want, text)
		}
	}
}

func TestRenderCommitted(t *testing.T) {
	r := NewRenderer("₽")

	withDesc := r.RenderCommitted(core.Transaction{
		Kind: core.Income, Category: "Salary", Amount: core.Money{Cents: 150000}, Description: "advance",
	})
	for _, want := range []string{"income", "Salary", "1500.00 ₽", "advance"} {
		if !strings.Contains(withDesc, want) {
			t.Fatalf("confirmation missing %q:\n%s", want, withDesc)
		}
	}

	skipped := r.RenderCommitted(core.Transaction{
		Kind: core.Expense, Category: "Food", Amount: core.Money{Cents: 100},
	})
	if !strings.Contains(skipped, "Description: none") {
		t.Fatalf("skipped description should render as none:\n%s", skipped)
	}
}
