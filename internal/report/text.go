// Package report turns a PeriodSummary into the user-facing text report
// and the chart document sent to the chat.
package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"fintrack/internal/core"
)

const noDataMarker = "  no data"

// Renderer formats summaries and history lines. Currency is a display
// symbol only; all arithmetic happens in cents upstream.
type Renderer struct {
	currency string
}

func NewRenderer(currency string) *Renderer {
	return &Renderer{currency: currency}
}

// RenderText produces the period report: header, income block, expense
// block, balance. Categories are listed alphabetically so two renders of
// the same summary are byte-identical.
func (r *Renderer) RenderText(summary core.PeriodSummary, period core.Period, now time.Time) string {
	var b strings.Builder

	fmt.Fprintf(&b, "📊 Report for %s\n", period.Title())
	fmt.Fprintf(&b, "📅 %s\n", now.Format("02.01.2006 15:04"))

	b.WriteString("\n💵 Income:\n")
	r.writeBlock(&b, summary.IncomeByCategory, summary.TotalIncome)

	b.WriteString("\n💸 Expenses:\n")
	r.writeBlock(&b, summary.ExpensesByCategory, summary.TotalExpenses)

	fmt.Fprintf(&b, "\n💰 Balance: %s", r.money(summary.Balance()))
	return b.String()
}

func (r *Renderer) writeBlock(b *strings.Builder, byCategory map[string]core.Money, total core.Money) {
	if len(byCategory) == 0 {
		b.WriteString(noDataMarker + "\n")
		return
	}
	for _, category := range sortedCategories(byCategory) {
		fmt.Fprintf(b, "  - %s: %s\n", category, r.money(byCategory[category]))
	}
	fmt.Fprintf(b, "  Total: %s\n", r.money(total))
}

// RenderHistory formats the recent-transactions list, newest first.
func (r *Renderer) RenderHistory(transactions []core.Transaction) string {
	if len(transactions) == 0 {
		return "📭 No transactions yet."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📋 Last %d transactions:\n", len(transactions))
	for _, t := range transactions {
		marker := "📉 Expense"
		if t.Kind == core.Income {
			marker = "📈 Income"
		}
		fmt.Fprintf(&b, "\n%s | %s\n   💰 %s | ⏱ %s\n",
			marker, t.Category, r.money(t.Amount), t.CreatedAt.Format("02.01 15:04"))
		if t.Description != "" {
			fmt.Fprintf(&b, "   📝 %s\n", t.Description)
		}
	}
	return b.String()
}

// RenderCommitted confirms a newly recorded transaction.
func (r *Renderer) RenderCommitted(t core.Transaction) string {
	emoji, label := "📉", "expense"
	if t.Kind == core.Income {
		emoji, label = "📈", "income"
	}
	description := t.Description
	if description == "" {
		description = "none"
	}
	return fmt.Sprintf("%s Recorded %s:\n\n🏷 Category: %s\n💳 Amount: %s\n📝 Description: %s",
		emoji, label, t.Category, r.money(t.Amount), description)
}

func (r *Renderer) money(m core.Money) string {
	if r.currency == "" {
		return m.String()
	}
	return m.String() + " " + r.currency
}

func sortedCategories(byCategory map[string]core.Money) []string {
	names := make([]string, 0, len(byCategory))
	for name := range byCategory {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
