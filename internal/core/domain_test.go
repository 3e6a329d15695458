package core

import (
	"strings"
	"testing"
)

func TestKindValidate(t *testing.T) {
	if err := Expense.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := Income.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := Kind("transfer").Validate(); err == nil {
		t.Fatalf("expected error for unknown kind")
	}
}

func TestCategories(t *testing.T) {
	exp := Categories(Expense)
	inc := Categories(Income)
	if len(exp) != 7 {
		t.Fatalf("expected 7 expense categories, got %d", len(exp))
	}
	if len(inc) != 5 {
		t.Fatalf("expected 5 income categories, got %d", len(inc))
	}
	// Returned slice must be a copy.
	exp[0] = "mutated"
	if Categories(Expense)[0] == "mutated" {
		t.Fatalf("Categories leaked internal slice")
	}
	if Categories(Kind("transfer")) != nil {
		t.Fatalf("unknown kind should have no categories")
	}
}

func TestValidCategory(t *testing.T) {
	if !ValidCategory(Expense, "Food") {
		t.Fatalf("Food should be a valid expense category")
	}
	if !ValidCategory(Income, "Salary") {
		t.Fatalf("Salary should be a valid income category")
	}
	if ValidCategory(Expense, "Salary") {
		t.Fatalf("Salary is not an expense category")
	}
	if ValidCategory(Expense, "food") {
		t.Fatalf("matching must be exact, not case-insensitive")
	}
}

func TestTransactionValidate(t *testing.T) {
	good := Transaction{
		UserID:   1,
		Kind:     Expense,
		Category: "Food",
		Amount:   Money{Cents: 100},
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []Transaction{
		{Kind: "transfer", Category: "Food", Amount: Money{Cents: 1}},
		{Kind: Expense, Category: "", Amount: Money{Cents: 1}},
		{Kind: Expense, Category: "  ", Amount: Money{Cents: 1}},
		{Kind: Expense, Category: "Food", Amount: Money{Cents: 0}},
		{Kind: Expense, Category: "Food", Amount: Money{Cents: 1}, Description: strings.Repeat("x", 201)},
	}
	for i, tr := range bads {
		if err := tr.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}
