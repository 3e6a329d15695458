package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Expense Kind = "expense"
	Income  Kind = "income"
)

type (
	// Kind distinguishes money coming in from money going out.
	Kind string

	// Transaction is one immutable income or expense record. ID and
	// CreatedAt are assigned by the store on insert.
	Transaction struct {
		ID          int64
		UserID      int64
		Kind        Kind
		Category    string
		Amount      Money
		CreatedAt   time.Time
		Description string // optional, empty when the user skipped it
	}
)

var (
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrInvalidKind     = errors.New("invalid transaction kind")
	ErrEmptyCategory   = errors.New("empty category")
	ErrUnknownCategory = errors.New("unknown category")
)

// Fixed category sets offered in the chat keyboards. Category identity is
// the plain string stored with each transaction.
var (
	expenseCategories = []string{"Food", "Transport", "Housing", "Entertainment", "Health", "Clothing", "Other"}
	incomeCategories  = []string{"Salary", "Freelance", "Investments", "Gifts", "Other"}
)

func (k Kind) Validate() error {
	switch k {
	case Expense, Income:
		return nil
	}
	return ErrInvalidKind
}

// Categories returns the selectable category list for a kind. The returned
// slice is a copy; callers may reorder it freely.
func Categories(k Kind) []string {
	switch k {
	case Expense:
		return append([]string(nil), expenseCategories...)
	case Income:
		return append([]string(nil), incomeCategories...)
	}
	return nil
}

// ValidCategory reports whether name is an exact match against the
// enumerated list for the kind.
func ValidCategory(k Kind, name string) bool {
	for _, c := range Categories(k) {
		if c == name {
			return true
		}
	}
	return false
}

func (t Transaction) Validate() error {
	if err := t.Kind.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	if len(t.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	return nil
}
