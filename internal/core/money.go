// Package core holds the domain types shared by every other package:
// transactions, money amounts, aggregation periods and summaries.
package core

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Money is an amount in integer cents. Keeping cents instead of floats makes
// category sums and period totals exact.
type Money struct {
	Cents int64
}

// Amounts above this are rejected as input errors rather than risking
// overflow when shifting to cents.
var maxAmount = decimal.New(1, 12) // 10^12

// ParseAmount parses user-entered text into a positive Money value.
//
// Both dot (12.34) and comma (12,34) decimal separators are accepted; the
// third decimal place is rounded half away from zero. Signs, zero, negative
// values and anything non-numeric yield ErrInvalidAmount.
func ParseAmount(s string) (Money, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" || strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return Money{}, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, ErrInvalidAmount
	}
	if d.LessThanOrEqual(decimal.Zero) || d.GreaterThan(maxAmount) {
		return Money{}, ErrInvalidAmount
	}
	cents := d.Shift(2).Round(0).IntPart()
	if cents <= 0 {
		return Money{}, ErrInvalidAmount
	}
	return Money{Cents: cents}, nil
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (m Money) Add(other Money) Money {
	return Money{Cents: m.Cents + other.Cents}
}

// Float returns the amount in whole currency units for display and chart
// proportions. Use cents for anything that must stay exact.
func (m Money) Float() float64 {
	return float64(m.Cents) / 100.0
}

// String formats the amount with two decimal places, e.g. "1500.00".
func (m Money) String() string {
	sign := ""
	c := m.Cents
	if c < 0 {
		sign = "-"
		c = -c
	}
	return fmt.Sprintf("%s%d.%02d", sign, c/100, c%100)
}
