package telegram

import (
	"strings"

	"fintrack/internal/core"
)

// Callback data layout, shared with the inline keyboards:
// "expense_<category>", "income_<category>", "stats_<period>",
// "report_<period>".
const (
	cbExpense = "expense"
	cbIncome  = "income"
	cbStats   = "stats"
	cbReport  = "report"
)

type callbackAction struct {
	// One of the two groups is populated depending on the prefix.
	kind     core.Kind
	category string

	period    core.Period
	withChart bool

	valid bool
}

// parseCallback decodes button payloads. Categories keep everything after
// the first underscore so multi-word labels survive intact.
func parseCallback(data string) callbackAction {
	prefix, arg, found := strings.Cut(data, "_")
	if !found || arg == "" {
		return callbackAction{}
	}

	switch prefix {
	case cbExpense:
		return callbackAction{kind: core.Expense, category: arg, valid: true}
	case cbIncome:
		return callbackAction{kind: core.Income, category: arg, valid: true}
	case cbStats, cbReport:
		period, ok := core.ParsePeriod(arg)
		if !ok {
			return callbackAction{}
		}
		return callbackAction{period: period, withChart: prefix == cbStats, valid: true}
	}
	return callbackAction{}
}
