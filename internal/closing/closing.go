// Package closing generates the period-end entries that move revenue and
// expense balances through the income summary into capital.
package closing

import (
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/siklus/internal/model"
)

// Accounts names the synthetic accounts used by closing entries.
type Accounts struct {
	Revenue string
	Expense string
	Summary string
	Capital string
}

// DefaultAccounts returns the closing accounts of the default chart.
func DefaultAccounts() Accounts {
	return Accounts{
		Revenue: "Pendapatan",
		Expense: "Beban",
		Summary: "Ikhtisar Laba Rugi",
		Capital: "Modal",
	}
}

// Options tunes closing entry generation.
type Options struct {
	// LegacyLossSign keeps the income summary debit and capital credit for a
	// net loss, carrying the negative amount on both lines. When false a
	// loss debits capital and credits the income summary for its magnitude.
	LegacyLossSign bool
}

// Totals are the income statement figures being closed.
type Totals struct {
	Revenue   decimal.Decimal
	Expense   decimal.Decimal
	NetIncome decimal.Decimal
}

const (
	memoRevenue = "Tutup pendapatan"
	memoExpense = "Tutup beban"
	memoSummary = "Tutup laba"
	memoCapital = "Tutup laba ke modal"
)

// Build returns the closing lines for t, two balanced lines per non-zero
// total. The lines are dateless.
func Build(t Totals, acc Accounts, opts Options) []model.Line {
	var lines []model.Line

	if t.Revenue.IsPositive() {
		lines = append(lines,
			model.Line{Account: acc.Revenue, Debit: t.Revenue, Credit: decimal.Zero, Memo: memoRevenue},
			model.Line{Account: acc.Summary, Debit: decimal.Zero, Credit: t.Revenue, Memo: memoRevenue},
		)
	}

	if t.Expense.IsPositive() {
		lines = append(lines,
			model.Line{Account: acc.Summary, Debit: t.Expense, Credit: decimal.Zero, Memo: memoExpense},
			model.Line{Account: acc.Expense, Debit: decimal.Zero, Credit: t.Expense, Memo: memoExpense},
		)
	}

	switch {
	case t.NetIncome.IsZero():
	case t.NetIncome.IsPositive() || opts.LegacyLossSign:
		lines = append(lines,
			model.Line{Account: acc.Summary, Debit: t.NetIncome, Credit: decimal.Zero, Memo: memoSummary},
			model.Line{Account: acc.Capital, Debit: decimal.Zero, Credit: t.NetIncome, Memo: memoCapital},
		)
	default:
		loss := t.NetIncome.Abs()
		lines = append(lines,
			model.Line{Account: acc.Capital, Debit: loss, Credit: decimal.Zero, Memo: memoCapital},
			model.Line{Account: acc.Summary, Debit: decimal.Zero, Credit: loss, Memo: memoSummary},
		)
	}

	return lines
}
