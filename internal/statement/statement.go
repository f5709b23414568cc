// Package statement computes the income statement, the statement of changes
// in equity and the balance sheet from an adjusted trial balance.
package statement

import (
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/siklus/internal/model"
)

// Inputs are the user-supplied figures that do not come from the journal.
type Inputs struct {
	BeginningEquity decimal.Decimal
	Withdrawals     decimal.Decimal
}

// Statements holds every derived total.
type Statements struct {
	Revenue   decimal.Decimal
	Expense   decimal.Decimal
	NetIncome decimal.Decimal

	BeginningEquity decimal.Decimal
	Withdrawals     decimal.Decimal
	EndingEquity    decimal.Decimal

	TotalAssets          decimal.Decimal
	TotalLiabilities     decimal.Decimal
	LiabilitiesAndEquity decimal.Decimal
}

// Balanced reports whether total assets equal liabilities plus ending equity.
// It is informational; nothing rejects an unbalanced sheet.
func (s Statements) Balanced() bool {
	return s.TotalAssets.Equal(s.LiabilitiesAndEquity)
}

// Difference returns assets minus liabilities and equity.
func (s Statements) Difference() decimal.Decimal {
	return s.TotalAssets.Sub(s.LiabilitiesAndEquity)
}

// Calculate derives the statements from an adjusted trial balance.
func Calculate(rows []model.TrialBalanceRow, in Inputs, c *Classifier) Statements {
	s := Statements{
		Revenue:          decimal.Zero,
		Expense:          decimal.Zero,
		TotalAssets:      decimal.Zero,
		TotalLiabilities: decimal.Zero,
		BeginningEquity:  in.BeginningEquity,
		Withdrawals:      in.Withdrawals,
	}

	for _, r := range rows {
		if c.IsRevenue(r.Account) {
			s.Revenue = s.Revenue.Add(r.Credit)
		}
		if c.IsExpense(r.Account) {
			s.Expense = s.Expense.Add(r.Debit)
		}
		if c.IsAsset(r.Account) {
			s.TotalAssets = s.TotalAssets.Add(r.Debit)
		}
		if c.IsLiability(r.Account) {
			s.TotalLiabilities = s.TotalLiabilities.Add(r.Credit)
		}
	}

	s.NetIncome = s.Revenue.Sub(s.Expense)
	s.EndingEquity = s.BeginningEquity.Add(s.NetIncome).Sub(s.Withdrawals)
	s.LiabilitiesAndEquity = s.TotalLiabilities.Add(s.EndingEquity)
	return s
}
