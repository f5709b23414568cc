package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/siklus/internal/model"
)

// BuildTrialBalance reduces each account's final balance to a debit/credit
// pair. Positive balances go to the debit column, negative ones to credit.
func BuildTrialBalance(l *Ledger) []model.TrialBalanceRow {
	rows := make([]model.TrialBalanceRow, 0, l.Len())
	for _, account := range l.order {
		bal := l.Balance(account)
		rows = append(rows, model.TrialBalanceRow{
			Account: account,
			Debit:   decimal.Max(bal, decimal.Zero),
			Credit:  decimal.Max(bal.Neg(), decimal.Zero),
		})
	}
	return rows
}

// TrialBalance is BuildTrialBalance(BuildLedger(lines)).
func TrialBalance(lines []model.Line) []model.TrialBalanceRow {
	return BuildTrialBalance(BuildLedger(lines))
}

// TrialBalanceTotals returns the column totals of a trial balance.
func TrialBalanceTotals(rows []model.TrialBalanceRow) (debit, credit decimal.Decimal) {
	debit, credit = decimal.Zero, decimal.Zero
	for _, r := range rows {
		debit = debit.Add(r.Debit)
		credit = credit.Add(r.Credit)
	}
	return debit, credit
}
