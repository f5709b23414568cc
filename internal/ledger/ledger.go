// Package ledger derives per-account ledgers and trial balances from journals.
package ledger

import (
	"slices"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/siklus/internal/model"
)

// Ledger holds one ordered entry list per account, keyed in the order the
// accounts were first seen in the journal.
type Ledger struct {
	order   []string
	entries map[string][]model.LedgerEntry
}

// BuildLedger partitions lines by account, stably sorts each partition by
// date and computes running balances. Dateless lines sort after dated ones.
func BuildLedger(lines []model.Line) *Ledger {
	l := &Ledger{entries: make(map[string][]model.LedgerEntry)}

	groups := make(map[string][]model.Line)
	for _, line := range lines {
		if _, seen := groups[line.Account]; !seen {
			l.order = append(l.order, line.Account)
		}
		groups[line.Account] = append(groups[line.Account], line)
	}

	for _, account := range l.order {
		group := groups[account]
		slices.SortStableFunc(group, compareDate)

		balance := decimal.Zero
		entries := make([]model.LedgerEntry, len(group))
		for i, line := range group {
			net := line.NetMovement()
			balance = balance.Add(net)
			entries[i] = model.LedgerEntry{Line: line, NetMovement: net, RunningBalance: balance}
		}
		l.entries[account] = entries
	}
	return l
}

func compareDate(a, b model.Line) int {
	switch {
	case a.Dated() && !b.Dated():
		return -1
	case !a.Dated() && b.Dated():
		return 1
	}
	return a.Date.Compare(b.Date)
}

// Accounts returns the account names in first-seen order.
func (l *Ledger) Accounts() []string {
	return slices.Clone(l.order)
}

// Entries returns the ledger entries of one account.
func (l *Ledger) Entries(account string) []model.LedgerEntry {
	return l.entries[account]
}

// Balance returns the final running balance of an account, 0 if it has no entries.
func (l *Ledger) Balance(account string) decimal.Decimal {
	entries := l.entries[account]
	if len(entries) == 0 {
		return decimal.Zero
	}
	return entries[len(entries)-1].RunningBalance
}

// Len returns the number of accounts.
func (l *Ledger) Len() int {
	return len(l.order)
}

// LineCount returns the total number of entries over all accounts.
func (l *Ledger) LineCount() int {
	n := 0
	for _, e := range l.entries {
		n += len(e)
	}
	return n
}
