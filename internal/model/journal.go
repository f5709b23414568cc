package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateFormat is the text form of a line date. It sorts like the dates it encodes.
const DateFormat = "2006-01-02"

// Line is a single journal row (one side of a double entry).
type Line struct {
	EntryID string          // "YYYY-MM-NNN" plus a leg suffix: a, b, ... z, aa, ab
	Date    time.Time       // zero for dateless lines (closing entries)
	Account string
	Debit   decimal.Decimal // zero if credit side
	Credit  decimal.Decimal // zero if debit side
	Memo    string
}

// Dated reports whether the line carries a date.
func (l Line) Dated() bool {
	return !l.Date.IsZero()
}

// DateString returns the line date as YYYY-MM-DD, or "" for dateless lines.
func (l Line) DateString() string {
	if !l.Dated() {
		return ""
	}
	return l.Date.Format(DateFormat)
}

// NetMovement returns debit minus credit.
func (l Line) NetMovement() decimal.Decimal {
	return l.Debit.Sub(l.Credit)
}

// EntryGroup returns the base entry ID (without leg suffix).
// "2025-01-001a" -> "2025-01-001"
func (l Line) EntryGroup() string {
	id := l.EntryID
	i := len(id)
	for i > 0 && id[i-1] >= 'a' && id[i-1] <= 'z' {
		i--
	}
	return id[:i]
}

// Journal is an ordered sequence of lines, in insertion order.
type Journal []Line

// Clone returns a copy of j that can be mutated without touching j.
func (j Journal) Clone() Journal {
	if j == nil {
		return nil
	}
	out := make(Journal, len(j))
	copy(out, j)
	return out
}

// Concat returns a new journal holding the lines of all given journals in order.
func Concat(journals ...Journal) Journal {
	n := 0
	for _, j := range journals {
		n += len(j)
	}
	out := make(Journal, 0, n)
	for _, j := range journals {
		out = append(out, j...)
	}
	return out
}

// Totals returns the sum of debits and the sum of credits.
func (j Journal) Totals() (debit, credit decimal.Decimal) {
	debit, credit = decimal.Zero, decimal.Zero
	for _, l := range j {
		debit = debit.Add(l.Debit)
		credit = credit.Add(l.Credit)
	}
	return debit, credit
}

// LedgerEntry is a journal line seen from one account's ledger.
type LedgerEntry struct {
	Line
	NetMovement    decimal.Decimal
	RunningBalance decimal.Decimal
}

// TrialBalanceRow is one account's signed balance split into debit and credit.
type TrialBalanceRow struct {
	Account string
	Debit   decimal.Decimal
	Credit  decimal.Decimal
}
